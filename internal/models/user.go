package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
