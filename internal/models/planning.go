package models

import "github.com/shopspring/decimal"

// Event is a calendar entry. EndDate is nil for single-day events.
type Event struct {
	Owned
	Title     string  `gorm:"not null" json:"title"`
	StartDate string  `gorm:"size:10;not null" json:"start"`
	EndDate   *string `gorm:"size:10" json:"end"`
	Category  string  `gorm:"not null" json:"category"`
}

// Goal is a savings target.
type Goal struct {
	Owned
	Name          string          `gorm:"not null" json:"name"`
	TargetAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"current_amount"`
	TargetDate    string          `gorm:"size:10;not null" json:"target_date"`
}

// HoldItem is a purchase the user decided to hold off on.
type HoldItem struct {
	Owned
	Name      string          `gorm:"not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	AddedDate string          `gorm:"size:10;not null" json:"added_date"`
}

// Priority is a monthly focus item. Month is YYYY-MM.
type Priority struct {
	Owned
	Title string `gorm:"not null" json:"title"`
	Month string `gorm:"size:7;not null" json:"month"`
}

// TableName keeps the plural the migrations use.
func (Priority) TableName() string { return "priorities" }
