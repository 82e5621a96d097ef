package database

import (
	"errors"
	"fmt"
	"strings"

	"finapp/internal/models"
	"finapp/internal/password"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedDemoUser makes sure the demo account exists and returns its id.
// Running it again leaves an existing account untouched.
func SeedDemoUser(db *gorm.DB, hasher password.Hasher, email, pw string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up demo user: %w", err)
	}

	hash, err := hasher.Hash(pw)
	if err != nil {
		return "", fmt.Errorf("failed to hash demo password: %w", err)
	}

	user := &models.User{Email: email, PasswordHash: hash}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(user).Error; err != nil {
		return "", fmt.Errorf("failed to seed demo user: %w", err)
	}

	// Another process may have won the insert.
	if err := db.Where("email = ?", email).First(&existing).Error; err != nil {
		return "", fmt.Errorf("failed to reload demo user: %w", err)
	}
	return existing.ID, nil
}
