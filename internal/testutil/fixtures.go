package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"finapp/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a transaction dated date with a fixed category.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount float64, category, date string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Owned:       models.Owned{UserID: userID},
		Amount:      decimal.NewFromFloat(amount),
		Type:        txType,
		Category:    category,
		Description: fmt.Sprintf("fixture %d", nextID()),
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestEvent creates a single-day event.
func CreateTestEvent(t *testing.T, db *gorm.DB, userID, title, start string) *models.Event {
	t.Helper()

	event := &models.Event{
		Owned:     models.Owned{UserID: userID},
		Title:     title,
		StartDate: start,
		Category:  "Inne",
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateTestBudget creates a budget for month.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, month string, amount float64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Owned:  models.Owned{UserID: userID},
		Month:  month,
		Amount: decimal.NewFromFloat(amount),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
