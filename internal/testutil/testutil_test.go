package testutil_test

import (
	"testing"

	"finapp/internal/errors"
	"finapp/internal/models"
	"finapp/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "transactions", "events", "goals", "hold_items", "priorities", "budgets", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDBIsolated(t *testing.T) {
	a := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, a)
	b := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, b)

	testutil.CreateTestUser(t, a)

	var count int64
	b.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected second database to be empty, found %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}

	tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 12.5, "Jedzenie", "2024-05-01")
	if tx.Amount.String() != "12.5" {
		t.Errorf("expected amount 12.5, got %s", tx.Amount)
	}
	if tx.UserID != user.ID {
		t.Errorf("expected transaction owned by %s, got %s", user.ID, tx.UserID)
	}

	event := testutil.CreateTestEvent(t, db, user.ID, "Rent", "2024-05-10")
	if event.EndDate != nil {
		t.Error("expected single-day event")
	}

	budget := testutil.CreateTestBudget(t, db, user.ID, "2024-05", 3000)
	if budget.Month != "2024-05" {
		t.Errorf("expected month 2024-05, got %s", budget.Month)
	}
}

func TestAssertAppError(t *testing.T) {
	testutil.AssertAppError(t, errors.ErrInvalidInput, "INVALID_INPUT")
	testutil.AssertAppError(t, errors.Wrap(errors.ErrDuplicateEmail, nil), "DUPLICATE_EMAIL")
}
