package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finapp/internal/models"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	store ownedStore[models.Budget]
	now   Clock
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, now Clock) BudgetServicer {
	if now == nil {
		now = utcNow
	}
	return &budgetService{store: ownedStore[models.Budget]{db: db}, now: now}
}

// CreateBudget sets a spending limit for month, defaulting to the current month.
func (s *budgetService) CreateBudget(userID, month string, amount decimal.Decimal) (*models.Budget, error) {
	amount, err := money("amount", amount)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		Owned:  models.Owned{UserID: userID},
		Month:  orDefault(month, s.now().Format(monthLayout)),
		Amount: amount,
	}
	if err := s.store.create(budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// GetUserBudgets lists the user's budgets in creation order.
func (s *budgetService) GetUserBudgets(userID string) ([]models.Budget, error) {
	return s.store.list(userID, orderByCreation)
}
