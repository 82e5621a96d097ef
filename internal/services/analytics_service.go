package services

import (
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finapp/internal/errors"
	"finapp/internal/models"
)

// BaselineCategories are offered to every user regardless of history.
var BaselineCategories = []string{"Stałe", "Jedzenie", "Transport", "Oszczędności", "Inne"}

// analyticsService computes views over a user's transactions.
type analyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB) AnalyticsServicer {
	return &analyticsService{db: db}
}

// GetSummary totals income and expense in a single query.
func (s *analyticsService) GetSummary(userID string) (*Summary, error) {
	var row struct {
		Income  decimal.Decimal
		Expense decimal.Decimal
	}
	err := s.db.Model(&models.Transaction{}).
		Select(
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS income, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS expense",
			models.TransactionTypeIncome, models.TransactionTypeExpense,
		).
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	income := row.Income.Round(2)
	expense := row.Expense.Round(2)
	return &Summary{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}, nil
}

// GetExpenseAnalysis sums expenses per category. Categories without
// expenses are omitted.
func (s *analyticsService) GetExpenseAnalysis(userID string) ([]CategoryTotal, error) {
	totals := make([]CategoryTotal, 0)
	err := s.db.Model(&models.Transaction{}).
		Select("category, SUM(amount) AS total").
		Where("user_id = ? AND type = ?", userID, models.TransactionTypeExpense).
		Group("category").
		Order("category ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range totals {
		totals[i].Total = totals[i].Total.Round(2)
	}
	return totals, nil
}

// GetCategories merges the user's categories with the baseline set.
func (s *analyticsService) GetCategories(userID string) ([]string, error) {
	var used []string
	err := s.db.Model(&models.Transaction{}).
		Distinct("category").
		Where("user_id = ?", userID).
		Pluck("category", &used).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	seen := make(map[string]struct{}, len(used)+len(BaselineCategories))
	categories := make([]string, 0, len(used)+len(BaselineCategories))
	for _, c := range append(used, BaselineCategories...) {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}
