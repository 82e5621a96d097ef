package services

import (
	"github.com/shopspring/decimal"

	"finapp/internal/models"
)

// UserServicer defines the contract for credential storage and verification.
type UserServicer interface {
	Register(email, password string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
}

// TransactionInput carries an already coerced transaction payload.
// Empty strings mean the field was not supplied.
type TransactionInput struct {
	Amount      decimal.Decimal
	Type        string
	Category    string
	Description string
	Date        string
	SideHustle  string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error)
	GetUserTransactions(userID string) ([]models.Transaction, error)
	// DeleteTransaction reports whether a row owned by userID was removed.
	// Missing and foreign ids are not an error.
	DeleteTransaction(userID, transactionID string) (bool, error)
}

// EventInput carries an already coerced event payload.
type EventInput struct {
	Title    string
	Start    string
	End      string
	Category string
}

// EventServicer defines the contract for calendar events.
type EventServicer interface {
	CreateEvent(userID string, in EventInput) (*models.Event, error)
	GetUserEvents(userID string) ([]models.Event, error)
}

// GoalInput carries an already coerced goal payload.
type GoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    string
}

// GoalServicer defines the contract for savings goals.
type GoalServicer interface {
	CreateGoal(userID string, in GoalInput) (*models.Goal, error)
	GetUserGoals(userID string) ([]models.Goal, error)
}

// HoldItemInput carries an already coerced hold item payload.
type HoldItemInput struct {
	Name      string
	Price     decimal.Decimal
	AddedDate string
}

// HoldItemServicer defines the contract for held purchases.
type HoldItemServicer interface {
	CreateHoldItem(userID string, in HoldItemInput) (*models.HoldItem, error)
	GetUserHoldItems(userID string) ([]models.HoldItem, error)
}

// PriorityServicer defines the contract for monthly priorities.
type PriorityServicer interface {
	CreatePriority(userID, title, month string) (*models.Priority, error)
	GetUserPriorities(userID string) ([]models.Priority, error)
}

// BudgetServicer defines the contract for monthly budgets.
type BudgetServicer interface {
	CreateBudget(userID, month string, amount decimal.Decimal) (*models.Budget, error)
	GetUserBudgets(userID string) ([]models.Budget, error)
}

// Summary is the income/expense balance of a user's transactions.
type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// CategoryTotal is the expense total of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// AnalyticsServicer defines the read-only views derived from transactions.
type AnalyticsServicer interface {
	GetSummary(userID string) (*Summary, error)
	GetExpenseAnalysis(userID string) ([]CategoryTotal, error)
	GetCategories(userID string) ([]string, error)
}

// CurrencySnapshot is the fixed exchange-rate table.
type CurrencySnapshot struct {
	Base    string                     `json:"base"`
	Rates   map[string]decimal.Decimal `json:"rates"`
	Updated string                     `json:"updated"`
}

// Article is one entry of the financial knowledge base.
type Article struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// ReferenceServicer serves static reference data.
type ReferenceServicer interface {
	CurrencyRates() CurrencySnapshot
	Knowledge() []Article
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
