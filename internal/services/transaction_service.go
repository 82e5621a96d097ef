package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "finapp/internal/errors"
	"finapp/internal/models"
	"finapp/internal/uuid"
)

// DefaultCategory is used when a record arrives without a category.
const DefaultCategory = "Inne"

const orderTransactions = "date DESC, created_at ASC, id ASC"

// transactionService handles transaction-related business logic.
type transactionService struct {
	store ownedStore[models.Transaction]
	now   Clock
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, now Clock) TransactionServicer {
	if now == nil {
		now = utcNow
	}
	return &transactionService{store: ownedStore[models.Transaction]{db: db}, now: now}
}

// ParseTransactionType normalizes raw into a TransactionType. Empty input
// means expense.
func ParseTransactionType(raw string) (models.TransactionType, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return models.TransactionTypeExpense, nil
	}
	t := models.TransactionType(raw)
	if !t.Valid() {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	return t, nil
}

// CreateTransaction records an income or expense for userID.
func (s *transactionService) CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error) {
	txType, err := ParseTransactionType(in.Type)
	if err != nil {
		return nil, err
	}
	amount, err := money("amount", in.Amount)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		Owned:       models.Owned{UserID: userID},
		Amount:      amount,
		Type:        txType,
		Category:    orDefault(in.Category, DefaultCategory),
		Description: in.Description,
		Date:        orDefault(in.Date, s.now().Format(dateLayout)),
		SideHustle:  in.SideHustle,
	}
	if err := s.store.create(transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

// GetUserTransactions lists the user's transactions, newest date first.
func (s *transactionService) GetUserTransactions(userID string) ([]models.Transaction, error) {
	return s.store.list(userID, orderTransactions)
}

// DeleteTransaction removes the transaction when userID owns it.
func (s *transactionService) DeleteTransaction(userID, transactionID string) (bool, error) {
	if !uuid.IsValid(transactionID) {
		return false, nil
	}
	n, err := s.store.delete(userID, transactionID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
