package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "finapp/internal/errors"
	"finapp/internal/models"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"

	orderByCreation = "created_at ASC, id ASC"
)

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

// ownedStore runs the queries shared by every user-owned record type.
// Each statement is filtered by user_id.
type ownedStore[T any] struct {
	db *gorm.DB
}

func (s ownedStore[T]) create(record *T) error {
	if err := s.db.Create(record).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s ownedStore[T]) list(userID, order string) ([]T, error) {
	records := make([]T, 0)
	if err := s.db.Where("user_id = ?", userID).Order(order).Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return records, nil
}

func (s ownedStore[T]) delete(userID, id string) (int64, error) {
	result := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(new(T))
	if result.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected, nil
}

// orDefault returns fallback when value is empty.
func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// money rounds an amount to cents, rejecting values a numeric(14,2)
// column cannot store.
func money(field string, amount decimal.Decimal) (decimal.Decimal, error) {
	v, ok := models.NormalizeMoney(amount)
	if !ok {
		return decimal.Zero, apperrors.WithMessage(apperrors.ErrInvalidInput, field+" out of range")
	}
	return v, nil
}
