package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "finapp/internal/errors"
	"finapp/internal/models"
	"finapp/internal/password"
)

// userService handles user-related business logic.
type userService struct {
	db     *gorm.DB
	hasher password.Hasher
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, hasher password.Hasher) UserServicer {
	return &userService{db: db, hasher: hasher}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user. The unique index on email decides duplicates.
func (s *userService) Register(email, pw string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || pw == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Email and password required")
	}

	hash, err := s.hasher.Hash(pw)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{Email: email, PasswordHash: hash}
	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateEmail, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// Authenticate returns the user owning email when pw matches. Unknown emails
// and wrong passwords fail identically.
func (s *userService) Authenticate(email, pw string) (*models.User, error) {
	if NormalizeEmail(email) == "" || pw == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Email and password required")
	}

	user, err := s.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.hasher.CompareDummy(pw)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Compare(user.PasswordHash, pw) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// ChangePassword re-verifies the current password before storing a new hash.
func (s *userService) ChangePassword(userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Current and new password required")
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrInvalidCredentials
		}
		return err
	}
	if !s.hasher.Compare(user.PasswordHash, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(user).Update("password_hash", hash).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// isUniqueViolation detects unique-constraint failures. TranslateError covers
// the gorm drivers; the message check covers connections opened without it.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
