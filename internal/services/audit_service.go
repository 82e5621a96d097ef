package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"finapp/internal/logger"
	"finapp/internal/models"
)

// Audit actions.
const (
	AuditActionRegister          = "REGISTER"
	AuditActionLogin             = "LOGIN"
	AuditActionChangePassword    = "CHANGE_PASSWORD"
	AuditActionDeleteTransaction = "DELETE_TRANSACTION"
)

// Audited resource types.
const (
	AuditResourceUser        = "user"
	AuditResourceTransaction = "transaction"
)

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log appends one row to audit_logs. A failed write is logged and
// swallowed so the audited request still succeeds.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	entry := models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encodeChanges(action, changes),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		logger.Get().Errorw("audit write failed",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource", resourceType+"/"+resourceID,
		)
	}
}

// encodeChanges renders changes as a JSON object. Nil yields "".
func encodeChanges(action string, changes map[string]interface{}) string {
	if changes == nil {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		logger.Get().Warnw("audit changes not encodable", "action", action, "error", err)
		return "{}"
	}
	return string(data)
}
