package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finapp/internal/services"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// TransactionRequest represents the transaction creation payload
type TransactionRequest struct {
	Amount      Number `json:"amount" swaggertype:"number" example:"150.00"`
	Type        Text   `json:"type" binding:"transaction_type" swaggertype:"string" enums:"income,expense"`
	Category    Text   `json:"category" swaggertype:"string" example:"Jedzenie"`
	Description Text   `json:"description" swaggertype:"string"`
	Date        Text   `json:"date" swaggertype:"string" example:"2024-01-05"`
	SideHustle  Text   `json:"sideHustle" swaggertype:"string"`
}

// CreateTransaction handles transaction creation
// @Summary     Create a transaction
// @Description Record an income or expense. Missing fields take their defaults.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction data"
// @Success     201 {object} IDResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	transaction, err := h.transactionService.CreateTransaction(userID, services.TransactionInput{
		Amount:      req.Amount.Decimal,
		Type:        req.Type.String(),
		Category:    req.Category.String(),
		Description: req.Description.String(),
		Date:        req.Date.String(),
		SideHustle:  req.SideHustle.String(),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: transaction.ID})
}

// GetTransactions lists the caller's transactions
// @Summary     List transactions
// @Description Transactions of the caller, newest date first
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Transaction "Transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions, err := h.transactionService.GetUserTransactions(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// DeleteTransaction handles transaction deletion
// @Summary     Delete a transaction
// @Description Delete one of the caller's transactions. Unknown or foreign ids are ignored.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} StatusResponse "Deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID := c.Param("id")
	deleted, err := h.transactionService.DeleteTransaction(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if deleted {
		h.auditService.Log(userID, services.AuditActionDeleteTransaction, services.AuditResourceTransaction, transactionID, c.ClientIP(), nil)
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "deleted"})
}
