package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finapp/internal/services"
)

// HoldItemHandler handles held purchase requests
type HoldItemHandler struct {
	holdItemService services.HoldItemServicer
}

// NewHoldItemHandler creates a new HoldItemHandler
func NewHoldItemHandler(holdItemService services.HoldItemServicer) *HoldItemHandler {
	return &HoldItemHandler{holdItemService: holdItemService}
}

// HoldItemRequest represents the hold item creation payload
type HoldItemRequest struct {
	Name      Text   `json:"name" swaggertype:"string" example:"Słuchawki"`
	Price     Number `json:"price" swaggertype:"number" example:"349.99"`
	AddedDate Text   `json:"addedDate" swaggertype:"string" example:"2024-02-01"`
}

// CreateHoldItem handles hold item creation
// @Summary     Put a purchase on hold
// @Tags        hold-items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body HoldItemRequest true "Hold item data"
// @Success     201 {object} IDResponse "Hold item created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /hold-items [post]
func (h *HoldItemHandler) CreateHoldItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req HoldItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.holdItemService.CreateHoldItem(userID, services.HoldItemInput{
		Name:      req.Name.String(),
		Price:     req.Price.Decimal,
		AddedDate: req.AddedDate.String(),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: item.ID})
}

// GetHoldItems lists the caller's held purchases
// @Summary     List held purchases
// @Tags        hold-items
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.HoldItem "Hold items"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /hold-items [get]
func (h *HoldItemHandler) GetHoldItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items, err := h.holdItemService.GetUserHoldItems(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}
