package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finapp/internal/services"
)

// PriorityHandler handles monthly priority requests
type PriorityHandler struct {
	priorityService services.PriorityServicer
}

// NewPriorityHandler creates a new PriorityHandler
func NewPriorityHandler(priorityService services.PriorityServicer) *PriorityHandler {
	return &PriorityHandler{priorityService: priorityService}
}

// PriorityRequest represents the priority creation payload
type PriorityRequest struct {
	Title Text `json:"title" swaggertype:"string" example:"Spłacić kartę"`
	Month Text `json:"month" swaggertype:"string" example:"2024-02"`
}

// CreatePriority handles priority creation
// @Summary     Add a monthly priority
// @Tags        priorities
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body PriorityRequest true "Priority data"
// @Success     201 {object} IDResponse "Priority created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /priorities [post]
func (h *PriorityHandler) CreatePriority(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PriorityRequest
	if !bindJSON(c, &req) {
		return
	}

	priority, err := h.priorityService.CreatePriority(userID, req.Title.String(), req.Month.String())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: priority.ID})
}

// GetPriorities lists the caller's priorities
// @Summary     List monthly priorities
// @Tags        priorities
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Priority "Priorities"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /priorities [get]
func (h *PriorityHandler) GetPriorities(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	priorities, err := h.priorityService.GetUserPriorities(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, priorities)
}
