package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finapp/internal/services"
)

// GoalHandler handles savings goal requests
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GoalRequest represents the goal creation payload
type GoalRequest struct {
	Name          Text   `json:"name" swaggertype:"string" example:"Wakacje"`
	TargetAmount  Number `json:"targetAmount" swaggertype:"number" example:"5000"`
	CurrentAmount Number `json:"currentAmount" swaggertype:"number" example:"1200"`
	TargetDate    Text   `json:"targetDate" swaggertype:"string" example:"2024-12-31"`
}

// CreateGoal handles goal creation
// @Summary     Create a savings goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body GoalRequest true "Goal data"
// @Success     201 {object} IDResponse "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GoalRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.goalService.CreateGoal(userID, services.GoalInput{
		Name:          req.Name.String(),
		TargetAmount:  req.TargetAmount.Decimal,
		CurrentAmount: req.CurrentAmount.Decimal,
		TargetDate:    req.TargetDate.String(),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: goal.ID})
}

// GetGoals lists the caller's goals
// @Summary     List savings goals
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Goal "Goals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.GetUserGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}
