package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finapp/internal/services"
)

// InsightHandler serves the views computed from transactions
type InsightHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewInsightHandler creates a new InsightHandler
func NewInsightHandler(analyticsService services.AnalyticsServicer) *InsightHandler {
	return &InsightHandler{analyticsService: analyticsService}
}

// GetSummary returns income, expense and balance
// @Summary     Income and expense summary
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Summary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary [get]
func (h *InsightHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.analyticsService.GetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetAnalysis returns expense totals per category
// @Summary     Expenses by category
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  services.CategoryTotal "Totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analysis [get]
func (h *InsightHandler) GetAnalysis(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.analyticsService.GetExpenseAnalysis(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, totals)
}

// GetCategories returns the caller's categories merged with the defaults
// @Summary     List categories
// @Tags        insights
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  string "Sorted category names"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *InsightHandler) GetCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.analyticsService.GetCategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}
