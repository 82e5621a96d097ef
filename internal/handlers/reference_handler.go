package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finapp/internal/services"
)

// ReferenceHandler serves public static data
type ReferenceHandler struct {
	referenceService services.ReferenceServicer
}

// NewReferenceHandler creates a new ReferenceHandler
func NewReferenceHandler(referenceService services.ReferenceServicer) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

// GetCurrency returns the exchange-rate table
// @Summary     Exchange rates
// @Tags        reference
// @Produce     json
// @Success     200 {object} services.CurrencySnapshot "Rates against PLN"
// @Router      /currency [get]
func (h *ReferenceHandler) GetCurrency(c *gin.Context) {
	c.JSON(http.StatusOK, h.referenceService.CurrencyRates())
}

// GetKnowledge returns the knowledge base articles
// @Summary     Knowledge base
// @Tags        reference
// @Produce     json
// @Success     200 {array} services.Article "Articles"
// @Router      /knowledge [get]
func (h *ReferenceHandler) GetKnowledge(c *gin.Context) {
	c.JSON(http.StatusOK, h.referenceService.Knowledge())
}
