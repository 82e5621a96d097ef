package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finapp/internal/services"
)

// EventHandler handles calendar event requests
type EventHandler struct {
	eventService services.EventServicer
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService services.EventServicer) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// EventRequest represents the event creation payload
type EventRequest struct {
	Title    Text `json:"title" swaggertype:"string" example:"Czynsz"`
	Start    Text `json:"start" swaggertype:"string" example:"2024-02-10"`
	End      Text `json:"end" swaggertype:"string"`
	Category Text `json:"category" swaggertype:"string" example:"Stałe"`
}

// CreateEvent handles event creation
// @Summary     Create an event
// @Tags        events
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body EventRequest true "Event data"
// @Success     201 {object} IDResponse "Event created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EventRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.eventService.CreateEvent(userID, services.EventInput{
		Title:    req.Title.String(),
		Start:    req.Start.String(),
		End:      req.End.String(),
		Category: req.Category.String(),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, IDResponse{ID: event.ID})
}

// GetEvents lists the caller's events
// @Summary     List events
// @Tags        events
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Event "Events"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /events [get]
func (h *EventHandler) GetEvents(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	events, err := h.eventService.GetUserEvents(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}
