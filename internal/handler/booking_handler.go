package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/David-19-dev/abdouperformence-sub001/internal/application"
	"github.com/David-19-dev/abdouperformence-sub001/internal/response"
)

// BookingHandler handles the public booking form endpoint.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers the public booking routes.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/api/v1/bookings", h.CreateBooking)
}

// CreateBooking handles POST /api/v1/bookings, the website's booking form.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
