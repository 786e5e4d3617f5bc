package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/David-19-dev/abdouperformence-sub001/internal/application"
	"github.com/David-19-dev/abdouperformence-sub001/internal/auth"
	"github.com/David-19-dev/abdouperformence-sub001/internal/domain/user"
	"github.com/David-19-dev/abdouperformence-sub001/internal/middleware"
	"github.com/David-19-dev/abdouperformence-sub001/internal/projection"
	"github.com/David-19-dev/abdouperformence-sub001/internal/response"
)

// AdminBookingHandler handles admin HTTP requests for booking management.
type AdminBookingHandler struct {
	service *application.BookingService
	feed    *projection.Feed
}

// NewAdminBookingHandler creates a new AdminBookingHandler.
func NewAdminBookingHandler(service *application.BookingService, feed *projection.Feed) *AdminBookingHandler {
	return &AdminBookingHandler{service: service, feed: feed}
}

// RegisterRoutes registers admin booking routes.
func (h *AdminBookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(string(user.RoleAdmin)))
	{
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/bookings/export", h.ExportCSV)
		admin.GET("/bookings/:id", h.GetBooking)
		admin.PATCH("/bookings/:id", h.UpdateBooking)
		admin.PATCH("/bookings/:id/status", h.UpdateStatus)
		admin.DELETE("/bookings/:id", h.DeleteBooking)
		admin.GET("/stats/bookings", h.BookingStats)
		admin.GET("/calendar", h.CalendarSnapshot)
	}
}

// ListBookings handles GET /api/v1/admin/bookings. Without query parameters
// it returns the full set, newest first; with them it applies the
// AND-combined filter.
func (h *AdminBookingHandler) ListBookings(c *gin.Context) {
	filter := filterFromQuery(c)

	bookings, err := h.service.FilterBookings(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, bookings)
}

// GetBooking handles GET /api/v1/admin/bookings/:id.
func (h *AdminBookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateBooking handles PATCH /api/v1/admin/bookings/:id.
func (h *AdminBookingHandler) UpdateBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var req application.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateBooking(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateStatus handles PATCH /api/v1/admin/bookings/:id/status.
func (h *AdminBookingHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteBooking handles DELETE /api/v1/admin/bookings/:id.
func (h *AdminBookingHandler) DeleteBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ExportCSV handles GET /api/v1/admin/bookings/export. The filter query
// parameters apply the same way as on the list endpoint.
func (h *AdminBookingHandler) ExportCSV(c *gin.Context) {
	filter := filterFromQuery(c)

	csv, err := h.service.ExportBookingsCSV(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reservations.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// BookingStats handles GET /api/v1/admin/stats/bookings.
func (h *AdminBookingHandler) BookingStats(c *gin.Context) {
	stats, err := h.service.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

// CalendarSnapshot handles GET /api/v1/admin/calendar, returning the live
// feed's most recent event set.
func (h *AdminBookingHandler) CalendarSnapshot(c *gin.Context) {
	response.Success(c, h.feed.Snapshot())
}

func filterFromQuery(c *gin.Context) application.BookingFilter {
	return application.BookingFilter{
		Query:       c.Query("q"),
		Status:      c.Query("status"),
		SessionType: c.Query("session_type"),
		DateRange:   application.DateRange(c.Query("range")),
	}
}
