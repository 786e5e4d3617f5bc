package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
)

// envelope is the uniform JSON body for all API responses.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Error: msg})
}

// Error maps a domain error to its HTTP status; anything unrecognized
// becomes a generic 500 without leaking internals.
func Error(c *gin.Context, err error) {
	var domErr *domain.Error
	if errors.As(err, &domErr) {
		c.JSON(statusFor(domErr.Kind), envelope{Success: false, Error: domErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, envelope{Success: false, Error: "internal server error"})
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
