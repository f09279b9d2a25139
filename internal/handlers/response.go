package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tripweaver/booking-backend/internal/services"
)

// SuccessResponse is the envelope for successful responses
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope for error responses
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: message, Data: data})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Message: message, Data: data})
}

// respondError maps a workflow error to its HTTP status. Unknown errors become
// a generic 500; the underlying cause is only echoed when the deployment
// exposes error details.
func respondError(c *gin.Context, logger *logrus.Logger, exposeDetails bool, err error) {
	var bErr *services.BookingError
	if errors.As(err, &bErr) {
		resp := ErrorResponse{
			Success: false,
			Error:   string(bErr.Kind),
			Message: bErr.Message,
			Detail:  bErr.Detail,
		}
		if bErr.Err != nil && exposeDetails {
			resp.Detail = bErr.Err.Error()
		}
		c.JSON(bErr.HTTPStatus(), resp)
		return
	}

	logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled error")
	resp := ErrorResponse{
		Success: false,
		Error:   "internal_error",
		Message: "Something went wrong",
	}
	if exposeDetails {
		resp.Detail = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

func respondValidation(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Error:   "validation_error",
		Message: message,
	})
}

func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Success: false,
		Error:   "unauthorized",
		Message: "User context not found",
	})
}
