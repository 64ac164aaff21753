package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ScholarStream/scholarship-service/internal/services"
	"github.com/ScholarStream/scholarship-service/internal/utils"
)

// ErrorResponse is the error body shape shared by all handlers.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// BaseHandler carries the cross-cutting handler plumbing: logging and the
// service-error to HTTP-status mapping.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.LoggerFromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.LoggerFromContext(c, h.logger).Error(msg, append(args, "error", err)...)
}

// handleServiceError maps service-layer errors onto HTTP responses in one
// place so individual handlers stay thin.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var upstream *services.UpstreamError
	switch {
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case services.IsPermissionError(err):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: err.Error(),
		})
	case services.IsInvalidInputError(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
		})
	case errors.As(err, &upstream):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "upstream_failure",
			Message: upstream.Error(),
		})
	default:
		h.LogError(c, err, "unhandled service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "internal server error",
			Details: err.Error(),
		})
	}
}

// parseIDParam reads a numeric path parameter. A non-numeric value is a
// client error, not a lookup miss.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: "invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}
