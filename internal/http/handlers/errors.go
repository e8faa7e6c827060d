package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
	"github.com/iwatajunior/transportes-sub001/internal/http/middleware"
	"github.com/iwatajunior/transportes-sub001/internal/services"
	"github.com/iwatajunior/transportes-sub001/internal/utils"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Unknown errors are
// logged and reported with a fixed message.
func RespondDomainError(c *gin.Context, err error) {
	var ve domain.ValidationError
	switch {
	case errors.As(err, &ve):
		var details any
		if ve.Field != "" {
			details = gin.H{"field": ve.Field}
		}
		respondError(c, http.StatusBadRequest, "validation_error", ve.Error(), details)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid_credentials", err.Error(), nil)
	default:
		utils.LogError(middleware.GetRequestID(c), "http", c.Request.Method+" "+c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "internal_error", "Erro interno. Tente novamente.", nil)
	}
}
