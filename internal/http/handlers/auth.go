package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
	"github.com/iwatajunior/transportes-sub001/internal/http/middleware"
)

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := h.AuthService()
	svc.RequestID = middleware.GetRequestID(c)

	token, user, err := svc.Login(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
