package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/users/drivers
func (h *Handler) Drivers(c *gin.Context) {
	list, err := h.lookupService(c).Drivers(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/users/me
func (h *Handler) Me(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rc)
}
