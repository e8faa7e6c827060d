package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/vehicles/available
func (h *Handler) AvailableVehicles(c *gin.Context) {
	list, err := h.lookupService(c).AvailableVehicles(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/lookups/refresh drops cached vehicle and driver lists.
func (h *Handler) RefreshLookups(c *gin.Context) {
	if err := h.lookupService(c).Refresh(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
