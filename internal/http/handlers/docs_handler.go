package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iwatajunior/transportes-sub001/internal/http/middleware"
	"github.com/iwatajunior/transportes-sub001/internal/services"
)

// GET /api/trips/:id/sheet returns the trip sheet PDF (inline).
func (h *Handler) TripSheet(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok || !h.visibleTrip(c, rc, id) {
		return
	}

	svc := services.DocsService{
		Trips:     h.Trips,
		Vehicles:  h.Vehicles,
		Users:     h.Users,
		Location:  h.Location,
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.TripSheet(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
