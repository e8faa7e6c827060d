package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
	"github.com/iwatajunior/transportes-sub001/internal/http/middleware"
	"github.com/iwatajunior/transportes-sub001/internal/services"
)

func (h *Handler) caronaService(c *gin.Context) services.CaronaService {
	return services.CaronaService{Caronas: h.Caronas, RequestID: middleware.GetRequestID(c)}
}

// GET /api/trips/:id/caronas
func (h *Handler) ListCaronas(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	tripID, ok := parseID(c, "id")
	if !ok || !h.visibleTrip(c, rc, tripID) {
		return
	}
	list, err := h.caronaService(c).List(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/trips/:id/caronas
func (h *Handler) CreateCarona(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	tripID, ok := parseID(c, "id")
	if !ok || !h.visibleTrip(c, rc, tripID) {
		return
	}
	var req models.CreateCaronaRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	carona, err := h.caronaService(c).Create(c.Request.Context(), rc, tripID, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, carona)
}

// PUT /api/caronas/:id/status body {status}
func (h *Handler) UpdateCaronaStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.StatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	carona, err := h.caronaService(c).ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, carona)
}
