package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
	"github.com/iwatajunior/transportes-sub001/internal/http/middleware"
	"github.com/iwatajunior/transportes-sub001/internal/services"
)

func (h *Handler) evaluationService(c *gin.Context) services.EvaluationService {
	return services.EvaluationService{Evaluations: h.Evaluations, RequestID: middleware.GetRequestID(c)}
}

// GET /api/trips/:id/evaluations
func (h *Handler) ListEvaluations(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	tripID, ok := parseID(c, "id")
	if !ok || !h.visibleTrip(c, rc, tripID) {
		return
	}
	list, err := h.evaluationService(c).List(c.Request.Context(), tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/trips/:id/evaluations
func (h *Handler) CreateEvaluation(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	tripID, ok := parseID(c, "id")
	if !ok || !h.visibleTrip(c, rc, tripID) {
		return
	}
	var req models.CreateEvaluationRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	e, err := h.evaluationService(c).Create(c.Request.Context(), rc, tripID, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// PUT /api/evaluations/:id/status body {status}
func (h *Handler) UpdateEvaluationStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.StatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	e, err := h.evaluationService(c).ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}
