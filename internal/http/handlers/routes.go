package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
	"github.com/iwatajunior/transportes-sub001/internal/http/middleware"
	"github.com/iwatajunior/transportes-sub001/internal/services"
)

func (h *Handler) routeService(c *gin.Context) services.RouteService {
	return services.RouteService{Routes: h.Routes, RequestID: middleware.GetRequestID(c)}
}

// GET /api/routes?status=
func (h *Handler) ListRoutes(c *gin.Context) {
	list, err := h.routeService(c).List(c.Request.Context(), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/routes/:id
func (h *Handler) GetRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rt, err := h.routeService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

// PUT /api/routes/:id/status body {status}
func (h *Handler) UpdateRouteStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.StatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	rt, err := h.routeService(c).ChangeStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}
