package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
)

// GET /api/trips?status=&limit=&offset=
func (h *Handler) ListTrips(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	f := models.TripFilter{}
	if raw := c.Query("status"); raw != "" {
		st, err := models.ParseTripStatus(raw)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		f.Status = st
	}
	f.Limit, _ = strconv.Atoi(c.Query("limit"))
	f.Offset, _ = strconv.Atoi(c.Query("offset"))
	if rc.Role.IsManager() {
		f.RequesterID, _ = strconv.ParseInt(c.Query("requesterId"), 10, 64)
		f.DriverID, _ = strconv.ParseInt(c.Query("driverId"), 10, 64)
	}

	trips, err := h.tripService(c).List(c.Request.Context(), rc, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GET /api/trips/:id
func (h *Handler) GetTrip(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	trip, err := h.tripService(c).Get(c.Request.Context(), rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips
func (h *Handler) CreateTrip(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	var req models.CreateTripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, err := h.tripService(c).Create(c.Request.Context(), rc, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

// PUT /api/trips/:id/allocate body {vehicleId, driverId}
func (h *Handler) AllocateTrip(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.AllocateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, err := h.tripService(c).Allocate(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// PUT /api/trips/:id/status body {status}. Responds with the trip itself.
func (h *Handler) UpdateTripStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.StatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, err := h.tripService(c).ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// PUT /api/trips/:id/km/start body {km_inicial}
func (h *Handler) StartKM(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.KMInitialRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	trip, err := h.tripService(c).RecordKMInitial(c.Request.Context(), rc, id, req.KMInitial.Raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// PUT /api/trips/:id/km/manage-end body {km_final}
func (h *Handler) EndKM(c *gin.Context) {
	rc, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.KMFinalRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	trip, err := h.tripService(c).RecordKMFinal(c.Request.Context(), rc, id, req.KMFinal.Raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// DELETE /api/trips/:id
func (h *Handler) DeleteTrip(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.tripService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// bindOptionalJSON treats an empty body as an empty object so that the
// field-level "required" message wins over a generic one.
func bindOptionalJSON[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	return BindJSONOrError(c, dst)
}
