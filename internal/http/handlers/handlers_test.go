package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
	"github.com/iwatajunior/transportes-sub001/internal/events"
	"github.com/iwatajunior/transportes-sub001/internal/http/middleware"
)

type stubTrips struct {
	trip   models.Trip
	writes int
}

func (s *stubTrips) GetByID(_ context.Context, id int64) (models.Trip, error) {
	if id != s.trip.TripID {
		return models.Trip{}, domain.NotFoundError{Resource: "Viagem"}
	}
	return s.trip, nil
}

func (s *stubTrips) List(context.Context, models.TripFilter) ([]models.Trip, error) {
	return []models.Trip{s.trip}, nil
}

func (s *stubTrips) Create(_ context.Context, t models.Trip) (models.Trip, error) {
	s.writes++
	t.TripID = 77
	return t, nil
}

func (s *stubTrips) UpdateAllocation(_ context.Context, id int64, a models.Allocation, _ *int64) (models.Trip, error) {
	s.writes++
	if a.VehicleID != nil {
		s.trip.AllocatedVehicleID = a.VehicleID
	}
	if a.DriverID != nil {
		s.trip.AllocatedDriverID = a.DriverID
	}
	return s.GetByID(context.Background(), id)
}

func (s *stubTrips) UpdateStatus(_ context.Context, id int64, st models.TripStatus, _ *int64) (models.Trip, error) {
	s.writes++
	s.trip.Status = st
	return s.GetByID(context.Background(), id)
}

func (s *stubTrips) UpdateKMInitial(_ context.Context, id int64, km float64, by string) (models.Trip, error) {
	s.writes++
	s.trip.KMInitial = &km
	s.trip.KMInitialRecordedBy = by
	return s.GetByID(context.Background(), id)
}

func (s *stubTrips) UpdateKMFinal(_ context.Context, id int64, km float64, by string) (models.Trip, error) {
	s.writes++
	s.trip.KMFinal = &km
	s.trip.KMFinalRecordedBy = by
	return s.GetByID(context.Background(), id)
}

func (s *stubTrips) Delete(_ context.Context, id int64) error {
	if id != s.trip.TripID {
		return domain.NotFoundError{Resource: "Viagem"}
	}
	s.writes++
	return nil
}

var gestor = domain.RequestContext{UserID: 1, Name: "Ana", Role: domain.RoleManager}

func newTestEngine(t *testing.T, store *stubTrips, rc domain.RequestContext) (*gin.Engine, *events.Recorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := &events.Recorder{}
	hd := New(Deps{Trips: store, Bus: rec})

	r := gin.New()
	r.Use(middleware.RequestID(), func(c *gin.Context) {
		middleware.SetCaller(c, rc)
		c.Next()
	})
	r.GET("/trips/:id", hd.GetTrip)
	r.POST("/trips", hd.CreateTrip)
	r.PUT("/trips/:id/allocate", hd.AllocateTrip)
	r.PUT("/trips/:id/status", hd.UpdateTripStatus)
	r.PUT("/trips/:id/km/start", hd.StartKM)
	r.PUT("/trips/:id/km/manage-end", hd.EndKM)
	r.DELETE("/trips/:id", hd.DeleteTrip)
	r.GET("/trips/:id/sheet", hd.TripSheet)
	return r, rec
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestAllocateReturnsWrappedTrip(t *testing.T) {
	store := &stubTrips{trip: models.Trip{TripID: 5, Status: models.TripApproved}}
	r, rec := newTestEngine(t, store, gestor)

	w := do(r, http.MethodPut, "/trips/5/allocate", `{"vehicleId": 3, "driverId": null}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	trip, ok := body["trip"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), trip["allocatedVehicleId"])
	assert.Nil(t, trip["allocatedDriverId"])
	assert.Equal(t, []string{events.TripAllocated}, rec.Types())
}

func TestAllocateWithoutSelectionIs400(t *testing.T) {
	store := &stubTrips{trip: models.Trip{TripID: 5}}
	r, _ := newTestEngine(t, store, gestor)

	w := do(r, http.MethodPut, "/trips/5/allocate", `{"vehicleId": null, "driverId": null}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, models.MsgAllocationEmpty, body["message"])
	assert.Equal(t, "validation_error", body["code"])
	assert.NotEmpty(t, body["request_id"])
	assert.Zero(t, store.writes)
}

func TestStatusEchoesTrip(t *testing.T) {
	store := &stubTrips{trip: models.Trip{TripID: 5, Status: models.TripPending}}
	r, _ := newTestEngine(t, store, gestor)

	w := do(r, http.MethodPut, "/trips/5/status", `{"status": "Agendada"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Agendada", body["status"])
	assert.Equal(t, float64(5), body["tripId"])
}

func TestKMStartValidation(t *testing.T) {
	store := &stubTrips{trip: models.Trip{TripID: 5}}
	r, _ := newTestEngine(t, store, gestor)

	cases := map[string]string{
		``:                      models.MsgKMInitialRequired,
		`{}`:                    models.MsgKMInitialRequired,
		`{"km_inicial": "abc"}`: models.MsgKMInitialNumeric,
		`{"km_inicial": -1}`:    models.MsgKMInitialNegative,
		`{"km_inicial": null}`:  models.MsgKMInitialRequired,
	}
	for body, want := range cases {
		w := do(r, http.MethodPut, "/trips/5/km/start", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, want, decode(t, w)["message"], body)
	}
	assert.Zero(t, store.writes)

	w := do(r, http.MethodPut, "/trips/5/km/start", `{"km_inicial": "1520"}`)
	require.Equal(t, http.StatusOK, w.Code)
	trip := decode(t, w)["trip"].(map[string]any)
	assert.Equal(t, float64(1520), trip["kmInitial"])
}

func TestKMEndOrdering(t *testing.T) {
	store := &stubTrips{trip: models.Trip{TripID: 5}}
	r, _ := newTestEngine(t, store, gestor)

	w := do(r, http.MethodPut, "/trips/5/km/manage-end", `{"km_final": 50}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.MsgKMFinalBeforeInitial, decode(t, w)["message"])

	initial := 100.0
	store.trip.KMInitial = &initial
	w = do(r, http.MethodPut, "/trips/5/km/manage-end", `{"km_final": 80}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.MsgKMFinalBelowInitial, decode(t, w)["message"])
	assert.Zero(t, store.writes)

	w = do(r, http.MethodPut, "/trips/5/km/manage-end", `{"km_final": 180}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ana", decode(t, w)["trip"].(map[string]any)["kmFinalRecordedBy"])
}

func TestDeleteTrip(t *testing.T) {
	store := &stubTrips{trip: models.Trip{TripID: 5}}
	r, rec := newTestEngine(t, store, gestor)

	w := do(r, http.MethodDelete, "/trips/5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["ok"])
	assert.Equal(t, []string{events.TripDeleted}, rec.Types())

	w = do(r, http.MethodDelete, "/trips/6", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidIDAndBody(t *testing.T) {
	store := &stubTrips{trip: models.Trip{TripID: 5}}
	r, _ := newTestEngine(t, store, gestor)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/trips/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/trips/0/status", `{"status":"Agendada"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/trips/5/status", `{"status":`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/trips/5/status", `{"status":"Voando"}`).Code)
}

func TestGetTripForbiddenForOtherRequester(t *testing.T) {
	store := &stubTrips{trip: models.Trip{TripID: 5, RequesterID: 99}}
	r, _ := newTestEngine(t, store, domain.RequestContext{UserID: 42, Role: domain.RoleRequester})

	w := do(r, http.MethodGet, "/trips/5", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodGet, "/trips/5/sheet", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTripSheetPDF(t *testing.T) {
	store := &stubTrips{trip: models.Trip{TripID: 5, Origin: "Campus", Destination: "Centro"}}
	r, _ := newTestEngine(t, store, gestor)

	w := do(r, http.MethodGet, "/trips/5/sheet", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "FICHA_VIAGEM_5.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestCreateTripRequiresFields(t *testing.T) {
	store := &stubTrips{}
	r, _ := newTestEngine(t, store, gestor)

	w := do(r, http.MethodPost, "/trips", `{"origin":"A"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, store.writes)

	w = do(r, http.MethodPost, "/trips", `{"origin":"A","destination":"B","purpose":"C","departureAt":"2026-03-10T08:00:00Z","passengerCount":2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	trip := decode(t, w)["trip"].(map[string]any)
	assert.Equal(t, "Pendente", trip["status"])
	assert.Equal(t, float64(1), trip["requesterId"])
}

type stubCaronas struct {
	list    []models.Carona
	created int
}

func (s *stubCaronas) ListByTrip(context.Context, int64) ([]models.Carona, error) {
	return s.list, nil
}

func (s *stubCaronas) GetByID(context.Context, int64) (models.Carona, error) {
	return models.Carona{}, domain.NotFoundError{Resource: "Carona"}
}

func (s *stubCaronas) Create(_ context.Context, c models.Carona) (models.Carona, error) {
	s.created++
	c.ID = int64(s.created)
	return c, nil
}

func (s *stubCaronas) UpdateStatus(context.Context, int64, models.RequestStatus) (models.Carona, error) {
	return models.Carona{}, domain.NotFoundError{Resource: "Carona"}
}

type stubEvaluations struct {
	list    []models.Evaluation
	created int
}

func (s *stubEvaluations) ListByTrip(context.Context, int64) ([]models.Evaluation, error) {
	return s.list, nil
}

func (s *stubEvaluations) GetByID(context.Context, int64) (models.Evaluation, error) {
	return models.Evaluation{}, domain.NotFoundError{Resource: "Avaliação"}
}

func (s *stubEvaluations) Create(_ context.Context, e models.Evaluation) (models.Evaluation, error) {
	s.created++
	e.ID = int64(s.created)
	return e, nil
}

func (s *stubEvaluations) UpdateStatus(context.Context, int64, models.EvaluationStatus) (models.Evaluation, error) {
	return models.Evaluation{}, domain.NotFoundError{Resource: "Avaliação"}
}

func newSatelliteEngine(store *stubTrips, caronas *stubCaronas, evals *stubEvaluations, rc domain.RequestContext) *gin.Engine {
	gin.SetMode(gin.TestMode)
	hd := New(Deps{Trips: store, Caronas: caronas, Evaluations: evals})

	r := gin.New()
	r.Use(middleware.RequestID(), func(c *gin.Context) {
		middleware.SetCaller(c, rc)
		c.Next()
	})
	r.GET("/trips/:id/caronas", hd.ListCaronas)
	r.POST("/trips/:id/caronas", hd.CreateCarona)
	r.GET("/trips/:id/evaluations", hd.ListEvaluations)
	r.POST("/trips/:id/evaluations", hd.CreateEvaluation)
	return r
}

func TestTripSatellitesFollowTripVisibility(t *testing.T) {
	store := &stubTrips{trip: models.Trip{TripID: 5, RequesterID: 10}}
	caronas := &stubCaronas{list: []models.Carona{{ID: 1, TripID: 5, PassengerName: "Segredo", Seats: 1}}}
	evals := &stubEvaluations{list: []models.Evaluation{{ID: 1, TripID: 5, Rating: 4}}}

	stranger := newSatelliteEngine(store, caronas, evals, domain.RequestContext{UserID: 99, Role: domain.RoleRequester})
	cases := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/trips/5/caronas", ""},
		{http.MethodPost, "/trips/5/caronas", `{"passengerName":"Intruso","seats":1}`},
		{http.MethodGet, "/trips/5/evaluations", ""},
		{http.MethodPost, "/trips/5/evaluations", `{"rating":1}`},
	}
	for _, tc := range cases {
		w := do(stranger, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusForbidden, w.Code, tc.method+" "+tc.path)
		assert.NotContains(t, w.Body.String(), "Segredo")
	}
	assert.Zero(t, caronas.created)
	assert.Zero(t, evals.created)

	w := do(stranger, http.MethodGet, "/trips/6/caronas", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	owner := newSatelliteEngine(store, caronas, evals, domain.RequestContext{UserID: 10, Role: domain.RoleRequester})
	w = do(owner, http.MethodGet, "/trips/5/caronas", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Segredo")

	w = do(owner, http.MethodPost, "/trips/5/caronas", `{"passengerName":"Bia","seats":2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = do(owner, http.MethodPost, "/trips/5/evaluations", `{"rating":5,"comment":"ok"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, caronas.created)
	assert.Equal(t, 1, evals.created)
}
