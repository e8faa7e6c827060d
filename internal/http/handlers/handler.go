package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	intdb "github.com/iwatajunior/transportes-sub001/internal/db"
	"github.com/iwatajunior/transportes-sub001/internal/domain"
	"github.com/iwatajunior/transportes-sub001/internal/events"
	"github.com/iwatajunior/transportes-sub001/internal/http/middleware"
	"github.com/iwatajunior/transportes-sub001/internal/repositories"
	"github.com/iwatajunior/transportes-sub001/internal/services"
)

// VehicleStore is what the handlers need from the vehicles table.
type VehicleStore interface {
	services.VehicleLister
	services.VehicleGetter
}

// UserStore is what the handlers need from the users table.
type UserStore interface {
	services.DriverLister
	services.UserGetter
	services.UserFinder
}

// Deps wires storage and infrastructure into the handlers. Nil stores are
// filled from DB by New.
type Deps struct {
	DB      *sql.DB
	Dialect intdb.Dialect

	Trips       services.TripStore
	Vehicles    VehicleStore
	Users       UserStore
	Routes      services.RouteStore
	Caronas     services.CaronaStore
	Evaluations services.EvaluationStore

	Bus       events.Bus
	Cache     *services.LookupCache
	JWTSecret []byte
	JWTTTL    time.Duration
	Location  *time.Location
}

// Handler holds the dependencies shared by all endpoints. Services are built
// per request so that they carry the request id.
type Handler struct {
	Deps
}

func New(d Deps) *Handler {
	if d.Trips == nil {
		d.Trips = repositories.TripRepository{DB: d.DB, Dialect: d.Dialect}
	}
	if d.Vehicles == nil {
		d.Vehicles = repositories.VehicleRepository{DB: d.DB, Dialect: d.Dialect}
	}
	if d.Users == nil {
		d.Users = repositories.UserRepository{DB: d.DB, Dialect: d.Dialect}
	}
	if d.Routes == nil {
		d.Routes = repositories.RouteRepository{DB: d.DB, Dialect: d.Dialect}
	}
	if d.Caronas == nil {
		d.Caronas = repositories.CaronaRepository{DB: d.DB, Dialect: d.Dialect}
	}
	if d.Evaluations == nil {
		d.Evaluations = repositories.EvaluationRepository{DB: d.DB, Dialect: d.Dialect}
	}
	if d.Bus == nil {
		d.Bus = events.Nop{}
	}
	return &Handler{Deps: d}
}

func (h *Handler) tripService(c *gin.Context) services.TripService {
	return services.TripService{Trips: h.Trips, Bus: h.Bus, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) lookupService(c *gin.Context) services.LookupService {
	return services.LookupService{Vehicles: h.Vehicles, DriverList: h.Users, Cache: h.Cache, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) AuthService() services.AuthService {
	return services.AuthService{Users: h.Users, Secret: h.JWTSecret, TTL: h.JWTTTL}
}

// parseID reads a positive integer path parameter and writes a 400 otherwise.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "ID inválido.", nil)
		return 0, false
	}
	return id, true
}

// caller returns the authenticated user or writes a 401.
// visibleTrip answers 404/403 unless rc may read the trip. Endpoints nested
// under a trip call it before touching the trip's records.
func (h *Handler) visibleTrip(c *gin.Context, rc domain.RequestContext, tripID int64) bool {
	if _, err := h.tripService(c).Get(c.Request.Context(), rc, tripID); err != nil {
		RespondDomainError(c, err)
		return false
	}
	return true
}

func caller(c *gin.Context) (domain.RequestContext, bool) {
	rc, ok := middleware.Caller(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "Usuário não autenticado.", nil)
		return rc, false
	}
	return rc, true
}
