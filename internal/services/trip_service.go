package services

import (
	"context"
	"fmt"
	"time"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
	"github.com/iwatajunior/transportes-sub001/internal/events"
	"github.com/iwatajunior/transportes-sub001/internal/utils"
)

// TripStore is the persistence surface used by TripService.
// repositories.TripRepository satisfies it.
type TripStore interface {
	GetByID(ctx context.Context, id int64) (models.Trip, error)
	List(ctx context.Context, f models.TripFilter) ([]models.Trip, error)
	Create(ctx context.Context, t models.Trip) (models.Trip, error)
	UpdateAllocation(ctx context.Context, id int64, a models.Allocation, expectedVersion *int64) (models.Trip, error)
	UpdateStatus(ctx context.Context, id int64, status models.TripStatus, expectedVersion *int64) (models.Trip, error)
	UpdateKMInitial(ctx context.Context, id int64, km float64, recordedBy string) (models.Trip, error)
	UpdateKMFinal(ctx context.Context, id int64, km float64, recordedBy string) (models.Trip, error)
	Delete(ctx context.Context, id int64) error
}

// TripService owns the trip lifecycle: creation, allocation, status, mileage
// and deletion. Status changes are checked against the allow-list only; any
// status may follow any other.
type TripService struct {
	Trips     TripStore
	Bus       events.Bus
	RequestID string
	Now       func() time.Time
}

func (s TripService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s TripService) publish(typ string, id int64, t *models.Trip) {
	if s.Bus == nil {
		return
	}
	s.Bus.Publish(events.TripEvent{Type: typ, TripID: id, Trip: t, RequestID: s.RequestID, At: s.now()})
}

// Get returns a trip the caller is allowed to see: managers see everything,
// requesters their own trips, drivers the trips allocated to them.
func (s TripService) Get(ctx context.Context, caller domain.RequestContext, id int64) (models.Trip, error) {
	t, err := s.Trips.GetByID(ctx, id)
	if err != nil {
		return t, err
	}
	if !t.VisibleTo(caller) {
		return models.Trip{}, domain.ForbiddenError{Msg: "Sem permissão para acessar esta viagem."}
	}
	return t, nil
}

// List scopes the filter to the caller before querying.
func (s TripService) List(ctx context.Context, caller domain.RequestContext, f models.TripFilter) ([]models.Trip, error) {
	switch {
	case caller.Role.IsManager():
	case caller.Role == domain.RoleDriver:
		f.RequesterID = 0
		f.DriverID = caller.UserID
	default:
		f.DriverID = 0
		f.RequesterID = caller.UserID
	}
	return s.Trips.List(ctx, f)
}

// Create stores a new request in status Pendente, owned by the caller.
func (s TripService) Create(ctx context.Context, caller domain.RequestContext, req models.CreateTripRequest) (models.Trip, error) {
	if err := models.Validate(req); err != nil {
		return models.Trip{}, err
	}
	if req.ReturnAt != nil && req.ReturnAt.Before(req.DepartureAt) {
		return models.Trip{}, domain.ValidationError{Field: "returnAt", Msg: "Data de retorno não pode ser anterior à data de saída."}
	}

	t := models.Trip{
		Status:         models.TripPending,
		Origin:         utils.NormalizeSpace(req.Origin),
		Destination:    utils.NormalizeSpace(req.Destination),
		Purpose:        utils.NormalizeSpace(req.Purpose),
		DepartureAt:    req.DepartureAt,
		ReturnAt:       req.ReturnAt,
		PassengerCount: req.PassengerCount,
		VehicleType:    utils.NormalizeSpace(req.VehicleType),
		CostCenter:     utils.NormalizeSpace(req.CostCenter),
		Notes:          req.Notes,
		RequesterID:    caller.UserID,
	}
	created, err := s.Trips.Create(ctx, t)
	if err != nil {
		return created, err
	}
	utils.LogEvent(s.RequestID, "trips", "create", fmt.Sprintf("trip_id=%d requester_id=%d", created.TripID, caller.UserID))
	s.publish(events.TripCreated, created.TripID, &created)
	return created, nil
}

// Allocate writes the vehicle and/or driver. Only the provided side is
// touched; previous values are overwritten.
func (s TripService) Allocate(ctx context.Context, id int64, req models.AllocateRequest) (models.Trip, error) {
	a, err := models.ValidateAllocation(req.VehicleID, req.DriverID)
	if err != nil {
		return models.Trip{}, err
	}
	t, err := s.Trips.UpdateAllocation(ctx, id, a, req.Version)
	if err != nil {
		return t, err
	}
	utils.LogEvent(s.RequestID, "trips", "allocate", fmt.Sprintf("trip_id=%d vehicle_id=%s driver_id=%s", id, idOrDash(a.VehicleID), idOrDash(a.DriverID)))
	s.publish(events.TripAllocated, id, &t)
	return t, nil
}

// ChangeStatus sets any allowed status regardless of the current one.
func (s TripService) ChangeStatus(ctx context.Context, id int64, req models.StatusRequest) (models.Trip, error) {
	status, err := models.ParseTripStatus(req.Status)
	if err != nil {
		return models.Trip{}, err
	}
	t, err := s.Trips.UpdateStatus(ctx, id, status, req.Version)
	if err != nil {
		return t, err
	}
	utils.LogEvent(s.RequestID, "trips", "change_status", fmt.Sprintf("trip_id=%d status=%s", id, status))
	s.publish(events.TripStatusChanged, id, &t)
	return t, nil
}

// RecordKMInitial stores the starting odometer reading. A driver may only
// record it on a trip allocated to them.
func (s TripService) RecordKMInitial(ctx context.Context, caller domain.RequestContext, id int64, raw string) (models.Trip, error) {
	km, err := models.ValidateKMInitial(raw)
	if err != nil {
		return models.Trip{}, err
	}
	if !caller.Role.IsManager() {
		current, err := s.Trips.GetByID(ctx, id)
		if err != nil {
			return current, err
		}
		if current.AllocatedDriverID == nil || *current.AllocatedDriverID != caller.UserID {
			return models.Trip{}, domain.ForbiddenError{Msg: "Somente o motorista alocado pode registrar o KM Inicial."}
		}
	}
	t, err := s.Trips.UpdateKMInitial(ctx, id, km, caller.Name)
	if err != nil {
		return t, err
	}
	utils.LogEvent(s.RequestID, "trips", "km_initial", fmt.Sprintf("trip_id=%d km=%s", id, utils.FormatKM(&km)))
	s.publish(events.TripKMRecorded, id, &t)
	return t, nil
}

// RecordKMFinal validates against the stored initial reading before writing.
func (s TripService) RecordKMFinal(ctx context.Context, caller domain.RequestContext, id int64, raw string) (models.Trip, error) {
	current, err := s.Trips.GetByID(ctx, id)
	if err != nil {
		return current, err
	}
	km, err := models.ValidateKMFinal(current.KMInitial, raw)
	if err != nil {
		return models.Trip{}, err
	}
	t, err := s.Trips.UpdateKMFinal(ctx, id, km, caller.Name)
	if err != nil {
		return t, err
	}
	utils.LogEvent(s.RequestID, "trips", "km_final", fmt.Sprintf("trip_id=%d km=%s", id, utils.FormatKM(&km)))
	s.publish(events.TripKMRecorded, id, &t)
	return t, nil
}

// Delete is a hard delete.
func (s TripService) Delete(ctx context.Context, id int64) error {
	if err := s.Trips.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "trips", "delete", fmt.Sprintf("trip_id=%d", id))
	s.publish(events.TripDeleted, id, nil)
	return nil
}

func idOrDash(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
