package services

import (
	"context"
	"sort"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
)

// memTrips is an in-memory TripStore with the same guards as the SQL one.
type memTrips struct {
	trips  map[int64]models.Trip
	nextID int64
	calls  []string
}

func newMemTrips(trips ...models.Trip) *memTrips {
	m := &memTrips{trips: map[int64]models.Trip{}, nextID: 100}
	for _, t := range trips {
		if t.Version == 0 {
			t.Version = 1
		}
		m.trips[t.TripID] = t
	}
	return m
}

func (m *memTrips) GetByID(_ context.Context, id int64) (models.Trip, error) {
	m.calls = append(m.calls, "get")
	t, ok := m.trips[id]
	if !ok {
		return t, domain.NotFoundError{Resource: "Viagem"}
	}
	return t, nil
}

func (m *memTrips) List(_ context.Context, f models.TripFilter) ([]models.Trip, error) {
	m.calls = append(m.calls, "list")
	out := []models.Trip{}
	for _, t := range m.trips {
		if f.RequesterID != 0 && t.RequesterID != f.RequesterID {
			continue
		}
		if f.DriverID != 0 && (t.AllocatedDriverID == nil || *t.AllocatedDriverID != f.DriverID) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TripID < out[j].TripID })
	return out, nil
}

func (m *memTrips) Create(_ context.Context, t models.Trip) (models.Trip, error) {
	m.calls = append(m.calls, "create")
	m.nextID++
	t.TripID = m.nextID
	t.Version = 1
	m.trips[t.TripID] = t
	return t, nil
}

func (m *memTrips) mutate(id int64, expected *int64, fn func(*models.Trip)) (models.Trip, error) {
	t, ok := m.trips[id]
	if !ok {
		return t, domain.NotFoundError{Resource: "Viagem"}
	}
	if expected != nil && *expected != t.Version {
		return models.Trip{}, domain.ConflictError{Resource: "Viagem"}
	}
	fn(&t)
	t.Version++
	m.trips[id] = t
	return t, nil
}

func (m *memTrips) UpdateAllocation(_ context.Context, id int64, a models.Allocation, expected *int64) (models.Trip, error) {
	m.calls = append(m.calls, "allocate")
	return m.mutate(id, expected, func(t *models.Trip) {
		if a.VehicleID != nil {
			t.AllocatedVehicleID = a.VehicleID
		}
		if a.DriverID != nil {
			t.AllocatedDriverID = a.DriverID
		}
	})
}

func (m *memTrips) UpdateStatus(_ context.Context, id int64, status models.TripStatus, expected *int64) (models.Trip, error) {
	m.calls = append(m.calls, "status")
	return m.mutate(id, expected, func(t *models.Trip) { t.Status = status })
}

func (m *memTrips) UpdateKMInitial(_ context.Context, id int64, km float64, by string) (models.Trip, error) {
	m.calls = append(m.calls, "km_initial")
	if t, ok := m.trips[id]; ok && t.KMFinal != nil && *t.KMFinal < km {
		return t, domain.ValidationError{Field: "km_inicial", Msg: models.MsgKMInitialAboveEnd}
	}
	return m.mutate(id, nil, func(t *models.Trip) {
		t.KMInitial = &km
		t.KMInitialRecordedBy = by
	})
}

func (m *memTrips) UpdateKMFinal(_ context.Context, id int64, km float64, by string) (models.Trip, error) {
	m.calls = append(m.calls, "km_final")
	return m.mutate(id, nil, func(t *models.Trip) {
		t.KMFinal = &km
		t.KMFinalRecordedBy = by
	})
}

func (m *memTrips) Delete(_ context.Context, id int64) error {
	m.calls = append(m.calls, "delete")
	if _, ok := m.trips[id]; !ok {
		return domain.NotFoundError{Resource: "Viagem"}
	}
	delete(m.trips, id)
	return nil
}

func (m *memTrips) wrote() bool {
	for _, c := range m.calls {
		switch c {
		case "create", "allocate", "status", "km_initial", "km_final", "delete":
			return true
		}
	}
	return false
}

func int64p(v int64) *int64       { return &v }
func float64p(v float64) *float64 { return &v }

var (
	manager   = domain.RequestContext{UserID: 1, Name: "Gestora Ana", Role: domain.RoleManager}
	driver    = domain.RequestContext{UserID: 8, Name: "Carlos", Role: domain.RoleDriver}
	requester = domain.RequestContext{UserID: 42, Name: "Rita", Role: domain.RoleRequester}
)
