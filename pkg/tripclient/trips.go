package tripclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
)

type tripEnvelope struct {
	Trip models.Trip `json:"trip"`
}

// TripList is a locally held list of trips.
type TripList []models.Trip

// Remove returns the list without the trip with the given id.
func (l TripList) Remove(id int64) TripList {
	out := make(TripList, 0, len(l))
	for _, t := range l {
		if t.TripID != id {
			out = append(out, t)
		}
	}
	return out
}

func (c *Client) GetTrip(ctx context.Context, id int64) (models.Trip, error) {
	var t models.Trip
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/trips/%d", id), nil, &t)
	return t, err
}

func (c *Client) ListTrips(ctx context.Context) (TripList, error) {
	var list TripList
	err := c.do(ctx, http.MethodGet, "/trips", nil, &list)
	return list, err
}

// SubmitKMInitial validates raw and, on success, replaces *trip with the
// server's copy.
func (c *Client) SubmitKMInitial(ctx context.Context, trip *models.Trip, raw string) error {
	km, err := models.ValidateKMInitial(raw)
	if err != nil {
		return err
	}
	var env tripEnvelope
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/trips/%d/km/start", trip.TripID), map[string]float64{"km_inicial": km}, &env); err != nil {
		return err
	}
	*trip = env.Trip
	return nil
}

// SubmitKMFinal checks raw against the trip's initial reading before any
// request is made.
func (c *Client) SubmitKMFinal(ctx context.Context, trip *models.Trip, raw string) error {
	km, err := models.ValidateKMFinal(trip.KMInitial, raw)
	if err != nil {
		return err
	}
	var env tripEnvelope
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/trips/%d/km/manage-end", trip.TripID), map[string]float64{"km_final": km}, &env); err != nil {
		return err
	}
	*trip = env.Trip
	return nil
}

// Allocate sends the selection and replaces *trip in full with the server's
// answer.
func (c *Client) Allocate(ctx context.Context, trip *models.Trip, vehicleID, driverID *int64) error {
	a, err := models.ValidateAllocation(vehicleID, driverID)
	if err != nil {
		return err
	}
	body := models.AllocateRequest{VehicleID: a.VehicleID, DriverID: a.DriverID}
	var env tripEnvelope
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/trips/%d/allocate", trip.TripID), body, &env); err != nil {
		return err
	}
	*trip = env.Trip
	return nil
}

// ChangeStatus patches only trip.Status; other cached fields are left as
// they were.
func (c *Client) ChangeStatus(ctx context.Context, trip *models.Trip, status string) error {
	st, err := models.ParseTripStatus(status)
	if err != nil {
		return err
	}
	var updated models.Trip
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/trips/%d/status", trip.TripID), models.StatusRequest{Status: string(st)}, &updated); err != nil {
		return err
	}
	if updated.Status != "" {
		trip.Status = updated.Status
	} else {
		trip.Status = st
	}
	return nil
}

// Delete removes a trip on the server. Callers drop it locally with
// TripList.Remove.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/trips/%d", id), nil, nil)
}
