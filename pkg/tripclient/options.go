package tripclient

import (
	"context"
	"net/http"

	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
)

const (
	WarnVehiclesForbidden = "Sem permissão para listar veículos disponíveis."
	WarnDriversForbidden  = "Sem permissão para listar motoristas."
)

// AllocationOptions feeds the allocation form. Warnings holds lists that
// could not be loaded for permission reasons.
type AllocationOptions struct {
	Vehicles []models.Vehicle
	Drivers  []models.User
	Warnings []string
}

// LoadAllocationOptions fetches vehicles and drivers. A 401 or 403 on either
// list becomes a warning and an empty list; any other failure is returned.
func (c *Client) LoadAllocationOptions(ctx context.Context) (AllocationOptions, error) {
	out := AllocationOptions{Vehicles: []models.Vehicle{}, Drivers: []models.User{}}

	if err := c.do(ctx, http.MethodGet, "/vehicles/available", nil, &out.Vehicles); err != nil {
		if !IsPermission(err) {
			return AllocationOptions{}, err
		}
		out.Vehicles = []models.Vehicle{}
		out.Warnings = append(out.Warnings, WarnVehiclesForbidden)
	}
	if err := c.do(ctx, http.MethodGet, "/users/drivers", nil, &out.Drivers); err != nil {
		if !IsPermission(err) {
			return AllocationOptions{}, err
		}
		out.Drivers = []models.User{}
		out.Warnings = append(out.Warnings, WarnDriversForbidden)
	}
	return out, nil
}
