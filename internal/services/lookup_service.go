package services

import (
	"context"
	"fmt"

	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
	"github.com/iwatajunior/transportes-sub001/internal/utils"
)

const (
	lookupVehicles = "vehicles:available"
	lookupDrivers  = "users:drivers"
)

type VehicleLister interface {
	ListAvailable(ctx context.Context) ([]models.Vehicle, error)
}

type DriverLister interface {
	ListDrivers(ctx context.Context) ([]models.User, error)
}

// LookupService serves the allocation option lists. With a cache configured,
// Redis failures are logged and the database is queried instead.
type LookupService struct {
	Vehicles   VehicleLister
	DriverList DriverLister
	Cache      *LookupCache
	RequestID  string
}

func (s LookupService) AvailableVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return cached(ctx, s, lookupVehicles, s.Vehicles.ListAvailable)
}

func (s LookupService) Drivers(ctx context.Context) ([]models.User, error) {
	return cached(ctx, s, lookupDrivers, s.DriverList.ListDrivers)
}

// Refresh drops cached lists so the next read hits the database.
func (s LookupService) Refresh(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	if err := s.Cache.Invalidate(ctx, lookupVehicles, lookupDrivers); err != nil {
		return fmt.Errorf("refresh lookups: %w", err)
	}
	utils.LogEvent(s.RequestID, "lookups", "refresh", "cache invalidated")
	return nil
}

func cached[T any](ctx context.Context, s LookupService, name string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s.Cache != nil {
		var out []T
		hit, err := s.Cache.get(ctx, name, &out)
		if err != nil {
			utils.LogError(s.RequestID, "lookups", "cache_get", err)
		}
		if hit {
			return out, nil
		}
	}

	out, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.set(ctx, name, out); err != nil {
			utils.LogError(s.RequestID, "lookups", "cache_set", err)
		}
	}
	return out, nil
}
