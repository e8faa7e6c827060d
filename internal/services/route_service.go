package services

import (
	"context"
	"fmt"

	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
	"github.com/iwatajunior/transportes-sub001/internal/utils"
)

type RouteStore interface {
	List(ctx context.Context, status models.RouteStatus) ([]models.Route, error)
	GetByID(ctx context.Context, id int64) (models.Route, error)
	UpdateStatus(ctx context.Context, id int64, status models.RouteStatus) (models.Route, error)
}

// RouteService manages scheduled routes. Routes use their own status
// vocabulary; trip statuses such as Pendente are rejected.
type RouteService struct {
	Routes    RouteStore
	RequestID string
}

// List accepts an empty status to list every route.
func (s RouteService) List(ctx context.Context, status string) ([]models.Route, error) {
	var st models.RouteStatus
	if status != "" {
		parsed, err := models.ParseRouteStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}
	return s.Routes.List(ctx, st)
}

func (s RouteService) Get(ctx context.Context, id int64) (models.Route, error) {
	return s.Routes.GetByID(ctx, id)
}

func (s RouteService) ChangeStatus(ctx context.Context, id int64, status string) (models.Route, error) {
	st, err := models.ParseRouteStatus(status)
	if err != nil {
		return models.Route{}, err
	}
	rt, err := s.Routes.UpdateStatus(ctx, id, st)
	if err != nil {
		return rt, err
	}
	utils.LogEvent(s.RequestID, "routes", "change_status", fmt.Sprintf("route_id=%d status=%s", id, st))
	return rt, nil
}
