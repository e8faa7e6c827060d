package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "github.com/iwatajunior/transportes-sub001/internal/config"
	intdb "github.com/iwatajunior/transportes-sub001/internal/db"
	"github.com/iwatajunior/transportes-sub001/internal/domain"
	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
)

type RouteRepository struct {
	DB      *sql.DB
	Dialect intdb.Dialect
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const routeSelect = `
	SELECT id, name, origin, destination, departure_at, vehicle_id, driver_id, status, updated_at
	FROM routes
`

func scanRoute(s rowScanner) (models.Route, error) {
	var (
		rt        models.Route
		vehicleID sql.NullInt64
		driverID  sql.NullInt64
		status    string
	)
	if err := s.Scan(&rt.ID, &rt.Name, &rt.Origin, &rt.Destination, &rt.DepartureAt, &vehicleID, &driverID, &status, &rt.UpdatedAt); err != nil {
		return rt, err
	}
	rt.VehicleID = intdb.NullInt64Ptr(vehicleID)
	rt.DriverID = intdb.NullInt64Ptr(driverID)
	rt.Status = models.RouteStatus(status)
	return rt, nil
}

func (r RouteRepository) List(ctx context.Context, status models.RouteStatus) ([]models.Route, error) {
	query := routeSelect
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY departure_at ASC, id ASC`

	rows, err := r.db().QueryContext(ctx, r.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepository) GetByID(ctx context.Context, id int64) (models.Route, error) {
	rt, err := scanRoute(r.db().QueryRowContext(ctx, r.Dialect.Rebind(routeSelect+` WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return rt, domain.NotFoundError{Resource: "Rota", Err: err}
	}
	if err != nil {
		return rt, fmt.Errorf("get route %d: %w", id, err)
	}
	return rt, nil
}

func (r RouteRepository) UpdateStatus(ctx context.Context, id int64, status models.RouteStatus) (models.Route, error) {
	res, err := r.db().ExecContext(ctx, r.Dialect.Rebind(`UPDATE routes SET status = ?, updated_at = ? WHERE id = ?`),
		string(status), time.Now().UTC(), id)
	if err != nil {
		return models.Route{}, fmt.Errorf("update route status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Route{}, domain.NotFoundError{Resource: "Rota"}
	}
	return r.GetByID(ctx, id)
}
