package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "github.com/iwatajunior/transportes-sub001/internal/config"
	intdb "github.com/iwatajunior/transportes-sub001/internal/db"
	"github.com/iwatajunior/transportes-sub001/internal/domain"
	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
)

type VehicleRepository struct {
	DB      *sql.DB
	Dialect intdb.Dialect
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const vehicleSelect = `
	SELECT id, plate, COALESCE(model,''), COALESCE(vehicle_type,''), COALESCE(capacity,0), status, odometer
	FROM vehicles
`

func scanVehicle(s rowScanner) (models.Vehicle, error) {
	var (
		v   models.Vehicle
		odo sql.NullInt64
	)
	if err := s.Scan(&v.ID, &v.Plate, &v.Model, &v.Type, &v.Capacity, &v.Status, &odo); err != nil {
		return v, err
	}
	v.Odometer = intdb.NullInt64Ptr(odo)
	return v, nil
}

// ListAvailable returns vehicles whose status makes them selectable for a trip.
// It does not look at other trips' allocations.
func (r VehicleRepository) ListAvailable(ctx context.Context) ([]models.Vehicle, error) {
	rows, err := r.db().QueryContext(ctx, r.Dialect.Rebind(vehicleSelect+` WHERE status = ? ORDER BY plate ASC`), models.VehicleAvailable)
	if err != nil {
		return nil, fmt.Errorf("list available vehicles: %w", err)
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r VehicleRepository) GetByID(ctx context.Context, id int64) (models.Vehicle, error) {
	v, err := scanVehicle(r.db().QueryRowContext(ctx, r.Dialect.Rebind(vehicleSelect+` WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return v, domain.NotFoundError{Resource: "Veículo", Err: err}
	}
	if err != nil {
		return v, fmt.Errorf("get vehicle %d: %w", id, err)
	}
	return v, nil
}

type UserRepository struct {
	DB      *sql.DB
	Dialect intdb.Dialect
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userSelect = `
	SELECT id, name, email, COALESCE(phone,''), role, active, COALESCE(password_hash,'')
	FROM users
`

func scanUser(s rowScanner) (models.User, error) {
	var u models.User
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.Active, &u.PasswordHash)
	return u, err
}

// ListDrivers returns active users holding the Motorista role.
func (r UserRepository) ListDrivers(ctx context.Context) ([]models.User, error) {
	rows, err := r.db().QueryContext(ctx, r.Dialect.Rebind(userSelect+` WHERE role = ? AND active = ? ORDER BY name ASC`), string(domain.RoleDriver), true)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		u.PasswordHash = ""
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	u, err := scanUser(r.db().QueryRowContext(ctx, r.Dialect.Rebind(userSelect+` WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "Usuário", Err: err}
	}
	if err != nil {
		return u, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// GetByEmail is used by login; the password hash is kept.
func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := scanUser(r.db().QueryRowContext(ctx, r.Dialect.Rebind(userSelect+` WHERE LOWER(email) = LOWER(?)`), email))
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "Usuário", Err: err}
	}
	if err != nil {
		return u, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}
