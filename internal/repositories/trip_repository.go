package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "github.com/iwatajunior/transportes-sub001/internal/config"
	intdb "github.com/iwatajunior/transportes-sub001/internal/db"
	"github.com/iwatajunior/transportes-sub001/internal/domain"
	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
)

const tripResource = "Viagem"

const tripSelect = `
	SELECT t.id, t.status,
	       t.origin, t.destination, COALESCE(t.purpose,''), t.departure_at, t.return_at,
	       t.passenger_count, COALESCE(t.vehicle_type,''), COALESCE(t.cost_center,''), COALESCE(t.notes,''),
	       t.requester_id, COALESCE(u.name,''),
	       t.allocated_vehicle_id, t.allocated_driver_id,
	       t.km_initial, COALESCE(t.km_initial_recorded_by,''),
	       t.km_final, COALESCE(t.km_final_recorded_by,''),
	       t.version, t.created_at, t.updated_at
	FROM trips t
	LEFT JOIN users u ON u.id = t.requester_id
`

// TripRepository owns the trips table. Every mutation bumps version; callers
// that pass an expected version get compare-and-swap semantics.
type TripRepository struct {
	DB      *sql.DB
	Dialect intdb.Dialect
	Now     func() time.Time
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TripRepository) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(s rowScanner) (models.Trip, error) {
	var (
		t         models.Trip
		status    string
		returnAt  sql.NullTime
		vehicleID sql.NullInt64
		driverID  sql.NullInt64
		kmInitial sql.NullFloat64
		kmFinal   sql.NullFloat64
	)
	err := s.Scan(
		&t.TripID, &status,
		&t.Origin, &t.Destination, &t.Purpose, &t.DepartureAt, &returnAt,
		&t.PassengerCount, &t.VehicleType, &t.CostCenter, &t.Notes,
		&t.RequesterID, &t.RequesterName,
		&vehicleID, &driverID,
		&kmInitial, &t.KMInitialRecordedBy,
		&kmFinal, &t.KMFinalRecordedBy,
		&t.Version, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}
	t.Status = models.TripStatus(status)
	if returnAt.Valid {
		v := returnAt.Time
		t.ReturnAt = &v
	}
	t.AllocatedVehicleID = intdb.NullInt64Ptr(vehicleID)
	t.AllocatedDriverID = intdb.NullInt64Ptr(driverID)
	t.KMInitial = intdb.NullFloatPtr(kmInitial)
	t.KMFinal = intdb.NullFloatPtr(kmFinal)
	return t, nil
}

func (r TripRepository) GetByID(ctx context.Context, id int64) (models.Trip, error) {
	row := r.db().QueryRowContext(ctx, r.Dialect.Rebind(tripSelect+` WHERE t.id = ?`), id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return t, domain.NotFoundError{Resource: tripResource, Err: err}
	}
	if err != nil {
		return t, fmt.Errorf("get trip %d: %w", id, err)
	}
	return t, nil
}

func (r TripRepository) List(ctx context.Context, f models.TripFilter) ([]models.Trip, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.Status != "" {
		where = append(where, "t.status = ?")
		args = append(args, string(f.Status))
	}
	if f.RequesterID > 0 {
		where = append(where, "t.requester_id = ?")
		args = append(args, f.RequesterID)
	}
	if f.DriverID > 0 {
		where = append(where, "t.allocated_driver_id = ?")
		args = append(args, f.DriverID)
	}

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := tripSelect + ` WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY t.departure_at DESC, t.id DESC LIMIT ? OFFSET ?`

	rows, err := r.db().QueryContext(ctx, r.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) Create(ctx context.Context, t models.Trip) (models.Trip, error) {
	now := r.now()
	id, err := r.Dialect.InsertID(ctx, r.db(), `
		INSERT INTO trips (
		  status, origin, destination, purpose, departure_at, return_at,
		  passenger_count, vehicle_type, cost_center, notes, requester_id,
		  version, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		"id",
		string(t.Status), t.Origin, t.Destination, t.Purpose, t.DepartureAt, t.ReturnAt,
		t.PassengerCount, intdb.NullIfEmpty(t.VehicleType), intdb.NullIfEmpty(t.CostCenter), intdb.NullIfEmpty(t.Notes), t.RequesterID,
		now, now,
	)
	if err != nil {
		if intdb.IsForeignKeyViolation(err) {
			return t, domain.ValidationError{Field: "requesterId", Msg: "Requisitante inexistente.", Err: err}
		}
		return t, fmt.Errorf("insert trip: %w", err)
	}
	return r.GetByID(ctx, id)
}

// UpdateAllocation writes only the non-nil fields of a. Previous values are
// overwritten without history.
func (r TripRepository) UpdateAllocation(ctx context.Context, id int64, a models.Allocation, expectedVersion *int64) (models.Trip, error) {
	sets := []string{}
	args := []any{}
	if a.VehicleID != nil {
		sets = append(sets, "allocated_vehicle_id = ?")
		args = append(args, *a.VehicleID)
	}
	if a.DriverID != nil {
		sets = append(sets, "allocated_driver_id = ?")
		args = append(args, *a.DriverID)
	}
	if len(sets) == 0 {
		return models.Trip{}, domain.ValidationError{Field: "vehicleId", Msg: models.MsgAllocationEmpty}
	}

	err := r.update(ctx, id, sets, args, expectedVersion)
	if err != nil {
		if intdb.IsForeignKeyViolation(err) {
			return models.Trip{}, domain.ValidationError{Field: "vehicleId", Msg: "Veículo ou motorista inexistente.", Err: err}
		}
		return models.Trip{}, err
	}
	return r.GetByID(ctx, id)
}

func (r TripRepository) UpdateStatus(ctx context.Context, id int64, status models.TripStatus, expectedVersion *int64) (models.Trip, error) {
	if err := r.update(ctx, id, []string{"status = ?"}, []any{string(status)}, expectedVersion); err != nil {
		return models.Trip{}, err
	}
	return r.GetByID(ctx, id)
}

// UpdateKMInitial refuses a reading above an already recorded final reading.
func (r TripRepository) UpdateKMInitial(ctx context.Context, id int64, km float64, recordedBy string) (models.Trip, error) {
	res, err := r.db().ExecContext(ctx, r.Dialect.Rebind(`
		UPDATE trips
		SET km_initial = ?, km_initial_recorded_by = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND (km_final IS NULL OR km_final >= ?)`),
		km, intdb.NullIfEmpty(recordedBy), r.now(), id, km,
	)
	if err != nil {
		return models.Trip{}, fmt.Errorf("update km_initial: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return current, err
		}
		return current, domain.ValidationError{Field: "km_inicial", Msg: models.MsgKMInitialAboveEnd}
	}
	return r.GetByID(ctx, id)
}

// UpdateKMFinal checks the ordering invariant in the same statement, so two
// concurrent writers cannot leave km_final below km_initial.
func (r TripRepository) UpdateKMFinal(ctx context.Context, id int64, km float64, recordedBy string) (models.Trip, error) {
	res, err := r.db().ExecContext(ctx, r.Dialect.Rebind(`
		UPDATE trips
		SET km_final = ?, km_final_recorded_by = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND km_initial IS NOT NULL AND km_initial <= ?`),
		km, intdb.NullIfEmpty(recordedBy), r.now(), id, km,
	)
	if err != nil {
		return models.Trip{}, fmt.Errorf("update km_final: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return current, err
		}
		if _, verr := models.ValidateKMFinal(current.KMInitial, fmt.Sprint(km)); verr != nil {
			return current, verr
		}
		return current, domain.ConflictError{Resource: tripResource}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the trip together with its caronas and evaluations.
func (r TripRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete trip: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		`DELETE FROM caronas WHERE trip_id = ?`,
		`DELETE FROM evaluations WHERE trip_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, r.Dialect.Rebind(q), id); err != nil {
			return fmt.Errorf("delete trip dependents: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, r.Dialect.Rebind(`DELETE FROM trips WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: tripResource}
	}
	return tx.Commit()
}

func (r TripRepository) update(ctx context.Context, id int64, sets []string, args []any, expectedVersion *int64) error {
	sets = append(sets, "version = version + 1", "updated_at = ?")
	args = append(args, r.now(), id)
	query := `UPDATE trips SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	if expectedVersion != nil {
		query += ` AND version = ?`
		args = append(args, *expectedVersion)
	}

	res, err := r.db().ExecContext(ctx, r.Dialect.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("update trip %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return domain.ConflictError{Resource: tripResource}
}
