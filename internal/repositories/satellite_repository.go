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

// CaronaRepository stores ride-share requests. Their status is independent
// of the parent trip's status.
type CaronaRepository struct {
	DB      *sql.DB
	Dialect intdb.Dialect
}

func (r CaronaRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const caronaSelect = `
	SELECT id, trip_id, requester_id, passenger_name, seats, COALESCE(reason,''), status, created_at
	FROM caronas
`

func scanCarona(s rowScanner) (models.Carona, error) {
	var (
		c      models.Carona
		status string
	)
	if err := s.Scan(&c.ID, &c.TripID, &c.RequesterID, &c.PassengerName, &c.Seats, &c.Reason, &status, &c.CreatedAt); err != nil {
		return c, err
	}
	c.Status = models.RequestStatus(status)
	return c, nil
}

func (r CaronaRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Carona, error) {
	rows, err := r.db().QueryContext(ctx, r.Dialect.Rebind(caronaSelect+` WHERE trip_id = ? ORDER BY id ASC`), tripID)
	if err != nil {
		return nil, fmt.Errorf("list caronas: %w", err)
	}
	defer rows.Close()

	out := []models.Carona{}
	for rows.Next() {
		c, err := scanCarona(rows)
		if err != nil {
			return nil, fmt.Errorf("scan carona: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CaronaRepository) GetByID(ctx context.Context, id int64) (models.Carona, error) {
	c, err := scanCarona(r.db().QueryRowContext(ctx, r.Dialect.Rebind(caronaSelect+` WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return c, domain.NotFoundError{Resource: "Carona", Err: err}
	}
	if err != nil {
		return c, fmt.Errorf("get carona %d: %w", id, err)
	}
	return c, nil
}

func (r CaronaRepository) Create(ctx context.Context, c models.Carona) (models.Carona, error) {
	id, err := r.Dialect.InsertID(ctx, r.db(), `
		INSERT INTO caronas (trip_id, requester_id, passenger_name, seats, reason, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"id",
		c.TripID, c.RequesterID, c.PassengerName, c.Seats, intdb.NullIfEmpty(c.Reason), string(c.Status), time.Now().UTC(),
	)
	if err != nil {
		if intdb.IsForeignKeyViolation(err) {
			return c, domain.NotFoundError{Resource: tripResource, Err: err}
		}
		return c, fmt.Errorf("insert carona: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r CaronaRepository) UpdateStatus(ctx context.Context, id int64, status models.RequestStatus) (models.Carona, error) {
	res, err := r.db().ExecContext(ctx, r.Dialect.Rebind(`UPDATE caronas SET status = ? WHERE id = ?`), string(status), id)
	if err != nil {
		return models.Carona{}, fmt.Errorf("update carona status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Carona{}, domain.NotFoundError{Resource: "Carona"}
	}
	return r.GetByID(ctx, id)
}

type EvaluationRepository struct {
	DB      *sql.DB
	Dialect intdb.Dialect
}

func (r EvaluationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const evaluationSelect = `
	SELECT id, trip_id, evaluator_id, rating, COALESCE(comment,''), status, created_at
	FROM evaluations
`

func scanEvaluation(s rowScanner) (models.Evaluation, error) {
	var (
		e      models.Evaluation
		status string
	)
	if err := s.Scan(&e.ID, &e.TripID, &e.EvaluatorID, &e.Rating, &e.Comment, &status, &e.CreatedAt); err != nil {
		return e, err
	}
	e.Status = models.EvaluationStatus(status)
	return e, nil
}

func (r EvaluationRepository) ListByTrip(ctx context.Context, tripID int64) ([]models.Evaluation, error) {
	rows, err := r.db().QueryContext(ctx, r.Dialect.Rebind(evaluationSelect+` WHERE trip_id = ? ORDER BY id ASC`), tripID)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	out := []models.Evaluation{}
	for rows.Next() {
		e, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r EvaluationRepository) GetByID(ctx context.Context, id int64) (models.Evaluation, error) {
	e, err := scanEvaluation(r.db().QueryRowContext(ctx, r.Dialect.Rebind(evaluationSelect+` WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return e, domain.NotFoundError{Resource: "Avaliação", Err: err}
	}
	if err != nil {
		return e, fmt.Errorf("get evaluation %d: %w", id, err)
	}
	return e, nil
}

func (r EvaluationRepository) Create(ctx context.Context, e models.Evaluation) (models.Evaluation, error) {
	id, err := r.Dialect.InsertID(ctx, r.db(), `
		INSERT INTO evaluations (trip_id, evaluator_id, rating, comment, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		"id",
		e.TripID, e.EvaluatorID, e.Rating, intdb.NullIfEmpty(e.Comment), string(e.Status), time.Now().UTC(),
	)
	if err != nil {
		if intdb.IsForeignKeyViolation(err) {
			return e, domain.NotFoundError{Resource: tripResource, Err: err}
		}
		return e, fmt.Errorf("insert evaluation: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r EvaluationRepository) UpdateStatus(ctx context.Context, id int64, status models.EvaluationStatus) (models.Evaluation, error) {
	res, err := r.db().ExecContext(ctx, r.Dialect.Rebind(`UPDATE evaluations SET status = ? WHERE id = ?`), string(status), id)
	if err != nil {
		return models.Evaluation{}, fmt.Errorf("update evaluation status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Evaluation{}, domain.NotFoundError{Resource: "Avaliação"}
	}
	return r.GetByID(ctx, id)
}
