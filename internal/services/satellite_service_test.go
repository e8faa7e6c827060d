package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intdb "github.com/iwatajunior/transportes-sub001/internal/db"
	"github.com/iwatajunior/transportes-sub001/internal/domain"
	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
	"github.com/iwatajunior/transportes-sub001/internal/repositories"
)

func TestCaronaCreateThroughRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO caronas").
		WithArgs(int64(5), requester.UserID, "Rita Lima", 2, "Mesma reunião", "Pendente", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(31)))
	mock.ExpectQuery("FROM caronas").WithArgs(int64(31)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trip_id", "requester_id", "passenger_name", "seats", "reason", "status", "created_at"}).
			AddRow(int64(31), int64(5), requester.UserID, "Rita Lima", 2, "Mesma reunião", "Pendente", now))

	svc := CaronaService{Caronas: repositories.CaronaRepository{DB: db, Dialect: intdb.Postgres}}
	c, err := svc.Create(context.Background(), requester, 5, models.CreateCaronaRequest{
		PassengerName: " Rita   Lima ",
		Seats:         2,
		Reason:        "Mesma reunião",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(31), c.ID)
	assert.Equal(t, models.RequestPending, c.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCaronaCreateValidation(t *testing.T) {
	svc := CaronaService{}
	_, err := svc.Create(context.Background(), requester, 5, models.CreateCaronaRequest{Seats: 1})
	assert.True(t, domain.IsValidation(err))
}

func TestCaronaChangeStatusRejectsUnknown(t *testing.T) {
	svc := CaronaService{}
	_, err := svc.ChangeStatus(context.Background(), 1, "Andamento")
	assert.True(t, domain.IsValidation(err))
}

func TestEvaluationCreateAndAnswer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	cols := []string{"id", "trip_id", "evaluator_id", "rating", "comment", "status", "created_at"}
	mock.ExpectExec("INSERT INTO evaluations").
		WithArgs(int64(5), requester.UserID, 4, nil, "Pendente", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery("FROM evaluations").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(9), int64(5), requester.UserID, 4, "", "Pendente", now))
	mock.ExpectExec("UPDATE evaluations SET status").
		WithArgs("Concluida", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM evaluations").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(9), int64(5), requester.UserID, 4, "", "Concluida", now))

	svc := EvaluationService{Evaluations: repositories.EvaluationRepository{DB: db, Dialect: intdb.MySQL}}
	e, err := svc.Create(context.Background(), requester, 5, models.CreateEvaluationRequest{Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, models.EvaluationPending, e.Status)

	e, err = svc.ChangeStatus(context.Background(), 9, "concluída")
	require.NoError(t, err)
	assert.Equal(t, models.EvaluationAnswered, e.Status)
	assert.NoError(t, mock.ExpectationsWereMet())

	_, err = svc.Create(context.Background(), requester, 5, models.CreateEvaluationRequest{Rating: 6})
	assert.True(t, domain.IsValidation(err))
}
