package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intdb "github.com/iwatajunior/transportes-sub001/internal/db"
	"github.com/iwatajunior/transportes-sub001/internal/domain"
	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
)

func TestVehicleListAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(q("FROM vehicles WHERE status = $1 ORDER BY plate ASC")).
		WithArgs(models.VehicleAvailable).
		WillReturnRows(sqlmock.NewRows([]string{"id", "plate", "model", "vehicle_type", "capacity", "status", "odometer"}).
			AddRow(int64(1), "ABC1D23", "Spin", "Carro", 7, "Disponivel", int64(45210)).
			AddRow(int64(2), "XYZ9K87", "Sprinter", "Van", 15, "Disponivel", nil))

	repo := VehicleRepository{DB: db, Dialect: intdb.Postgres}
	list, err := repo.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(45210), *list[0].Odometer)
	assert.Nil(t, list[1].Odometer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserListDriversHidesHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(q("FROM users WHERE role = ? AND active = ? ORDER BY name ASC")).
		WithArgs("Motorista", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "role", "active", "password_hash"}).
			AddRow(int64(8), "Carlos", "carlos@example.com", "", "Motorista", true, "$2a$10$hash"))

	repo := UserRepository{DB: db, Dialect: intdb.MySQL}
	list, err := repo.ListDrivers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(q("WHERE LOWER(email) = LOWER($1)")).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = UserRepository{DB: db, Dialect: intdb.Postgres}.GetByEmail(context.Background(), "nobody@example.com")
	assert.True(t, domain.IsNotFound(err))
}

func TestRouteUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(q("UPDATE routes SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs("Andamento", sqlmock.AnyArg(), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(q("FROM routes WHERE id = $1")).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "origin", "destination", "departure_at", "vehicle_id", "driver_id", "status", "updated_at"}).
			AddRow(int64(4), "Linha Centro", "Campus", "Centro", fixedNow, int64(1), nil, "Andamento", fixedNow))

	rt, err := RouteRepository{DB: db, Dialect: intdb.Postgres}.UpdateStatus(context.Background(), 4, models.RouteOngoing)
	require.NoError(t, err)
	assert.Equal(t, models.RouteOngoing, rt.Status)
	assert.Nil(t, rt.DriverID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCaronaCreateUnknownTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(q("INSERT INTO caronas")).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "foreign key constraint fails"})

	_, err = CaronaRepository{DB: db, Dialect: intdb.MySQL}.Create(context.Background(), models.Carona{TripID: 404, Seats: 1, Status: models.RequestPending})
	assert.True(t, domain.IsNotFound(err))
}

func TestEvaluationUpdateStatusMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(q("UPDATE evaluations SET status = $1 WHERE id = $2")).
		WithArgs("Concluida", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = EvaluationRepository{DB: db, Dialect: intdb.Postgres}.UpdateStatus(context.Background(), 3, models.EvaluationAnswered)
	assert.True(t, domain.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
