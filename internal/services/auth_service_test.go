package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
)

type usersByEmail map[string]models.User

func (u usersByEmail) GetByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := u[email]
	if !ok {
		return user, domain.NotFoundError{Resource: "Usuário"}
	}
	return user, nil
}

func newAuth(t *testing.T, users usersByEmail) AuthService {
	t.Helper()
	return AuthService{Users: users, Secret: []byte("test-secret"), TTL: time.Hour}
}

func TestLoginIssuesParsableToken(t *testing.T) {
	hash, err := HashPassword("s3nha")
	require.NoError(t, err)
	svc := newAuth(t, usersByEmail{
		"ana@example.com": {ID: 1, Name: "Ana", Email: "ana@example.com", Role: "Gestor", Active: true, PasswordHash: hash},
	})

	token, user, err := svc.Login(context.Background(), models.LoginRequest{Email: "ana@example.com", Password: "s3nha"})
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	caller, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestContext{UserID: 1, Name: "Ana", Role: domain.RoleManager}, caller)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, err := HashPassword("s3nha")
	require.NoError(t, err)
	svc := newAuth(t, usersByEmail{
		"ana@example.com": {ID: 1, Role: "Gestor", Active: true, PasswordHash: hash},
		"old@example.com": {ID: 2, Role: "Gestor", Active: false, PasswordHash: hash},
	})
	ctx := context.Background()

	_, _, err = svc.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "errada"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "s3nha"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, models.LoginRequest{Email: "old@example.com", Password: "s3nha"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, models.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.True(t, domain.IsValidation(err))
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	svc := AuthService{Secret: []byte("test-secret"), TTL: time.Hour, Now: func() time.Time { return issuedAt }}
	token, err := svc.Issue(models.User{ID: 3, Name: "Carlos", Role: "Motorista"})
	require.NoError(t, err)

	later := svc
	later.Now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = later.Parse(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	other := svc
	other.Secret = []byte("another-secret")
	_, err = other.Parse(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 3, Role: "Motorista"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Parse(unsigned)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestParseRejectsUnknownRole(t *testing.T) {
	svc := AuthService{Secret: []byte("test-secret")}
	token, err := svc.Issue(models.User{ID: 3, Role: "Visitante"})
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
