package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
	"github.com/iwatajunior/transportes-sub001/internal/domain/models"
	"github.com/iwatajunior/transportes-sub001/internal/utils"
)

// ErrInvalidCredentials is returned for unknown e-mail, wrong password and
// inactive accounts alike.
var ErrInvalidCredentials = errors.New("E-mail ou senha inválidos.")

// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
var ErrInvalidToken = errors.New("token inválido")

type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

// Claims is the JWT payload.
type Claims struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Users     UserFinder
	Secret    []byte
	TTL       time.Duration
	RequestID string
	Now       func() time.Time
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks the password and issues a signed token.
func (s AuthService) Login(ctx context.Context, req models.LoginRequest) (string, models.User, error) {
	if err := models.Validate(req); err != nil {
		return "", models.User{}, err
	}
	u, err := s.Users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, err
	}
	if !u.Active || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		utils.LogEvent(s.RequestID, "auth", "login_failed", fmt.Sprintf("user_id=%d", u.ID))
		return "", models.User{}, ErrInvalidCredentials
	}
	u.PasswordHash = ""

	token, err := s.Issue(u)
	if err != nil {
		return "", models.User{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d role=%s", u.ID, u.Role))
	return token, u, nil
}

// Issue signs an HS256 token for u.
func (s AuthService) Issue(u models.User) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := s.now()
	claims := Claims{
		UserID: u.ID,
		Name:   u.Name,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns the caller it identifies.
func (s AuthService) Parse(token string) (domain.RequestContext, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return domain.RequestContext{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	role, ok := domain.ParseRole(claims.Role)
	if !ok || claims.UserID <= 0 {
		return domain.RequestContext{}, ErrInvalidToken
	}
	return domain.RequestContext{UserID: claims.UserID, Name: claims.Name, Role: role}, nil
}

// HashPassword is used by seeding and tests.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
