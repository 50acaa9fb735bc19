package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Auth interface {
	Login(ctx context.Context, req models.AdminLoginRequest) (*models.LoginResponse, error)
	ValidateToken(tokenString string) (*models.AdminClaims, error)
}

// AuthService authenticates the single operator account configured by
// ADMIN_PASSWORD_HASH and issues HS256 tokens for the admin routes.
type AuthService struct {
	passwordHash  []byte
	jwtSecret     []byte
	jwtExpiration time.Duration
	log           *slog.Logger
}

func NewAuthService(passwordHash, jwtSecret string, jwtExpiration time.Duration, log *slog.Logger) Auth {
	return &AuthService{
		passwordHash:  []byte(passwordHash),
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: jwtExpiration,
		log:           log.With(slog.String("component", "auth_service")),
	}
}

func (s *AuthService) Login(ctx context.Context, req models.AdminLoginRequest) (*models.LoginResponse, error) {
	const op = "service.Login"

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", custom_err.ErrInvalidInput, err.Error())
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.log.Error("admin password hash is unusable", slog.String("op", op), slog.String("error", err.Error()))
		}
		return nil, custom_err.ErrInvalidCredentials
	}

	token, err := s.generateJWT()
	if err != nil {
		s.log.Error("failed to generate JWT", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("admin logged in", slog.String("op", op))
	return &models.LoginResponse{Token: token}, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*models.AdminClaims, error) {
	claims := &models.AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, custom_err.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, custom_err.ErrTokenNotActive
		}
		return nil, custom_err.ErrInvalidToken
	}

	if !token.Valid || claims.Role != models.AdminRole {
		return nil, custom_err.ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) generateJWT() (string, error) {
	now := time.Now()
	claims := models.AdminClaims{
		Role: models.AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   models.AdminRole,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
