package models

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

const AdminRole = "admin"

// AdminLoginRequest запрос на авторизацию администратора
type AdminLoginRequest struct {
	Password string `json:"password" example:"s3cret"`
}

func (r AdminLoginRequest) Validate() error {
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// LoginResponse ответ на авторизацию
type LoginResponse struct {
	Token string `json:"token"`
}

// AdminClaims кастомные claims для JWT токена администратора
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RatesResponse текущий снимок таблицы курсов
type RatesResponse struct {
	Base        string                     `json:"base" example:"EUR"`
	Generation  uint64                     `json:"generation" example:"3"`
	RefreshedAt time.Time                  `json:"refreshedAt"`
	Rates       map[string]decimal.Decimal `json:"rates" swaggertype:"object,number"`
}

// RefreshResponse результат принудительного обновления курсов
type RefreshResponse struct {
	Generation  uint64    `json:"generation" example:"4"`
	Currencies  int       `json:"currencies" example:"31"`
	Skipped     int       `json:"skipped" example:"0"`
	RefreshedAt time.Time `json:"refreshedAt"`
}
