package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *MockAuthService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "success",
			body: `{"password": "s3cret"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, models.AdminLoginRequest{Password: "s3cret"}).
					Return(&models.LoginResponse{Token: "jwt-token"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			body: `{"password": "nope"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, mock.Anything).Return(nil, custom_err.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "invalid_credentials",
		},
		{
			name:       "empty password",
			body:       `{"password": ""}`,
			setupMock:  func(m *MockAuthService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_field",
		},
		{
			name:       "malformed json",
			body:       `{`,
			setupMock:  func(m *MockAuthService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_json",
		},
		{
			name: "unexpected error",
			body: `{"password": "s3cret"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Login", mock.Anything, mock.Anything).Return(nil, errors.New("signing failed"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(MockAuthService)
			tt.setupMock(auth)

			r := chi.NewRouter()
			r.Post("/api/admin/login", NewAdminHandler(auth).Login)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["error"])
			} else {
				assert.Equal(t, "jwt-token", body["token"])
			}
			auth.AssertExpectations(t)
		})
	}
}

func TestRatesHandler_GetRates(t *testing.T) {
	svc := new(MockRatesService)
	svc.On("Current").Return(models.RatesResponse{
		Base:        "EUR",
		Generation:  3,
		RefreshedAt: time.Date(2024, 5, 17, 16, 0, 0, 0, time.UTC),
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.NewFromInt(1),
			"USD": decimal.RequireFromString("1.0812"),
		},
	})

	r := chi.NewRouter()
	r.Get("/api/rates", NewRatesHandler(svc).GetRates)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rates", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "EUR", body["base"])
	assert.Equal(t, float64(3), body["generation"])
	rates, ok := body["rates"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1.0812, rates["USD"])
}

func TestRatesHandler_Refresh(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(m *MockRatesService)
		wantStatus int
	}{
		{
			name: "success",
			setupMock: func(m *MockRatesService) {
				m.On("Refresh", mock.Anything).Return(&models.RefreshResponse{Generation: 4, Currencies: 31}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "empty feed",
			setupMock: func(m *MockRatesService) {
				m.On("Refresh", mock.Anything).Return(nil, custom_err.ErrRatesNotLoaded)
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "fetch failure",
			setupMock: func(m *MockRatesService) {
				m.On("Refresh", mock.Anything).Return(nil, errors.New("ecb: unexpected status 503"))
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRatesService)
			tt.setupMock(svc)

			r := chi.NewRouter()
			r.Post("/api/admin/rates/refresh", NewRatesHandler(svc).Refresh)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/rates/refresh", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
