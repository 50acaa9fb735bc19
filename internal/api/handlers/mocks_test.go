package handlers

import (
	"context"
	"time"

	"currency-converter/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Submit(ctx context.Context, req models.ConversionRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConversionService) Result(ctx context.Context, id int64) (*models.ConversionResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConversionResult), args.Error(1)
}

func (m *MockConversionService) Page(ctx context.Context, page, size int, start, end *time.Time) (*models.ConversionPage, error) {
	args := m.Called(ctx, page, size, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConversionPage), args.Error(1)
}

type MockRatesService struct {
	mock.Mock
}

func (m *MockRatesService) Current() models.RatesResponse {
	args := m.Called()
	return args.Get(0).(models.RatesResponse)
}

func (m *MockRatesService) Refresh(ctx context.Context) (*models.RefreshResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshResponse), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req models.AdminLoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*models.AdminClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminClaims), args.Error(1)
}
