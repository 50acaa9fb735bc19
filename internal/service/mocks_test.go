package service

import (
	"context"

	"currency-converter/internal/models"
	"currency-converter/internal/rates"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockConversionRepo struct {
	mock.Mock
}

func (m *MockConversionRepo) Insert(ctx context.Context, c *models.Conversion) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockConversionRepo) GetByID(ctx context.Context, id int64) (*models.Conversion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversion), args.Error(1)
}

func (m *MockConversionRepo) Update(ctx context.Context, c *models.Conversion) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConversionRepo) List(ctx context.Context, offset, limit int, tr models.TimeRange) ([]*models.Conversion, error) {
	args := m.Called(ctx, offset, limit, tr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Conversion), args.Error(1)
}

func (m *MockConversionRepo) Count(ctx context.Context, tr models.TimeRange) (int64, error) {
	args := m.Called(ctx, tr)
	return args.Get(0).(int64), args.Error(1)
}

type MockRateResolver struct {
	mock.Mock
}

func (m *MockRateResolver) Rate(from, to string) (decimal.Decimal, error) {
	args := m.Called(from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateResolver) Convert(amount, fee, rate decimal.Decimal) decimal.Decimal {
	args := m.Called(amount, fee, rate)
	return args.Get(0).(decimal.Decimal)
}

type MockKafkaProducer struct {
	mock.Mock
}

func (m *MockKafkaProducer) SendConversionCompleted(ctx context.Context, event models.ConversionCompletedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockKafkaProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockSnapshotRefresher struct {
	mock.Mock
}

func (m *MockSnapshotRefresher) Refresh(ctx context.Context) (*rates.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rates.Snapshot), args.Error(1)
}
