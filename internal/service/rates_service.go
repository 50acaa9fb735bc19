package service

import (
	"context"
	"fmt"

	"currency-converter/internal/models"
	"currency-converter/internal/rates"
)

type Rates interface {
	Current() models.RatesResponse
	Refresh(ctx context.Context) (*models.RefreshResponse, error)
}

type SnapshotSource interface {
	Snapshot() *rates.Snapshot
}

type SnapshotRefresher interface {
	Refresh(ctx context.Context) (*rates.Snapshot, error)
}

type RatesService struct {
	table     SnapshotSource
	refresher SnapshotRefresher
}

func NewRatesService(table SnapshotSource, refresher SnapshotRefresher) *RatesService {
	return &RatesService{table: table, refresher: refresher}
}

func (s *RatesService) Current() models.RatesResponse {
	snap := s.table.Snapshot()
	return models.RatesResponse{
		Base:        snap.Base(),
		Generation:  snap.Generation(),
		RefreshedAt: snap.RefreshedAt(),
		Rates:       snap.Rates(),
	}
}

func (s *RatesService) Refresh(ctx context.Context) (*models.RefreshResponse, error) {
	const op = "service.RefreshRates"

	snap, err := s.refresher.Refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.RefreshResponse{
		Generation:  snap.Generation(),
		Currencies:  snap.Len(),
		Skipped:     snap.Skipped(),
		RefreshedAt: snap.RefreshedAt(),
	}, nil
}
