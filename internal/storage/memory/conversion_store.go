package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/models"
)

// ConversionStore keeps conversions in process memory. It follows the same
// contract as the Postgres repository and is used with STORAGE_DRIVER=memory.
type ConversionStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]models.Conversion
}

func NewConversionStore() *ConversionStore {
	return &ConversionStore{rows: make(map[int64]models.Conversion)}
}

func (s *ConversionStore) Insert(_ context.Context, c *models.Conversion) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	c.ID = s.nextID
	s.rows[c.ID] = *c
	return c.ID, nil
}

func (s *ConversionStore) GetByID(_ context.Context, id int64) (*models.Conversion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, custom_err.ErrNotFound
	}
	return &row, nil
}

func (s *ConversionStore) Update(_ context.Context, c *models.Conversion) error {
	const op = "memory.Update"

	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[c.ID]
	if !ok {
		return fmt.Errorf("%s: %w: conversion %d does not exist", op, custom_err.ErrPersistence, c.ID)
	}
	if row.Status.IsTerminal() {
		return fmt.Errorf("%s: %w: %d is %s", op, custom_err.ErrInvalidTransition, c.ID, row.Status)
	}

	row.Status = c.Status
	row.Rate = c.Rate
	row.Result = c.Result
	s.rows[c.ID] = row
	return nil
}

func (s *ConversionStore) List(_ context.Context, offset, limit int, tr models.TimeRange) ([]*models.Conversion, error) {
	s.mu.RLock()
	matched := s.filter(tr)
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) || limit <= 0 {
		return []*models.Conversion{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *ConversionStore) Count(_ context.Context, tr models.TimeRange) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.filter(tr))), nil
}

// filter must be called with mu held.
func (s *ConversionStore) filter(tr models.TimeRange) []*models.Conversion {
	out := make([]*models.Conversion, 0, len(s.rows))
	for _, row := range s.rows {
		if tr.Start != nil && row.CreatedAt.Before(*tr.Start) {
			continue
		}
		if tr.End != nil && row.CreatedAt.After(*tr.End) {
			continue
		}
		row := row
		out = append(out, &row)
	}
	return out
}
