package postgres

import (
	"context"
	"errors"
	"fmt"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/models"
	"currency-converter/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type ConversionRepository interface {
	Insert(ctx context.Context, c *models.Conversion) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Conversion, error)
	Update(ctx context.Context, c *models.Conversion) error
	List(ctx context.Context, offset, limit int, tr models.TimeRange) ([]*models.Conversion, error)
	Count(ctx context.Context, tr models.TimeRange) (int64, error)
}

// PgxPoolIface is the subset of *pgxpool.Pool the repository needs.
type PgxPoolIface interface {
	TxBeginner
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgConversionRepository struct {
	db        PgxPoolIface
	txManager TxManager
}

func NewConversionRepository(db PgxPoolIface) ConversionRepository {
	return &PgConversionRepository{
		db:        db,
		txManager: NewPgxTxManager(db),
	}
}

func (r *PgConversionRepository) Insert(ctx context.Context, c *models.Conversion) (int64, error) {
	const op = "postgres.Insert"

	var id int64
	err := r.db.QueryRow(ctx, storage.InsertConversionQuery,
		c.Amount,
		c.FromCurrency,
		c.ToCurrency,
		c.Fee,
		string(c.Status),
		c.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, custom_err.ErrPersistence, err)
	}

	c.ID = id
	return id, nil
}

func (r *PgConversionRepository) GetByID(ctx context.Context, id int64) (*models.Conversion, error) {
	const op = "postgres.GetByID"

	c, err := scanConversion(r.db.QueryRow(ctx, storage.GetConversionByIDQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w: %w", op, custom_err.ErrPersistence, err)
	}
	return c, nil
}

// Update overwrites status, rate and result. The row is locked first so a
// record already in a terminal state is never overwritten.
func (r *PgConversionRepository) Update(ctx context.Context, c *models.Conversion) error {
	const op = "postgres.Update"

	err := r.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		var current string
		if err := tx.QueryRow(ctx, storage.LockConversionStatusQuery, c.ID).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: conversion %d does not exist", custom_err.ErrPersistence, c.ID)
			}
			return fmt.Errorf("%w: %w", custom_err.ErrPersistence, err)
		}
		if models.ConversionStatus(current).IsTerminal() {
			return fmt.Errorf("%w: %d is %s", custom_err.ErrInvalidTransition, c.ID, current)
		}

		res, err := tx.Exec(ctx, storage.UpdateConversionQuery,
			string(c.Status),
			c.Rate,
			c.Result,
			c.ID,
		)
		if err != nil {
			return fmt.Errorf("%w: %w", custom_err.ErrPersistence, err)
		}
		if res.RowsAffected() == 0 {
			return fmt.Errorf("%w: conversion %d does not exist", custom_err.ErrPersistence, c.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *PgConversionRepository) List(ctx context.Context, offset, limit int, tr models.TimeRange) ([]*models.Conversion, error) {
	const op = "postgres.List"

	rows, err := r.db.Query(ctx, storage.ListConversionsQuery, tr.Start, tr.End, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, custom_err.ErrPersistence, err)
	}
	defer rows.Close()

	conversions := make([]*models.Conversion, 0, limit)
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", op, custom_err.ErrPersistence, err)
		}
		conversions = append(conversions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, custom_err.ErrPersistence, err)
	}

	return conversions, nil
}

func (r *PgConversionRepository) Count(ctx context.Context, tr models.TimeRange) (int64, error) {
	const op = "postgres.Count"

	var total int64
	if err := r.db.QueryRow(ctx, storage.CountConversionsQuery, tr.Start, tr.End).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, custom_err.ErrPersistence, err)
	}
	return total, nil
}

func scanConversion(row pgx.Row) (*models.Conversion, error) {
	var (
		c      models.Conversion
		status string
	)
	err := row.Scan(
		&c.ID,
		&c.Amount,
		&c.FromCurrency,
		&c.ToCurrency,
		&c.Fee,
		&status,
		&c.Rate,
		&c.Result,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Status = models.ConversionStatus(status)
	return &c, nil
}
