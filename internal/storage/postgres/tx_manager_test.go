package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgxTxManager_WithTx_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	txManager := NewPgxTxManager(mock)

	mock.ExpectBeginTx(readCommitted)
	mock.ExpectCommit()

	err = txManager.WithTx(context.Background(), func(tx pgx.Tx) error {
		return nil
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxTxManager_WithTx_FunctionError_Rollback(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	txManager := NewPgxTxManager(mock)
	expectedErr := errors.New("conversion already completed")

	mock.ExpectBeginTx(readCommitted)
	mock.ExpectRollback()

	err = txManager.WithTx(context.Background(), func(tx pgx.Tx) error {
		return expectedErr
	})

	assert.Equal(t, expectedErr, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxTxManager_WithTx_BeginError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	txManager := NewPgxTxManager(mock)
	expectedErr := errors.New("cannot begin transaction")

	mock.ExpectBeginTx(readCommitted).WillReturnError(expectedErr)

	called := false
	err = txManager.WithTx(context.Background(), func(tx pgx.Tx) error {
		called = true
		return nil
	})

	assert.False(t, called)
	assert.ErrorIs(t, err, expectedErr)
	assert.Contains(t, err.Error(), "postgres.WithTx: begin")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxTxManager_WithTx_CommitError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	txManager := NewPgxTxManager(mock)
	expectedErr := errors.New("cannot commit transaction")

	mock.ExpectBeginTx(readCommitted)
	mock.ExpectCommit().WillReturnError(expectedErr)

	err = txManager.WithTx(context.Background(), func(tx pgx.Tx) error {
		return nil
	})

	assert.ErrorIs(t, err, expectedErr)
	assert.Contains(t, err.Error(), "postgres.WithTx: commit")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxTxManager_WithTx_PanicRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	txManager := NewPgxTxManager(mock)

	mock.ExpectBeginTx(readCommitted)
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = txManager.WithTx(context.Background(), func(tx pgx.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgxTxManager_WithTx_ContextCanceled(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	txManager := NewPgxTxManager(mock)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock.ExpectBeginTx(readCommitted).WillReturnError(context.Canceled)

	err = txManager.WithTx(ctx, func(tx pgx.Tx) error {
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}
