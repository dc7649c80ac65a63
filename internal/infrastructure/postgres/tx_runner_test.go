package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/repository"
	"github.com/jhoicas/Account-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Account-api/pkg/logger"
)

func TestTxRunner_CommitUsaLaTransaccion(t *testing.T) {
	mock := newMock(t)
	runner := postgres.NewTxRunner(mock, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE accounts").
		WithArgs("a1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), false, 0, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := runner.Run(context.Background(), func(s repository.Stores) error {
		return s.Accounts.Update(context.Background(), &entity.Account{ID: "a1"})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_RollbackEnError(t *testing.T) {
	mock := newMock(t)
	runner := postgres.NewTxRunner(mock, logger.Nop())
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := runner.Run(context.Background(), func(repository.Stores) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet(), "un error no reintentable se ejecuta una sola vez")
}

func TestTxRunner_ReintentaConflictoDeSerializacion(t *testing.T) {
	mock := newMock(t)
	runner := postgres.NewTxRunner(mock, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := runner.Run(context.Background(), func(repository.Stores) error {
		calls++
		if calls == 1 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_AgotaReintentos(t *testing.T) {
	mock := newMock(t)
	runner := postgres.NewTxRunner(mock, logger.Nop())

	for i := 0; i < 4; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	calls := 0
	err := runner.Run(context.Background(), func(repository.Stores) error {
		calls++
		return &pgconn.PgError{Code: "40P01"}
	})
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "40P01", pgErr.Code)
	assert.Equal(t, 4, calls, "un intento más tres reintentos")
	assert.NoError(t, mock.ExpectationsWereMet())
}
