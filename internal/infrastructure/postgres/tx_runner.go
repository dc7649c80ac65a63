package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sethvargo/go-retry"

	"github.com/jhoicas/Account-api/internal/application/security"
	"github.com/jhoicas/Account-api/internal/domain/repository"
	"github.com/jhoicas/Account-api/pkg/logger"
)

var _ security.TxRunner = (*TxRunner)(nil)

// Beginner lo satisfacen *pgxpool.Pool y pgxmock.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

const (
	maxTxRetries   = 3
	txRetryBackoff = 10 * time.Millisecond
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Los conflictos de serialización y deadlocks se reintentan con backoff exponencial.
type TxRunner struct {
	db  Beginner
	log *logger.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db Beginner, log *logger.Logger) *TxRunner {
	return &TxRunner{db: db, log: log.Component("tx_runner")}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// fn puede ejecutarse más de una vez.
func (r *TxRunner) Run(ctx context.Context, fn func(s repository.Stores) error) error {
	attempt := 0
	backoff := retry.WithMaxRetries(maxTxRetries, retry.NewExponential(txRetryBackoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := r.runOnce(ctx, fn)
		if err != nil && isRetryable(err) {
			r.log.Warn().Err(err).Int("attempt", attempt).Msg("conflicto de transacción, reintentando")
			return retry.RetryableError(err)
		}
		return err
	})
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(s repository.Stores) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	if err := fn(NewStores(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}
