package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/lockout"
	"github.com/jhoicas/Account-api/internal/domain/repository"
	"github.com/jhoicas/Account-api/pkg/logger"
	"github.com/jhoicas/Account-api/pkg/normalize"
)

// LockoutTracker aplica la máquina de estados de intentos fallidos sobre la fila
// persistida. La cuenta debe leerse con FindByEmailForUpdate dentro de la misma
// transacción para no perder incrementos concurrentes.
type LockoutTracker struct {
	log *logger.Logger
	now func() time.Time
}

// NewLockoutTracker construye el tracker.
func NewLockoutTracker(log *logger.Logger) *LockoutTracker {
	return &LockoutTracker{log: log.Component("lockout"), now: time.Now}
}

// RegisterFailure incrementa el contador y bloquea al superar el umbral.
// Para administradores devuelve ErrAdminCannotBeLocked junto con la transición:
// el incremento ya está persistido.
func (t *LockoutTracker) RegisterFailure(ctx context.Context, accounts repository.AccountRepository, acc *entity.Account) (lockout.Transition, error) {
	tr := lockout.RegisterFailure(acc, t.now().UTC())
	acc.UpdatedAt = t.now().UTC()
	if err := accounts.Update(ctx, acc); err != nil {
		return tr, fmt.Errorf("guardar intentos fallidos: %w", err)
	}
	switch tr.Outcome {
	case lockout.OutcomeLocked:
		t.log.Warn().Str("email", acc.Email).Int("attempts", tr.Attempts).Msg("cuenta bloqueada por intentos fallidos")
	case lockout.OutcomeLockRefused:
		t.log.Warn().Str("email", acc.Email).Int("attempts", tr.Attempts).Msg("bloqueo automático rechazado: cuenta de administrador")
		return tr, domain.ErrAdminCannotBeLocked
	}
	return tr, nil
}

// Lock bloqueo manual por operador.
func (t *LockoutTracker) Lock(ctx context.Context, accounts repository.AccountRepository, email string) (*entity.Account, error) {
	acc, err := lockedAccount(ctx, accounts, email)
	if err != nil {
		return nil, err
	}
	if err := lockout.Lock(acc, t.now().UTC()); err != nil {
		return nil, err
	}
	acc.UpdatedAt = t.now().UTC()
	if err := accounts.Update(ctx, acc); err != nil {
		return nil, fmt.Errorf("guardar bloqueo: %w", err)
	}
	return acc, nil
}

// Unlock desbloquea y pone el contador a cero.
func (t *LockoutTracker) Unlock(ctx context.Context, accounts repository.AccountRepository, email string) (*entity.Account, error) {
	acc, err := lockedAccount(ctx, accounts, email)
	if err != nil {
		return nil, err
	}
	lockout.Unlock(acc)
	acc.UpdatedAt = t.now().UTC()
	if err := accounts.Update(ctx, acc); err != nil {
		return nil, fmt.Errorf("guardar desbloqueo: %w", err)
	}
	return acc, nil
}

// CurrentAttempts intentos fallidos acumulados. ErrUserNotFound si no existe.
func (t *LockoutTracker) CurrentAttempts(ctx context.Context, accounts repository.AccountRepository, email string) (int, error) {
	acc, err := findAccount(ctx, accounts, email)
	if err != nil {
		return 0, err
	}
	return acc.FailedAttempts, nil
}

// IsLocked estado de bloqueo. ErrUserNotFound si no existe.
func (t *LockoutTracker) IsLocked(ctx context.Context, accounts repository.AccountRepository, email string) (bool, error) {
	acc, err := findAccount(ctx, accounts, email)
	if err != nil {
		return false, err
	}
	return acc.Locked, nil
}

func findAccount(ctx context.Context, accounts repository.AccountRepository, email string) (*entity.Account, error) {
	acc, err := accounts.FindByEmail(ctx, normalize.Email(email))
	if err != nil {
		return nil, fmt.Errorf("buscar cuenta: %w", err)
	}
	if acc == nil {
		return nil, domain.ErrUserNotFound
	}
	return acc, nil
}

// isLockRefusal distingue la negativa de bloqueo de un error de almacenamiento.
func isLockRefusal(err error) bool {
	return errors.Is(err, domain.ErrAdminCannotBeLocked)
}
