// Package lockout implementa la máquina de estados de intentos fallidos:
// ACTIVE(n) -> LOCKED cuando n supera MaxFailedAttempts. Los administradores
// nunca pasan a LOCKED, ni por umbral ni por bloqueo manual.
package lockout

import (
	"time"

	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
)

// MaxFailedAttempts umbral: el bloqueo ocurre en el intento MaxFailedAttempts+1.
const MaxFailedAttempts = 5

// Outcome resultado de registrar un intento fallido.
type Outcome int

const (
	// OutcomeCounted el contador subió sin cambio de estado.
	OutcomeCounted Outcome = iota
	// OutcomeLocked este intento bloqueó la cuenta.
	OutcomeLocked
	// OutcomeLockRefused se superó el umbral pero la cuenta es de administrador.
	OutcomeLockRefused
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLocked:
		return "locked"
	case OutcomeLockRefused:
		return "lock_refused"
	default:
		return "counted"
	}
}

// Transition describe el efecto de un intento fallido sobre la cuenta.
type Transition struct {
	Attempts int
	Outcome  Outcome
}

// RegisterFailure incrementa el contador y aplica el umbral. Muta acc; el llamador persiste.
func RegisterFailure(acc *entity.Account, now time.Time) Transition {
	acc.FailedAttempts++
	t := Transition{Attempts: acc.FailedAttempts, Outcome: OutcomeCounted}
	if acc.FailedAttempts <= MaxFailedAttempts {
		return t
	}
	if acc.IsAdministrator() {
		t.Outcome = OutcomeLockRefused
		return t
	}
	if acc.Locked {
		return t
	}
	lockAt(acc, now)
	t.Outcome = OutcomeLocked
	return t
}

// Lock bloqueo manual (operador). Falla con ErrAdminCannotBeLocked para administradores.
func Lock(acc *entity.Account, now time.Time) error {
	if acc.IsAdministrator() {
		return domain.ErrAdminCannotBeLocked
	}
	if !acc.Locked {
		lockAt(acc, now)
	}
	return nil
}

// Unlock desbloquea y reinicia el contador, sea cual sea el estado previo.
func Unlock(acc *entity.Account) {
	acc.Locked = false
	acc.FailedAttempts = 0
	acc.LockTime = nil
}

func lockAt(acc *entity.Account, now time.Time) {
	acc.Locked = true
	t := now
	acc.LockTime = &t
}
