package security

import (
	"context"

	"github.com/jhoicas/Account-api/internal/domain"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/lockout"
	"github.com/jhoicas/Account-api/internal/domain/repository"
	"github.com/jhoicas/Account-api/pkg/logger"
	"github.com/jhoicas/Account-api/pkg/normalize"
)

// AuthenticationGateway verifica credenciales y coordina bloqueo y auditoría.
// Todos los fallos devuelven domain.ErrAuthenticationFailed; los errores de
// almacenamiento se devuelven tal cual.
type AuthenticationGateway struct {
	tx      TxRunner
	pool    repository.Stores
	hasher  CredentialHasher
	tracker *LockoutTracker
	audit   *AuditLog
	metrics Metrics
	log     *logger.Logger
}

// NewAuthenticationGateway construye la pasarela. pool son los repositorios fuera de transacción.
func NewAuthenticationGateway(
	tx TxRunner,
	pool repository.Stores,
	hasher CredentialHasher,
	tracker *LockoutTracker,
	audit *AuditLog,
	metrics Metrics,
	log *logger.Logger,
) *AuthenticationGateway {
	if metrics == nil {
		metrics = NopMetrics()
	}
	return &AuthenticationGateway{
		tx:      tx,
		pool:    pool,
		hasher:  hasher,
		tracker: tracker,
		audit:   audit,
		metrics: metrics,
		log:     log.Component("auth_gateway"),
	}
}

// Verify autentica email/credencial. path es el endpoint de origen y se registra en los eventos.
func (g *AuthenticationGateway) Verify(ctx context.Context, email, credential, path string) (*Principal, error) {
	email = normalize.Email(email)

	// La comparación del hash se hace fuera de la transacción para no retener el bloqueo de fila.
	acc, err := g.pool.Accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if acc != nil && !acc.Locked && g.hasher.Matches(credential, acc.PasswordHash) {
		return principalOf(acc), nil
	}

	var tr lockout.Transition
	err = g.tx.Run(ctx, func(s repository.Stores) error {
		tr = lockout.Transition{}
		current, err := s.Accounts.FindByEmailForUpdate(ctx, email)
		if err != nil {
			return err
		}
		if current != nil {
			var lockErr error
			tr, lockErr = g.tracker.RegisterFailure(ctx, s.Accounts, current)
			if lockErr != nil && !isLockRefusal(lockErr) {
				return lockErr
			}
		}
		return g.audit.AppendAll(ctx, s.Events, FailureEvents(email, path, tr))
	})
	if err != nil {
		g.log.Error().Err(err).Str("email", email).Msg("no se pudo registrar el intento fallido")
		return nil, err
	}

	g.metrics.LoginFailed()
	switch tr.Outcome {
	case lockout.OutcomeLocked:
		g.metrics.AccountLocked()
	case lockout.OutcomeLockRefused:
		g.metrics.LockRefused()
	}
	g.log.Info().Str("email", email).Str("path", path).Int("attempts", tr.Attempts).Str("outcome", tr.Outcome.String()).Msg("autenticación fallida")
	return nil, domain.ErrAuthenticationFailed
}

// Resolve recarga la cuenta de un token ya emitido. Una cuenta borrada o bloqueada
// después del login deja de autenticarse, y los roles salen de la fila actual.
// No cuenta como intento fallido.
func (g *AuthenticationGateway) Resolve(ctx context.Context, email string) (*Principal, error) {
	acc, err := g.pool.Accounts.FindByEmail(ctx, normalize.Email(email))
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.Locked {
		return nil, domain.ErrAuthenticationFailed
	}
	return principalOf(acc), nil
}

func principalOf(acc *entity.Account) *Principal {
	return &Principal{
		AccountID: acc.ID,
		Email:     acc.Email,
		Name:      acc.Name,
		Lastname:  acc.Lastname,
		Roles:     acc.RoleNames(),
	}
}
