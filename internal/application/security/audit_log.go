package security

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/lockout"
	"github.com/jhoicas/Account-api/internal/domain/repository"
	"github.com/jhoicas/Account-api/pkg/logger"
	"github.com/jhoicas/Account-api/pkg/normalize"
)

// AuditLog registro append-only de eventos de seguridad. Un fallo de escritura
// siempre se devuelve al llamador.
type AuditLog struct {
	log *logger.Logger
}

// NewAuditLog construye el log de auditoría.
func NewAuditLog(log *logger.Logger) *AuditLog {
	return &AuditLog{log: log.Component("audit")}
}

// Append persiste un evento.
func (l *AuditLog) Append(ctx context.Context, events repository.AuditEventRepository, ev *entity.AuditEvent) error {
	if err := events.Append(ctx, ev); err != nil {
		l.log.Error().Err(err).Str("action", string(ev.Action)).Str("subject", ev.Subject).Msg("no se pudo registrar evento de auditoría")
		return fmt.Errorf("registrar evento %s: %w", ev.Action, err)
	}
	l.log.Debug().Int64("id", ev.ID).Str("action", string(ev.Action)).Str("subject", ev.Subject).Str("object", ev.Object).Msg("evento de auditoría")
	return nil
}

// AppendAll persiste los eventos en el orden recibido; se detiene en el primer error.
func (l *AuditLog) AppendAll(ctx context.Context, events repository.AuditEventRepository, evs []entity.AuditEvent) error {
	for i := range evs {
		if err := l.Append(ctx, events, &evs[i]); err != nil {
			return err
		}
	}
	return nil
}

// ListAll devuelve todos los eventos por ID ascendente.
func (l *AuditLog) ListAll(ctx context.Context, events repository.AuditEventRepository) ([]entity.AuditEvent, error) {
	list, err := events.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar eventos: %w", err)
	}
	return list, nil
}

// NewEvent construye un evento con sujeto normalizado y ruta sin barra final.
// Los textos se copian: pueden apuntar a buffers del servidor HTTP que se reutilizan.
func NewEvent(action entity.AuditAction, subject, object, path string) entity.AuditEvent {
	return entity.AuditEvent{
		Action:  action,
		Subject: strings.Clone(normalize.Subject(subject)),
		Object:  strings.Clone(object),
		Path:    strings.Clone(CleanPath(path)),
	}
}

// CleanPath quita la barra final ("/api/admin/user/" -> "/api/admin/user").
func CleanPath(path string) string {
	if len(path) > 1 {
		return strings.TrimRight(path, "/")
	}
	return path
}

// FailureEvents secuencia ordenada que produce un intento fallido:
// LOGIN_FAILED y, sólo si este intento bloqueó la cuenta, BRUTE_FORCE y LOCK_USER.
func FailureEvents(email, path string, tr lockout.Transition) []entity.AuditEvent {
	path = CleanPath(path)
	evs := []entity.AuditEvent{NewEvent(entity.ActionLoginFailed, email, path, path)}
	if tr.Outcome == lockout.OutcomeLocked {
		evs = append(evs,
			NewEvent(entity.ActionBruteForce, email, path, path),
			NewEvent(entity.ActionLockUser, email, LockDescription(email), path),
		)
	}
	return evs
}

// GrantDescription "Grant role ACCOUNTANT to user@acme.com".
func GrantDescription(role, email string) string {
	return fmt.Sprintf("Grant role %s to %s", entity.ShortRoleName(entity.CanonicalRoleName(role)), normalize.Email(email))
}

// RemoveDescription "Remove role ACCOUNTANT from user@acme.com".
func RemoveDescription(role, email string) string {
	return fmt.Sprintf("Remove role %s from %s", entity.ShortRoleName(entity.CanonicalRoleName(role)), normalize.Email(email))
}

// LockDescription "Lock user user@acme.com".
func LockDescription(email string) string {
	return "Lock user " + normalize.Email(email)
}

// UnlockDescription "Unlock user user@acme.com".
func UnlockDescription(email string) string {
	return "Unlock user " + normalize.Email(email)
}
