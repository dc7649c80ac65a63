package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/repository"
)

var _ repository.AuditEventRepository = (*AuditEventRepo)(nil)

// AuditEventRepo log de seguridad sobre la tabla security_events (append-only, ver migración).
type AuditEventRepo struct {
	q Querier
}

// NewAuditEventRepository construye el adaptador.
func NewAuditEventRepository(q Querier) *AuditEventRepo {
	return &AuditEventRepo{q: q}
}

// Append inserta el evento; id y date los asigna la base de datos.
func (r *AuditEventRepo) Append(ctx context.Context, ev *entity.AuditEvent) error {
	query := `
		INSERT INTO security_events (action, subject, object, path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, date`
	err := r.q.QueryRow(ctx, query, string(ev.Action), ev.Subject, ev.Object, ev.Path).Scan(&ev.ID, &ev.Date)
	if err != nil {
		return fmt.Errorf("insert security event: %w", err)
	}
	return nil
}

// ListAll eventos por id ascendente.
func (r *AuditEventRepo) ListAll(ctx context.Context) ([]entity.AuditEvent, error) {
	rows, err := r.q.Query(ctx, `SELECT id, date, action, subject, object, path FROM security_events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list security events: %w", err)
	}
	defer rows.Close()
	var list []entity.AuditEvent
	for rows.Next() {
		var (
			ev     entity.AuditEvent
			action string
		)
		if err := rows.Scan(&ev.ID, &ev.Date, &action, &ev.Subject, &ev.Object, &ev.Path); err != nil {
			return nil, fmt.Errorf("scan security event: %w", err)
		}
		ev.Action = entity.AuditAction(action)
		list = append(list, ev)
	}
	return list, rows.Err()
}
