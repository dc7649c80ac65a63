package repository

import (
	"context"

	"github.com/jhoicas/Account-api/internal/domain/entity"
)

// AuditEventRepository almacén append-only de eventos de seguridad.
// No existen Update ni Delete.
type AuditEventRepository interface {
	// Append inserta el evento y le asigna ID y Date.
	Append(ctx context.Context, ev *entity.AuditEvent) error
	// ListAll devuelve los eventos por ID ascendente.
	ListAll(ctx context.Context) ([]entity.AuditEvent, error)
}
