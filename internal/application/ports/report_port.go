package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Account-api/internal/domain/entity"
)

// AuditReportGenerator puerto de salida para exportar el log de seguridad.
// La aplicación sólo conoce este contrato; el adaptador decide el formato.
type AuditReportGenerator interface {
	// GenerateAuditReport recibe los eventos ya ordenados por ID y devuelve el documento.
	GenerateAuditReport(ctx context.Context, events []entity.AuditEvent, generatedAt time.Time) ([]byte, error)
}
