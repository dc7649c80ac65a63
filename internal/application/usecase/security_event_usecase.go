package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Account-api/internal/application/dto"
	"github.com/jhoicas/Account-api/internal/application/ports"
	"github.com/jhoicas/Account-api/internal/application/security"
	"github.com/jhoicas/Account-api/internal/domain/entity"
	"github.com/jhoicas/Account-api/internal/domain/repository"
	"github.com/jhoicas/Account-api/pkg/logger"
)

// SecurityEventUseCase lectura y exportación del log de seguridad, y registro de accesos denegados.
type SecurityEventUseCase struct {
	events    repository.AuditEventRepository
	audit     *security.AuditLog
	generator ports.AuditReportGenerator
	metrics   security.Metrics
	log       *logger.Logger
}

// NewSecurityEventUseCase construye el caso de uso. metrics puede ser nil.
func NewSecurityEventUseCase(
	events repository.AuditEventRepository,
	audit *security.AuditLog,
	generator ports.AuditReportGenerator,
	metrics security.Metrics,
	log *logger.Logger,
) *SecurityEventUseCase {
	if metrics == nil {
		metrics = security.NopMetrics()
	}
	return &SecurityEventUseCase{
		events:    events,
		audit:     audit,
		generator: generator,
		metrics:   metrics,
		log:       log.Component("security_events"),
	}
}

// ListEvents todos los eventos por ID ascendente.
func (uc *SecurityEventUseCase) ListEvents(ctx context.Context) ([]dto.EventResponse, error) {
	list, err := uc.audit.ListAll(ctx, uc.events)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EventResponse, 0, len(list))
	for _, ev := range list {
		out = append(out, toEventResponse(ev))
	}
	return out, nil
}

// ExportPDF genera el informe del log completo.
//
// Retorna (pdfBytes, filename, nil) con filename del tipo "security-events-20260101-150405.pdf".
func (uc *SecurityEventUseCase) ExportPDF(ctx context.Context) ([]byte, string, error) {
	list, err := uc.audit.ListAll(ctx, uc.events)
	if err != nil {
		return nil, "", err
	}
	now := time.Now().UTC()
	doc, err := uc.generator.GenerateAuditReport(ctx, list, now)
	if err != nil {
		return nil, "", fmt.Errorf("generar informe: %w", err)
	}
	return doc, "security-events-" + now.Format("20060102-150405") + ".pdf", nil
}

// RecordAccessDenied registra ACCESS_DENIED para el actor (o Anonymous) sobre path.
func (uc *SecurityEventUseCase) RecordAccessDenied(ctx context.Context, actor, path string) error {
	uc.metrics.AccessDenied()
	ev := security.NewEvent(entity.ActionAccessDenied, actor, security.CleanPath(path), path)
	if err := uc.audit.Append(ctx, uc.events, &ev); err != nil {
		return err
	}
	uc.log.Warn().Str("subject", ev.Subject).Str("path", ev.Path).Msg("acceso denegado")
	return nil
}

func toEventResponse(ev entity.AuditEvent) dto.EventResponse {
	return dto.EventResponse{
		ID:      ev.ID,
		Date:    ev.Date,
		Action:  string(ev.Action),
		Subject: ev.Subject,
		Object:  ev.Object,
		Path:    ev.Path,
	}
}
