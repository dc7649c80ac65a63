// Package pdf genera el informe PDF del log de seguridad.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación + total de eventos     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Fecha | Acción | Sujeto | Objeto | Ruta         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de integridad                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Account-api/internal/application/ports"
	"github.com/jhoicas/Account-api/internal/domain/entity"
)

var _ ports.AuditReportGenerator = (*AuditReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// AuditReportGenerator implementa ports.AuditReportGenerator usando Maroto v2.
type AuditReportGenerator struct {
	appName string
}

// NewAuditReportGenerator construye el generador.
func NewAuditReportGenerator(appName string) *AuditReportGenerator {
	return &AuditReportGenerator{appName: appName}
}

// GenerateAuditReport genera el PDF y devuelve sus bytes.
func (g *AuditReportGenerator) GenerateAuditReport(_ context.Context, events []entity.AuditEvent, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Security events", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, generatedAt, len(events)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(eventRows(events)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(appName string, generatedAt time.Time, total int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("SECURITY EVENTS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(appName, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("2006-01-02 15:04:05 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Eventos: "+strconv.Itoa(total), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1),
		h("Fecha", 2),
		h("Acción", 2),
		h("Sujeto", 2),
		h("Objeto", 3),
		h("Ruta", 2),
	)
}

// eventRows una fila por evento; las acciones de bloqueo y fuerza bruta en rojo.
func eventRows(events []entity.AuditEvent) []core.Row {
	rows := make([]core.Row, 0, len(events))
	for _, ev := range events {
		cell := func(s string, size int) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Top: 1, Left: 1}))
		}
		actionStyle := props.Text{Size: 7.5, Top: 1, Left: 1}
		switch ev.Action {
		case entity.ActionBruteForce, entity.ActionLockUser, entity.ActionAccessDenied:
			actionStyle.Style = fontstyle.Bold
			actionStyle.Color = colorAlert
		}
		rows = append(rows, row.New(6).Add(
			cell(strconv.FormatInt(ev.ID, 10), 1),
			cell(ev.Date.UTC().Format("2006-01-02 15:04:05"), 2),
			col.New(2).Add(text.New(string(ev.Action), actionStyle)),
			cell(ev.Subject, 2),
			cell(ev.Object, 3),
			cell(ev.Path, 2),
		))
	}
	return rows
}

func footerRow() core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(
			"Registro append-only ordenado por ID. Los eventos no se modifican ni se eliminan.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		)),
	)
}
