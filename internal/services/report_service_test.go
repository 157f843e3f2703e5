package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"cmdb-system/internal/entities"
	"cmdb-system/pkg/types"
)

type stubReportRepo struct {
	items []entities.ReportItem
}

func (s *stubReportRepo) GetReportItems(context.Context, types.IncidentFilter) ([]entities.ReportItem, error) {
	return s.items, nil
}

func validString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func sampleItems() []entities.ReportItem {
	return []entities.ReportItem{
		{
			IncidentCode:       "INC-0001",
			ApplicationName:    validString("SAP ERP"),
			AppCriticality:     validString("Alta"),
			SeverityName:       validString("Crítica"),
			ResolverGroupName:  validString("INDRA_D"),
			ClosureCode:        validString("CC-001"),
			ClosureDescription: validString("Error de configuración corregido"),
			ResolvedAt:         sql.NullTime{Time: time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC), Valid: true},
		},
		{
			IncidentCode: "INC-0002",
		},
	}
}

func TestGetReportMapsRows(t *testing.T) {
	svc := NewReportService(&stubReportRepo{items: sampleItems()}, zap.NewNop())

	report, err := svc.GetReport(context.Background(), types.IncidentFilter{})
	require.NoError(t, err)
	require.Len(t, report, 2)

	assert.Equal(t, "INC-0001", report[0].IncidentCode)
	assert.Equal(t, "2026-03-10", report[0].ResolvedAt)
	assert.Equal(t, "marzo", report[0].Month)
	assert.Equal(t, "CC-001", report[0].ClosureCode)

	// Unresolved incident with no catalog rows stays blank in JSON.
	assert.Empty(t, report[1].Application)
	assert.Empty(t, report[1].ResolvedAt)
	assert.Empty(t, report[1].Month)
}

func TestExportXLSX(t *testing.T) {
	svc := NewReportService(&stubReportRepo{items: sampleItems()}, zap.NewNop())

	buffer, err := svc.ExportXLSX(context.Background(), types.IncidentFilter{})
	require.NoError(t, err)

	file, err := excelize.OpenReader(buffer)
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Incidencias")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Incidencia", rows[0][0])
	assert.Equal(t, "Mes", rows[0][6])
	assert.Equal(t, "INC-0001", rows[1][0])
	assert.Equal(t, "marzo", rows[1][6])

	// Absent values render as the N/A placeholder in the export.
	assert.Equal(t, "N/A", rows[2][1])
	assert.Equal(t, "N/A", rows[2][6])
}

func TestSpanishMonth(t *testing.T) {
	assert.Equal(t, "enero", entities.SpanishMonth(time.January))
	assert.Equal(t, "diciembre", entities.SpanishMonth(time.December))
	assert.Equal(t, "", entities.SpanishMonth(time.Month(13)))
}
