package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"cmdb-system/internal/dto"
	"cmdb-system/internal/entities"
	"cmdb-system/internal/repositories"
	"cmdb-system/pkg/types"
)

const reportSheet = "Incidencias"

// Column order of the export. The header text is the historical one.
var reportHeaders = []string{
	"Incidencia",
	"Criticidad Aplicativo",
	"Severidad",
	"Grupo Resolutor",
	"Aplicativo",
	"Fecha Resolución",
	"Mes",
	"Cod. Cierre",
	"Descripción Cierre",
}

type ReportServiceInterface interface {
	GetReport(ctx context.Context, filter types.IncidentFilter) ([]dto.ReportItemDTO, error)
	ExportXLSX(ctx context.Context, filter types.IncidentFilter) (*bytes.Buffer, error)
}

type ReportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{reportRepo: reportRepo, logger: logger}
}

func (s *ReportService) GetReport(ctx context.Context, filter types.IncidentFilter) ([]dto.ReportItemDTO, error) {
	items, err := s.reportRepo.GetReportItems(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := make([]dto.ReportItemDTO, 0, len(items))
	for _, item := range items {
		report = append(report, toReportDTO(item))
	}
	return report, nil
}

// ExportXLSX renders the filtered incident set as a spreadsheet. Absent
// values come out as "N/A", matching what report consumers expect.
func (s *ReportService) ExportXLSX(ctx context.Context, filter types.IncidentFilter) (*bytes.Buffer, error) {
	items, err := s.reportRepo.GetReportItems(ctx, filter)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), reportSheet); err != nil {
		return nil, err
	}
	for col, header := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(reportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for rowIdx, item := range items {
		row := toReportDTO(item)
		values := []string{
			row.IncidentCode,
			orNA(row.AppCriticality),
			orNA(row.Severity),
			orNA(row.ResolverGroup),
			orNA(row.Application),
			orNA(row.ResolvedAt),
			orNA(row.Month),
			orNA(row.ClosureCode),
			orNA(row.ClosureDescription),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(reportSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		s.logger.Error("report: writing workbook failed", zap.Error(err))
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buffer, nil
}

func toReportDTO(item entities.ReportItem) dto.ReportItemDTO {
	resolvedAt := ""
	if item.ResolvedAt.Valid {
		resolvedAt = item.ResolvedAt.Time.Format("2006-01-02")
	}
	return dto.ReportItemDTO{
		IncidentCode:       item.IncidentCode,
		AppCriticality:     item.AppCriticality.String,
		Severity:           item.SeverityName.String,
		ResolverGroup:      item.ResolverGroupName.String,
		Application:        item.ApplicationName.String,
		ResolvedAt:         resolvedAt,
		Month:              item.ResolutionMonth(),
		ClosureCode:        item.ClosureCode.String,
		ClosureDescription: item.ClosureDescription.String,
	}
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
