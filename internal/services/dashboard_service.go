package services

import (
	"context"

	"go.uber.org/zap"

	"cmdb-system/internal/dto"
	"cmdb-system/internal/entities"
	"cmdb-system/internal/repositories"
	"cmdb-system/pkg/types"
)

type DashboardServiceInterface interface {
	GetStats(ctx context.Context, filter types.IncidentFilter) (*dto.DashboardStatsDTO, error)
}

type DashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	logger        *zap.Logger
}

func NewDashboardService(dashboardRepo repositories.DashboardRepositoryInterface, logger *zap.Logger) DashboardServiceInterface {
	return &DashboardService{dashboardRepo: dashboardRepo, logger: logger}
}

// GetStats assembles the complete dashboard snapshot. Every series is
// computed from the same filter, so the numbers are mutually consistent for
// one request even while data changes between requests.
func (s *DashboardService) GetStats(ctx context.Context, filter types.IncidentFilter) (*dto.DashboardStatsDTO, error) {
	totalGeneral, err := s.dashboardRepo.CountAll(ctx)
	if err != nil {
		s.logger.Error("dashboard: counting all incidents failed", zap.Error(err))
		return nil, err
	}

	totalFiltered := totalGeneral
	if !filter.IsZero() {
		totalFiltered, err = s.dashboardRepo.CountFiltered(ctx, filter)
		if err != nil {
			s.logger.Error("dashboard: counting filtered incidents failed", zap.Error(err))
			return nil, err
		}
	}

	byApplication, err := s.dashboardRepo.CountByApplication(ctx, filter)
	if err != nil {
		s.logger.Error("dashboard: application series failed", zap.Error(err))
		return nil, err
	}
	byMonth, err := s.dashboardRepo.CountByMonth(ctx, filter)
	if err != nil {
		s.logger.Error("dashboard: month series failed", zap.Error(err))
		return nil, err
	}
	bySeverity, err := s.dashboardRepo.CountBySeverity(ctx, filter)
	if err != nil {
		s.logger.Error("dashboard: severity series failed", zap.Error(err))
		return nil, err
	}
	byClosureCode, err := s.dashboardRepo.CountByClosureCode(ctx, filter)
	if err != nil {
		s.logger.Error("dashboard: closure code series failed", zap.Error(err))
		return nil, err
	}
	inGroup, others, err := s.dashboardRepo.CountByGroupFlag(ctx, filter)
	if err != nil {
		s.logger.Error("dashboard: group series failed", zap.Error(err))
		return nil, err
	}

	return &dto.DashboardStatsDTO{
		TotalGeneral:  totalGeneral,
		TotalFiltrado: totalFiltered,
		PorAplicativo: types.ToChartSeries(byApplication),
		PorMes:        types.ToChartSeries(byMonth),
		PorSeveridad:  types.ToChartSeries(bySeverity),
		PorCodCierre:  types.ToChartSeries(byClosureCode),
		// Always exactly two buckets in a fixed order, zero counts included.
		PorIndraD: types.ChartSeries{
			Labels: []string{entities.GroupINDRAD, "Otros"},
			Values: []int64{inGroup, others},
		},
	}, nil
}
