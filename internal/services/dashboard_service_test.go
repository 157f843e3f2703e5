package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cmdb-system/pkg/types"
)

type stubDashboardRepo struct {
	total         int64
	filtered      int64
	byApplication []types.CountByGroup
	byMonth       []types.CountByGroup
	bySeverity    []types.CountByGroup
	byClosureCode []types.CountByGroup
	inGroup       int64
	others        int64

	filteredCalls int
	err           error
}

func (s *stubDashboardRepo) CountAll(context.Context) (int64, error) {
	return s.total, s.err
}

func (s *stubDashboardRepo) CountFiltered(context.Context, types.IncidentFilter) (int64, error) {
	s.filteredCalls++
	return s.filtered, s.err
}

func (s *stubDashboardRepo) CountByApplication(context.Context, types.IncidentFilter) ([]types.CountByGroup, error) {
	return s.byApplication, s.err
}

func (s *stubDashboardRepo) CountByMonth(context.Context, types.IncidentFilter) ([]types.CountByGroup, error) {
	return s.byMonth, s.err
}

func (s *stubDashboardRepo) CountBySeverity(context.Context, types.IncidentFilter) ([]types.CountByGroup, error) {
	return s.bySeverity, s.err
}

func (s *stubDashboardRepo) CountByClosureCode(context.Context, types.IncidentFilter) ([]types.CountByGroup, error) {
	return s.byClosureCode, s.err
}

func (s *stubDashboardRepo) CountByGroupFlag(context.Context, types.IncidentFilter) (int64, int64, error) {
	return s.inGroup, s.others, s.err
}

func TestGetStatsAssemblesAllSeries(t *testing.T) {
	repo := &stubDashboardRepo{
		total:    120,
		filtered: 40,
		byApplication: []types.CountByGroup{
			{GroupName: "SAP ERP", Count: 25},
			{GroupName: "CRM Corporativo", Count: 15},
		},
		byMonth: []types.CountByGroup{
			{GroupName: "2026-01", Count: 18},
			{GroupName: "2026-02", Count: 22},
		},
		bySeverity: []types.CountByGroup{
			{GroupName: "Crítica", Count: 5},
			{GroupName: "Alta", Count: 35},
		},
		byClosureCode: []types.CountByGroup{
			{GroupName: "CC-001", Count: 30},
		},
		inGroup: 12,
		others:  28,
	}
	svc := NewDashboardService(repo, zap.NewNop())

	appID := uint64(3)
	stats, err := svc.GetStats(context.Background(), types.IncidentFilter{ApplicationID: &appID})
	require.NoError(t, err)

	assert.Equal(t, int64(120), stats.TotalGeneral)
	assert.Equal(t, int64(40), stats.TotalFiltrado)
	assert.Equal(t, []string{"SAP ERP", "CRM Corporativo"}, stats.PorAplicativo.Labels)
	assert.Equal(t, []int64{25, 15}, stats.PorAplicativo.Values)
	assert.Equal(t, []string{"2026-01", "2026-02"}, stats.PorMes.Labels)
	assert.Equal(t, []string{"Crítica", "Alta"}, stats.PorSeveridad.Labels)
	assert.Equal(t, []string{"CC-001"}, stats.PorCodCierre.Labels)
}

func TestGetStatsLabelValueLengthsMatch(t *testing.T) {
	repo := &stubDashboardRepo{
		byApplication: []types.CountByGroup{{GroupName: "A", Count: 1}},
		byMonth:       []types.CountByGroup{{GroupName: "2026-01", Count: 1}, {GroupName: "2026-02", Count: 0}},
	}
	svc := NewDashboardService(repo, zap.NewNop())

	stats, err := svc.GetStats(context.Background(), types.IncidentFilter{})
	require.NoError(t, err)

	for name, series := range map[string]types.ChartSeries{
		"por_aplicativo":    stats.PorAplicativo,
		"por_mes":           stats.PorMes,
		"por_severidad":     stats.PorSeveridad,
		"por_codigo_cierre": stats.PorCodCierre,
		"por_indra_d":       stats.PorIndraD,
	} {
		assert.Len(t, series.Values, len(series.Labels), name)
	}
}

func TestGetStatsGroupSeriesAlwaysTwoBuckets(t *testing.T) {
	svc := NewDashboardService(&stubDashboardRepo{}, zap.NewNop())

	stats, err := svc.GetStats(context.Background(), types.IncidentFilter{})
	require.NoError(t, err)

	assert.Equal(t, []string{"INDRA_D", "Otros"}, stats.PorIndraD.Labels)
	assert.Equal(t, []int64{0, 0}, stats.PorIndraD.Values)
}

func TestGetStatsEmptySeriesAreNonNil(t *testing.T) {
	svc := NewDashboardService(&stubDashboardRepo{}, zap.NewNop())

	stats, err := svc.GetStats(context.Background(), types.IncidentFilter{})
	require.NoError(t, err)

	assert.NotNil(t, stats.PorAplicativo.Labels)
	assert.NotNil(t, stats.PorAplicativo.Values)
	assert.NotNil(t, stats.PorMes.Labels)
	assert.NotNil(t, stats.PorCodCierre.Values)
	assert.Empty(t, stats.PorAplicativo.Labels)
}

func TestGetStatsEmptyFilterSkipsFilteredCount(t *testing.T) {
	repo := &stubDashboardRepo{total: 77}
	svc := NewDashboardService(repo, zap.NewNop())

	stats, err := svc.GetStats(context.Background(), types.IncidentFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(77), stats.TotalFiltrado)
	assert.Zero(t, repo.filteredCalls)
}

func TestGetStatsPropagatesRepositoryError(t *testing.T) {
	repo := &stubDashboardRepo{err: errors.New("connection refused")}
	svc := NewDashboardService(repo, zap.NewNop())

	stats, err := svc.GetStats(context.Background(), types.IncidentFilter{})
	require.Error(t, err)
	assert.Nil(t, stats)
}
