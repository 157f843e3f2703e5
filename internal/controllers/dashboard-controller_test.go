package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cmdb-system/internal/dto"
	"cmdb-system/pkg/types"
)

type stubDashboardService struct {
	stats      *dto.DashboardStatsDTO
	err        error
	lastFilter types.IncidentFilter
}

func (s *stubDashboardService) GetStats(_ context.Context, filter types.IncidentFilter) (*dto.DashboardStatsDTO, error) {
	s.lastFilter = filter
	return s.stats, s.err
}

func emptyStats() *dto.DashboardStatsDTO {
	return &dto.DashboardStatsDTO{
		PorAplicativo: types.EmptyChartSeries(),
		PorMes:        types.EmptyChartSeries(),
		PorSeveridad:  types.EmptyChartSeries(),
		PorCodCierre:  types.EmptyChartSeries(),
		PorIndraD:     types.ChartSeries{Labels: []string{"INDRA_D", "Otros"}, Values: []int64{0, 0}},
	}
}

func TestDashboardStatsWireFormat(t *testing.T) {
	service := &stubDashboardService{stats: emptyStats()}
	service.stats.TotalGeneral = 10
	service.stats.TotalFiltrado = 4
	controller := NewDashboardController(service, zap.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/data", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, controller.GetStats(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The client reads the object directly, no envelope.
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, key := range []string{
		"total_general", "total_filtrado",
		"por_aplicativo", "por_mes", "por_severidad", "por_codigo_cierre", "por_indra_d",
	} {
		assert.Contains(t, body, key)
	}
	assert.NotContains(t, body, "status")
	assert.NotContains(t, body, "body")

	var series types.ChartSeries
	require.NoError(t, json.Unmarshal(body["por_aplicativo"], &series))
	assert.NotNil(t, series.Labels)
	assert.Equal(t, `[]`, string(mustMarshal(t, series.Labels)))
}

func TestDashboardStatsResolvesFilter(t *testing.T) {
	service := &stubDashboardService{stats: emptyStats()}
	controller := NewDashboardController(service, zap.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet,
		"/api/dashboard/data?application_id=5&severity=Alta&group_flag=true&date_from=2026-01-01", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, controller.GetStats(e.NewContext(req, rec)))

	require.NotNil(t, service.lastFilter.ApplicationID)
	assert.Equal(t, uint64(5), *service.lastFilter.ApplicationID)
	require.NotNil(t, service.lastFilter.Severity)
	assert.Equal(t, "Alta", *service.lastFilter.Severity)
	require.NotNil(t, service.lastFilter.GroupFlag)
	assert.True(t, *service.lastFilter.GroupFlag)
}

func TestDashboardStatsMalformedParamsIgnored(t *testing.T) {
	service := &stubDashboardService{stats: emptyStats()}
	controller := NewDashboardController(service, zap.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet,
		"/api/dashboard/data?application_id=abc&date_from=banana&group_flag=maybe", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, controller.GetStats(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, service.lastFilter.IsZero())
}

func TestDashboardStatsServiceError(t *testing.T) {
	service := &stubDashboardService{err: errors.New("boom")}
	controller := NewDashboardController(service, zap.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/data", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, controller.GetStats(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}
