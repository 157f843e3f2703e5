package dto

import "cmdb-system/pkg/types"

// DashboardStatsDTO is the aggregate snapshot returned by the dashboard
// data endpoint. The JSON keys are the historical wire contract of the
// dashboard client and must not be renamed.
type DashboardStatsDTO struct {
	TotalGeneral  int64             `json:"total_general"`
	TotalFiltrado int64             `json:"total_filtrado"`
	PorAplicativo types.ChartSeries `json:"por_aplicativo"`
	PorMes        types.ChartSeries `json:"por_mes"`
	PorSeveridad  types.ChartSeries `json:"por_severidad"`
	PorCodCierre  types.ChartSeries `json:"por_codigo_cierre"`
	PorIndraD     types.ChartSeries `json:"por_indra_d"`
}
