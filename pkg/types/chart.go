package types

// ChartSeries is one aggregation dimension of the dashboard: parallel label
// and value sequences of equal length. Slices are always non-nil so the
// client can render the empty state uniformly.
type ChartSeries struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

func EmptyChartSeries() ChartSeries {
	return ChartSeries{Labels: []string{}, Values: []int64{}}
}

// CountByGroup is one raw bucket as scanned from a grouped count query.
type CountByGroup struct {
	GroupName string `db:"group_name"`
	Count     int64  `db:"count"`
}

// ToChartSeries folds raw buckets into a ChartSeries, preserving order.
func ToChartSeries(rows []CountByGroup) ChartSeries {
	series := EmptyChartSeries()
	for _, row := range rows {
		series.Labels = append(series.Labels, row.GroupName)
		series.Values = append(series.Values, row.Count)
	}
	return series
}
