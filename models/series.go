package models

// SeriesPoint is one aggregated metric value for one combination of axis
// values, flattened out of the nested bucket structure returned by the
// metrics store. AxisValues is aligned with Monitor.AllAxes().
type SeriesPoint struct {
	AxisValues []any
	Metric     string
	Value      float64
}
