package models

import "time"

// DefaultMonitors is the built-in monitor set, used when no monitors file is
// configured. It watches the standard Metricbeat system module: CPU
// percentage and load over several horizons, memory use, per-device disk I/O
// and per-process CPU.
func DefaultMonitors() []Monitor {
	return []Monitor{
		{
			Name:      "cpu-1m",
			Module:    "system",
			Metricset: "cpu",
			Metrics: map[string]MetricThresholds{
				".total.pct:avg": {
					Message: "High CPU percentage (1-minute average)",
					Levels: map[Severity]float64{
						SeverityInfo: 90, SeverityWarning: 95,
						SeverityError: 97, SeverityCritical: 99,
					},
				},
			},
			Window: time.Minute,
			Period: 10 * time.Second,
		},
		{
			Name:      "cpu-5m",
			Module:    "system",
			Metricset: "cpu",
			Metrics: map[string]MetricThresholds{
				".total.pct:avg": {
					Message: "High CPU percentage (5-minute average)",
					Levels: map[Severity]float64{
						SeverityInfo: 80, SeverityWarning: 90,
						SeverityError: 95, SeverityCritical: 98,
					},
				},
			},
			Window: 5 * time.Minute,
			Period: time.Minute,
		},
		{
			Name:      "cpu-15m",
			Module:    "system",
			Metricset: "cpu",
			Metrics: map[string]MetricThresholds{
				".total.pct:avg": {
					Message: "High CPU percentage (15-minute average)",
					Levels: map[Severity]float64{
						SeverityInfo: 70, SeverityWarning: 80,
						SeverityError: 90, SeverityCritical: 95,
					},
				},
			},
			Window: 15 * time.Minute,
			Period: time.Minute,
		},
		{
			Name:      "load",
			Module:    "system",
			Metricset: "load",
			Metrics: map[string]MetricThresholds{
				".norm.1:max": {
					Message: "High 1-minute CPU load",
					Levels: map[Severity]float64{
						SeverityInfo: 10, SeverityWarning: 20,
						SeverityError: 30, SeverityCritical: 40,
					},
				},
				".norm.5:max": {
					Message: "High 5-minute CPU load",
					Levels: map[Severity]float64{
						SeverityInfo: 5, SeverityWarning: 10,
						SeverityError: 15, SeverityCritical: 20,
					},
				},
				".norm.15:max": {
					Message: "High 15-minute CPU load",
					Levels: map[Severity]float64{
						SeverityInfo: 2.5, SeverityWarning: 5,
						SeverityError: 7.5, SeverityCritical: 10,
					},
				},
			},
			Window: time.Minute,
			Period: 30 * time.Second,
		},
		{
			Name:      "memory",
			Module:    "system",
			Metricset: "memory",
			Metrics: map[string]MetricThresholds{
				".used.pct:avg": {
					Message: "High memory use",
					Levels: map[Severity]float64{
						SeverityInfo: 80, SeverityWarning: 90,
						SeverityError: 95, SeverityCritical: 98,
					},
				},
			},
			Window: time.Minute,
			Period: 30 * time.Second,
		},
		{
			Name:      "diskio-1m",
			Module:    "system",
			Metricset: "diskio",
			Axes:      []string{".name"},
			Metrics: map[string]MetricThresholds{
				".iostat.busy": {
					Message: "High 1-minute disk I/O",
					Levels: map[Severity]float64{
						SeverityInfo: 90, SeverityWarning: 95,
						SeverityError: 97, SeverityCritical: 99,
					},
				},
			},
			Window: time.Minute,
			Period: time.Minute,
		},
		{
			Name:      "diskio-5m",
			Module:    "system",
			Metricset: "diskio",
			Axes:      []string{".name"},
			Metrics: map[string]MetricThresholds{
				".iostat.busy": {
					Message: "High 5-minute disk I/O",
					Levels: map[Severity]float64{
						SeverityInfo: 80, SeverityWarning: 90,
						SeverityError: 95, SeverityCritical: 97,
					},
				},
			},
			Window: 5 * time.Minute,
			Period: time.Minute,
		},
		{
			Name:      "diskio-15m",
			Module:    "system",
			Metricset: "diskio",
			Axes:      []string{".name"},
			Metrics: map[string]MetricThresholds{
				".iostat.busy": {
					Message: "High 15-minute disk I/O",
					Levels: map[Severity]float64{
						SeverityInfo: 80, SeverityWarning: 90,
						SeverityError: 95, SeverityCritical: 97,
					},
				},
			},
			Window: 15 * time.Minute,
			Period: time.Minute,
		},
		{
			Name:      "process-cpu",
			Module:    "system",
			Metricset: "process",
			// start_time distinguishes recycled PIDs
			Axes: []string{".pid", ".cpu.start_time", ".name"},
			Metrics: map[string]MetricThresholds{
				".cpu.total.pct": {
					Message: "High process CPU usage",
					Levels: map[Severity]float64{
						SeverityInfo: 0.001, SeverityWarning: 0.002,
						SeverityError: 0.005, SeverityCritical: 0.01,
					},
				},
			},
			Window: time.Minute,
			Period: 30 * time.Second,
		},
	}
}
