package dto

import (
	"github.com/offkey/offkey/models"
)

type Monitor struct {
	Name      string                      `json:"name"`
	Module    string                      `json:"module"`
	Metricset string                      `json:"metricset"`
	Axes      []string                    `json:"axes,omitempty"`
	Metrics   map[string]MetricThresholds `json:"metrics"`
	Window    string                      `json:"window"`
	Period    string                      `json:"period"`
}

type MetricThresholds struct {
	Message string             `json:"message,omitempty"`
	Levels  map[string]float64 `json:"levels"`
}

func AdaptMonitorDto(monitor models.Monitor) Monitor {
	metrics := make(map[string]MetricThresholds, len(monitor.Metrics))
	for spec, thresholds := range monitor.Metrics {
		levels := make(map[string]float64, len(thresholds.Levels))
		for severity, threshold := range thresholds.Levels {
			levels[string(severity)] = threshold
		}
		metrics[spec] = MetricThresholds{
			Message: thresholds.Message,
			Levels:  levels,
		}
	}
	return Monitor{
		Name:      monitor.Name,
		Module:    monitor.Module,
		Metricset: monitor.Metricset,
		Axes:      monitor.Axes,
		Metrics:   metrics,
		Window:    monitor.Window.String(),
		Period:    monitor.Period.String(),
	}
}
