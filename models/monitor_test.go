package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorAllAxes(t *testing.T) {
	monitor := Monitor{Axes: []string{".name"}}
	assert.Equal(t, []string{"cloud.region", "cloud.instance.id", ".name"}, monitor.AllAxes())
}

func TestMonitorFullFieldName(t *testing.T) {
	monitor := Monitor{Module: "system", Metricset: "diskio"}
	assert.Equal(t, "system.diskio.name", monitor.FullFieldName(".name"))
	assert.Equal(t, "cloud.region", monitor.FullFieldName("cloud.region"))
}

func TestNormalizeMonitorDeducesModuleAndMetricset(t *testing.T) {
	monitor, err := NormalizeMonitor(Monitor{
		Name: "filesystem",
		Metrics: map[string]MetricThresholds{
			"system.filesystem.used.pct:max": {
				Levels: map[Severity]float64{SeverityWarning: 0.9},
			},
		},
		Period: time.Minute,
	})
	require.NoError(t, err)
	assert.Equal(t, "system", monitor.Module)
	assert.Equal(t, "filesystem", monitor.Metricset)
	assert.Equal(t, DefaultWindow, monitor.Window)
}

func TestMonitorValidate(t *testing.T) {
	valid := Monitor{
		Name:      "cpu",
		Module:    "system",
		Metricset: "cpu",
		Metrics: map[string]MetricThresholds{
			".total.pct:avg": {Levels: map[Severity]float64{SeverityError: 97}},
		},
		Window: time.Minute,
		Period: 10 * time.Second,
	}
	assert.NoError(t, valid.Validate())

	noMetrics := valid
	noMetrics.Metrics = nil
	assert.ErrorIs(t, noMetrics.Validate(), ErrInvalidMonitor)

	noPeriod := valid
	noPeriod.Period = 0
	assert.ErrorIs(t, noPeriod.Validate(), ErrInvalidMonitor)

	badLadder := valid
	badLadder.Metrics = map[string]MetricThresholds{
		".total.pct:avg": {Levels: map[Severity]float64{
			SeverityInfo: 90, SeverityWarning: 80, SeverityError: 97,
		}},
	}
	assert.ErrorIs(t, badLadder.Validate(), ErrThresholdsNotMonotonic)
}

func TestDefaultMonitorsAreValid(t *testing.T) {
	monitors := DefaultMonitors()
	require.NotEmpty(t, monitors)

	seen := make(map[string]struct{})
	for _, monitor := range monitors {
		assert.NoError(t, monitor.Validate(), "monitor %s", monitor.Name)
		_, duplicate := seen[monitor.Name]
		assert.False(t, duplicate, "duplicate monitor name %s", monitor.Name)
		seen[monitor.Name] = struct{}{}
	}
}
