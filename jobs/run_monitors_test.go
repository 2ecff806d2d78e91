package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/repositories"
	"github.com/offkey/offkey/repositories/clock"
	"github.com/offkey/offkey/usecases"
)

// flakyMetricsRepository panics on one monitor and returns an empty series
// for every other.
type flakyMetricsRepository struct {
	panicMonitor string
	healthyCalls atomic.Int64
	panicCalls   atomic.Int64
}

func (r *flakyMetricsRepository) QuerySeries(ctx context.Context, monitor models.Monitor,
	endTime time.Time,
) ([]models.SeriesPoint, error) {
	if monitor.Name == r.panicMonitor {
		r.panicCalls.Add(1)
		panic("metrics store went away")
	}
	r.healthyCalls.Add(1)
	return nil, nil
}

func fastMonitor(name string) models.Monitor {
	return models.Monitor{
		Name:      name,
		Module:    "system",
		Metricset: "cpu",
		Metrics: map[string]models.MetricThresholds{
			".total.norm.pct": {
				Levels: map[models.Severity]float64{models.SeverityWarning: 0.9},
			},
		},
		Window: 5 * time.Minute,
		Period: 10 * time.Millisecond,
	}
}

func TestRunMonitorsPanicDoesNotStopOtherMonitors(t *testing.T) {
	metricsRepository := &flakyMetricsRepository{panicMonitor: "cpu-flaky"}
	uc := usecases.NewUsecases(repositories.Repositories{
		MetricsRepository: metricsRepository,
		Clock:             clock.New(),
	}, usecases.WithMonitors([]models.Monitor{
		fastMonitor("cpu-flaky"),
		fastMonitor("cpu-steady"),
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunMonitors(ctx, uc)
	}()

	// Both loops keep ticking after the flaky monitor's first panic.
	deadline := time.After(5 * time.Second)
	for metricsRepository.panicCalls.Load() < 3 || metricsRepository.healthyCalls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("monitor loops stopped evaluating")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	require.NoError(t, <-done)
	assert.GreaterOrEqual(t, metricsRepository.panicCalls.Load(), int64(3))
	assert.GreaterOrEqual(t, metricsRepository.healthyCalls.Load(), int64(3))
}

func TestRunMonitorsRequiresMonitors(t *testing.T) {
	uc := usecases.NewUsecases(repositories.Repositories{Clock: clock.New()},
		usecases.WithMonitors(nil))

	err := RunMonitors(context.Background(), uc)
	assert.ErrorContains(t, err, "no monitors configured")
}
