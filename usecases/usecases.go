package usecases

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/offkey/offkey/infra"
	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/repositories"
)

// executorGetter is the database access surface of the usecases, implemented
// by repositories.ExecutorGetter.
type executorGetter interface {
	GetExecutor() repositories.Executor
	Transaction(ctx context.Context, fn func(tx repositories.Executor) error) error
}

const (
	defaultDedupCacheSize      = 4096
	defaultMaxDeliveryAttempts = 5
	defaultAlertRetention      = 30 * 24 * time.Hour
	defaultDeliveryRetention   = 7 * 24 * time.Hour
)

type Usecases struct {
	Repositories repositories.Repositories

	monitors            []models.Monitor
	monitorsByName      map[string]models.Monitor
	telemetry           *infra.Telemetry
	statusCache         *lru.Cache[string, models.AlertStatus]
	maxDeliveryAttempts int
	alertRetention      time.Duration
	deliveryRetention   time.Duration
}

type options struct {
	monitors            []models.Monitor
	telemetry           *infra.Telemetry
	dedupCacheSize      int
	maxDeliveryAttempts int
	alertRetention      time.Duration
	deliveryRetention   time.Duration
}

type Option func(*options)

func WithMonitors(monitors []models.Monitor) Option {
	return func(o *options) {
		o.monitors = monitors
	}
}

func WithTelemetry(telemetry *infra.Telemetry) Option {
	return func(o *options) {
		o.telemetry = telemetry
	}
}

func WithDedupCacheSize(size int) Option {
	return func(o *options) {
		o.dedupCacheSize = size
	}
}

func WithMaxDeliveryAttempts(attempts int) Option {
	return func(o *options) {
		o.maxDeliveryAttempts = attempts
	}
}

func WithAlertRetention(retention time.Duration) Option {
	return func(o *options) {
		o.alertRetention = retention
	}
}

func WithDeliveryRetention(retention time.Duration) Option {
	return func(o *options) {
		o.deliveryRetention = retention
	}
}

func NewUsecases(repositories repositories.Repositories, opts ...Option) Usecases {
	o := &options{
		monitors:            models.DefaultMonitors(),
		telemetry:           infra.NewTelemetry(),
		dedupCacheSize:      defaultDedupCacheSize,
		maxDeliveryAttempts: defaultMaxDeliveryAttempts,
		alertRetention:      defaultAlertRetention,
		deliveryRetention:   defaultDeliveryRetention,
	}
	for _, opt := range opts {
		opt(o)
	}

	statusCache, err := lru.New[string, models.AlertStatus](o.dedupCacheSize)
	if err != nil {
		// Only fails on a non-positive size.
		panic(err)
	}

	monitorsByName := make(map[string]models.Monitor, len(o.monitors))
	for _, monitor := range o.monitors {
		monitorsByName[monitor.Name] = monitor
	}

	return Usecases{
		Repositories:        repositories,
		monitors:            o.monitors,
		monitorsByName:      monitorsByName,
		telemetry:           o.telemetry,
		statusCache:         statusCache,
		maxDeliveryAttempts: o.maxDeliveryAttempts,
		alertRetention:      o.alertRetention,
		deliveryRetention:   o.deliveryRetention,
	}
}

func (usecases *Usecases) Telemetry() *infra.Telemetry {
	return usecases.telemetry
}

func (usecases *Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		executorGetter:     usecases.Repositories.ExecutorGetter,
		livenessRepository: usecases.Repositories.LivenessRepository,
	}
}

func (usecases *Usecases) NewMonitorsUsecase() MonitorsUsecase {
	return MonitorsUsecase{
		monitors:       usecases.monitors,
		monitorsByName: usecases.monitorsByName,
	}
}

func (usecases *Usecases) NewAlertsUsecase() AlertsUsecase {
	return AlertsUsecase{
		executorGetter:  usecases.Repositories.ExecutorGetter,
		alertRepository: usecases.Repositories.AlertRepository,
		telemetry:       usecases.telemetry,
	}
}

func (usecases *Usecases) NewDeliveryUsecase() DeliveryUsecase {
	return DeliveryUsecase{
		executorGetter:      usecases.Repositories.ExecutorGetter,
		deliveryRepository:  usecases.Repositories.DeliveryRepository,
		pagerdutyRepository: usecases.Repositories.PagerDutyRepository,
		clock:               usecases.Repositories.Clock,
		telemetry:           usecases.telemetry,
		maxAttempts:         usecases.maxDeliveryAttempts,
	}
}

func (usecases *Usecases) NewMonitorEvaluationUsecase() MonitorEvaluationUsecase {
	return MonitorEvaluationUsecase{
		executorGetter:     usecases.Repositories.ExecutorGetter,
		alertRepository:    usecases.Repositories.AlertRepository,
		deliveryRepository: usecases.Repositories.DeliveryRepository,
		metricsRepository:  usecases.Repositories.MetricsRepository,
		deliveryUsecase:    usecases.NewDeliveryUsecase(),
		clock:              usecases.Repositories.Clock,
		telemetry:          usecases.telemetry,
		statusCache:        usecases.statusCache,
	}
}

func (usecases *Usecases) NewMaintenanceUsecase() MaintenanceUsecase {
	return MaintenanceUsecase{
		executorGetter:     usecases.Repositories.ExecutorGetter,
		alertRepository:    usecases.Repositories.AlertRepository,
		deliveryRepository: usecases.Repositories.DeliveryRepository,
		clock:              usecases.Repositories.Clock,
		alertRetention:     usecases.alertRetention,
		deliveryRetention:  usecases.deliveryRetention,
	}
}
