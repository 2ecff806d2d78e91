package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offkey/offkey/repositories/clock"
)

type Repositories struct {
	ExecutorGetter      ExecutorGetter
	AlertRepository     AlertRepository
	DeliveryRepository  DeliveryRepository
	LivenessRepository  LivenessRepository
	MetricsRepository   MetricsRepository
	PagerDutyRepository PagerDutyRepository
	Clock               clock.Clock
}

type repositoriesOptions struct {
	clock clock.Clock
}

type RepositoriesOption func(*repositoriesOptions)

func WithClock(c clock.Clock) RepositoriesOption {
	return func(o *repositoriesOptions) {
		o.clock = c
	}
}

func NewRepositories(
	pool *pgxpool.Pool,
	metricsRepository MetricsRepository,
	pagerDutyRepository PagerDutyRepository,
	opts ...RepositoriesOption,
) Repositories {
	options := &repositoriesOptions{
		clock: clock.New(),
	}
	for _, opt := range opts {
		opt(options)
	}

	return Repositories{
		ExecutorGetter:      NewExecutorGetter(pool),
		AlertRepository:     &AlertRepositoryPostgresql{},
		DeliveryRepository:  &DeliveryRepositoryPostgresql{},
		LivenessRepository:  &LivenessRepositoryPostgresql{},
		MetricsRepository:   metricsRepository,
		PagerDutyRepository: pagerDutyRepository,
		Clock:               options.clock,
	}
}
