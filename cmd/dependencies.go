package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offkey/offkey/infra"
	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/repositories"
	"github.com/offkey/offkey/usecases"
	"github.com/offkey/offkey/utils"
)

const appName = "offkey"

type appConfig struct {
	env           string
	loggingFormat string
	sentryDsn     string

	pg         infra.PgConfig
	es         infra.ElasticsearchConfig
	pagerduty  infra.PagerDutyConfig
	monitorsFp string

	dedupCacheSize      int
	maxDeliveryAttempts int
	alertRetention      time.Duration
	deliveryRetention   time.Duration
}

func loadAppConfig() appConfig {
	return appConfig{
		env:           utils.GetEnv("ENV", "development"),
		loggingFormat: utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:     utils.GetEnv("SENTRY_DSN", ""),

		pg: infra.PgConfig{
			ConnectionString: utils.GetEnv("PG_CONNECTION_STRING", ""),
			Database:         utils.GetEnv("PG_DATABASE", "offkey"),
			Hostname:         utils.GetEnv("PG_HOSTNAME", "localhost"),
			Port:             utils.GetEnv("PG_PORT", "5432"),
			User:             utils.GetEnv("PG_USER", "postgres"),
			Password:         utils.GetEnv("PG_PASSWORD", ""),
		},
		es: infra.ElasticsearchConfig{
			Addresses:       strings.Split(utils.GetEnv("ELASTICSEARCH_URL", "http://localhost:9200"), ","),
			Username:        utils.GetEnv("ELASTICSEARCH_USERNAME", ""),
			Password:        utils.GetEnv("ELASTICSEARCH_PASSWORD", ""),
			ApiKey:          utils.GetEnv("ELASTICSEARCH_API_KEY", ""),
			Index:           utils.GetEnv("ELASTICSEARCH_INDEX", repositories.MetricbeatIndex),
			InsecureSkipTLS: utils.GetEnv("ELASTICSEARCH_INSECURE_SKIP_TLS", false),
		},
		pagerduty: infra.PagerDutyConfig{
			EnqueueUrl: utils.GetEnv("PAGERDUTY_ENQUEUE_URL", ""),
			RoutingKey: utils.GetEnv("PAGERDUTY_ROUTING_KEY", ""),
		},
		monitorsFp: utils.GetEnv("MONITORS_FILE", ""),

		dedupCacheSize:      utils.GetEnv("DEDUP_CACHE_SIZE", 4096),
		maxDeliveryAttempts: utils.GetEnv("MAX_DELIVERY_ATTEMPTS", 5),
		alertRetention:      utils.GetEnv("ALERT_RETENTION", 30*24*time.Hour),
		deliveryRetention:   utils.GetEnv("DELIVERY_RETENTION", 7*24*time.Hour),
	}
}

func loadMonitors(config appConfig) ([]models.Monitor, error) {
	if config.monitorsFp == "" {
		return models.DefaultMonitors(), nil
	}
	return models.LoadMonitorsFile(config.monitorsFp)
}

func setupUsecases(ctx context.Context, config appConfig) (usecases.Usecases, *pgxpool.Pool, error) {
	pool, err := infra.NewPostgresConnectionPool(ctx, config.pg.GetConnectionString())
	if err != nil {
		return usecases.Usecases{}, nil, errors.Wrap(err, "failed to create connection pool")
	}

	esClient, err := infra.NewElasticsearchClient(config.es)
	if err != nil {
		pool.Close()
		return usecases.Usecases{}, nil, err
	}

	monitors, err := loadMonitors(config)
	if err != nil {
		pool.Close()
		return usecases.Usecases{}, nil, err
	}

	repos := repositories.NewRepositories(
		pool,
		repositories.NewElasticsearchMetricsRepository(esClient, config.es.Index),
		repositories.NewPagerDutyAPIRepository(config.pagerduty.EnqueueUrl,
			config.pagerduty.RoutingKey, nil),
	)

	uc := usecases.NewUsecases(repos,
		usecases.WithMonitors(monitors),
		usecases.WithDedupCacheSize(config.dedupCacheSize),
		usecases.WithMaxDeliveryAttempts(config.maxDeliveryAttempts),
		usecases.WithAlertRetention(config.alertRetention),
		usecases.WithDeliveryRetention(config.deliveryRetention),
	)
	return uc, pool, nil
}
