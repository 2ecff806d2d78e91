package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/offkey/offkey/repositories"
	"github.com/offkey/offkey/repositories/clock"
	"github.com/offkey/offkey/utils"
)

type MaintenanceUsecase struct {
	executorGetter     executorGetter
	alertRepository    repositories.AlertRepository
	deliveryRepository repositories.DeliveryRepository
	clock              clock.Clock
	alertRetention     time.Duration
	deliveryRetention  time.Duration
}

// PurgeExpired removes resolved alerts and sent deliveries past their
// retention windows.
func (usecase MaintenanceUsecase) PurgeExpired(ctx context.Context) error {
	logger := utils.LoggerFromContext(ctx)
	exec := usecase.executorGetter.GetExecutor()
	now := usecase.clock.Now()

	alerts, err := usecase.alertRepository.PurgeResolvedAlerts(ctx, exec,
		now.Add(-usecase.alertRetention))
	if err != nil {
		return errors.Wrap(err, "failed to purge resolved alerts")
	}

	deliveries, err := usecase.deliveryRepository.PurgeSentDeliveries(ctx, exec,
		now.Add(-usecase.deliveryRetention))
	if err != nil {
		return errors.Wrap(err, "failed to purge sent deliveries")
	}

	if alerts > 0 || deliveries > 0 {
		logger.InfoContext(ctx, fmt.Sprintf(
			"purged %d resolved alerts and %d sent deliveries", alerts, deliveries))
	}
	return nil
}
