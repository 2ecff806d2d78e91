package usecases

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/offkey/offkey/infra"
	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/repositories"
	"github.com/offkey/offkey/repositories/clock"
	"github.com/offkey/offkey/utils"
)

const pendingDeliveriesBatchSize = 100

type DeliveryUsecase struct {
	executorGetter      executorGetter
	deliveryRepository  repositories.DeliveryRepository
	pagerdutyRepository repositories.PagerDutyRepository
	clock               clock.Clock
	telemetry           *infra.Telemetry
	maxAttempts         int
}

// Dispatch sends one enqueued delivery and records the outcome. A rejection by
// the events endpoint, or exhausting the attempts, marks the delivery failed
// for good; any other error leaves it pending for the retry job.
func (usecase DeliveryUsecase) Dispatch(ctx context.Context, delivery models.AlertDelivery) error {
	return usecase.dispatch(ctx, usecase.executorGetter.GetExecutor(), delivery)
}

func (usecase DeliveryUsecase) dispatch(ctx context.Context, exec repositories.Executor,
	delivery models.AlertDelivery,
) error {
	err := usecase.pagerdutyRepository.EnqueueEvent(ctx, models.PagerDutyEvent{
		DedupKey:    delivery.DedupKey,
		EventAction: delivery.EventAction,
		Payload:     delivery.Payload,
	})
	if err != nil {
		final := errors.Is(err, models.ErrDeliveryRejected) ||
			delivery.Attempts+1 >= usecase.maxAttempts
		usecase.telemetry.DeliveriesTotal.
			WithLabelValues(delivery.EventAction, "failed").Inc()
		if markErr := usecase.deliveryRepository.MarkDeliveryFailed(ctx, exec,
			delivery.Id, err.Error(), final); markErr != nil {
			return errors.Join(err, markErr)
		}
		return err
	}

	usecase.telemetry.DeliveriesTotal.
		WithLabelValues(delivery.EventAction, "sent").Inc()
	return usecase.deliveryRepository.MarkDeliverySent(ctx, exec, delivery.Id,
		usecase.clock.Now())
}

// SendPendingDeliveries drains the deliveries the evaluation passes could not
// send. The batch is claimed and processed in one transaction so concurrent
// senders skip the same rows. Send errors are logged and do not stop the
// batch.
func (usecase DeliveryUsecase) SendPendingDeliveries(ctx context.Context) error {
	logger := utils.LoggerFromContext(ctx)

	var processed int
	err := usecase.executorGetter.Transaction(ctx, func(tx repositories.Executor) error {
		deliveries, err := usecase.deliveryRepository.ListPendingDeliveries(ctx, tx,
			usecase.maxAttempts, pendingDeliveriesBatchSize)
		if err != nil {
			return errors.Wrap(err, "failed to list pending deliveries")
		}

		for _, delivery := range deliveries {
			if err := usecase.dispatch(ctx, tx, delivery); err != nil {
				logger.WarnContext(ctx, fmt.Sprintf(
					"failed to send pending delivery %s: %v", delivery.Id, err))
			}
		}
		processed = len(deliveries)
		return nil
	})
	if err != nil {
		return err
	}

	if processed > 0 {
		logger.InfoContext(ctx, fmt.Sprintf("processed %d pending deliveries", processed))
	}
	return nil
}
