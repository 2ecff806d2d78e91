package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/offkey/offkey/infra"
	"github.com/offkey/offkey/mocks"
	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/repositories/clock"
)

func makeDeliveryUsecase(deliveryRepository *mocks.DeliveryRepository,
	pagerdutyRepository *mocks.PagerDutyRepository, now time.Time,
) DeliveryUsecase {
	return DeliveryUsecase{
		executorGetter:      mocks.ExecutorGetter{},
		deliveryRepository:  deliveryRepository,
		pagerdutyRepository: pagerdutyRepository,
		clock:               clock.NewMock(now),
		telemetry:           infra.NewTelemetry(),
		maxAttempts:         3,
	}
}

func TestDeliveryUsecase_Dispatch(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	delivery := models.AlertDelivery{
		Id:          "delivery-1",
		DedupKey:    "dedup-1",
		EventAction: models.EventActionTrigger,
		Payload:     &models.PagerDutyPayload{Summary: "cpu usage: 0.91 >= 0.9"},
	}

	t.Run("sent", func(t *testing.T) {
		deliveryRepository := new(mocks.DeliveryRepository)
		pagerdutyRepository := new(mocks.PagerDutyRepository)
		pagerdutyRepository.On("EnqueueEvent", ctx, models.PagerDutyEvent{
			DedupKey:    "dedup-1",
			EventAction: models.EventActionTrigger,
			Payload:     delivery.Payload,
		}).Return(nil)
		deliveryRepository.On("MarkDeliverySent", ctx, nil, "delivery-1", now).Return(nil)

		usecase := makeDeliveryUsecase(deliveryRepository, pagerdutyRepository, now)
		assert.NoError(t, usecase.Dispatch(ctx, delivery))
		deliveryRepository.AssertExpectations(t)
		pagerdutyRepository.AssertExpectations(t)
	})

	t.Run("transient failure stays pending", func(t *testing.T) {
		deliveryRepository := new(mocks.DeliveryRepository)
		pagerdutyRepository := new(mocks.PagerDutyRepository)
		pagerdutyRepository.On("EnqueueEvent", ctx, mock.Anything).
			Return(errors.New("connection reset"))
		deliveryRepository.On("MarkDeliveryFailed", ctx, nil, "delivery-1",
			mock.Anything, false).Return(nil)

		usecase := makeDeliveryUsecase(deliveryRepository, pagerdutyRepository, now)
		assert.Error(t, usecase.Dispatch(ctx, delivery))
		deliveryRepository.AssertExpectations(t)
	})

	t.Run("rejection is final", func(t *testing.T) {
		deliveryRepository := new(mocks.DeliveryRepository)
		pagerdutyRepository := new(mocks.PagerDutyRepository)
		pagerdutyRepository.On("EnqueueEvent", ctx, mock.Anything).
			Return(errors.Wrap(models.ErrDeliveryRejected, "status 400"))
		deliveryRepository.On("MarkDeliveryFailed", ctx, nil, "delivery-1",
			mock.Anything, true).Return(nil)

		usecase := makeDeliveryUsecase(deliveryRepository, pagerdutyRepository, now)
		assert.Error(t, usecase.Dispatch(ctx, delivery))
		deliveryRepository.AssertExpectations(t)
	})

	t.Run("exhausted attempts are final", func(t *testing.T) {
		deliveryRepository := new(mocks.DeliveryRepository)
		pagerdutyRepository := new(mocks.PagerDutyRepository)
		pagerdutyRepository.On("EnqueueEvent", ctx, mock.Anything).
			Return(errors.New("connection reset"))
		deliveryRepository.On("MarkDeliveryFailed", ctx, nil, "delivery-1",
			mock.Anything, true).Return(nil)

		exhausted := delivery
		exhausted.Attempts = 2
		usecase := makeDeliveryUsecase(deliveryRepository, pagerdutyRepository, now)
		assert.Error(t, usecase.Dispatch(ctx, exhausted))
		deliveryRepository.AssertExpectations(t)
	})
}

func TestDeliveryUsecase_SendPendingDeliveries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	deliveryRepository := new(mocks.DeliveryRepository)
	pagerdutyRepository := new(mocks.PagerDutyRepository)
	deliveryRepository.On("ListPendingDeliveries", ctx, nil, 3, pendingDeliveriesBatchSize).
		Return([]models.AlertDelivery{
			{Id: "delivery-1", DedupKey: "dedup-1", EventAction: models.EventActionTrigger},
			{Id: "delivery-2", DedupKey: "dedup-2", EventAction: models.EventActionResolve},
		}, nil)
	pagerdutyRepository.On("EnqueueEvent", ctx, mock.MatchedBy(func(event models.PagerDutyEvent) bool {
		return event.DedupKey == "dedup-1"
	})).Return(errors.New("connection reset"))
	pagerdutyRepository.On("EnqueueEvent", ctx, mock.MatchedBy(func(event models.PagerDutyEvent) bool {
		return event.DedupKey == "dedup-2"
	})).Return(nil)
	deliveryRepository.On("MarkDeliveryFailed", ctx, nil, "delivery-1", mock.Anything, false).
		Return(nil)
	deliveryRepository.On("MarkDeliverySent", ctx, nil, "delivery-2", now).
		Return(nil)

	// One failed send does not stop the batch.
	usecase := makeDeliveryUsecase(deliveryRepository, pagerdutyRepository, now)
	assert.NoError(t, usecase.SendPendingDeliveries(ctx))
	deliveryRepository.AssertExpectations(t)
	pagerdutyRepository.AssertExpectations(t)
}
