package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"github.com/offkey/offkey/infra"
	"github.com/offkey/offkey/mocks"
	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/repositories/clock"
)

func TestMaintenanceUsecase_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)

	alertRepository := new(mocks.AlertRepository)
	deliveryRepository := new(mocks.DeliveryRepository)
	alertRepository.On("PurgeResolvedAlerts", ctx, nil, now.Add(-30*24*time.Hour)).
		Return(int64(4), nil)
	deliveryRepository.On("PurgeSentDeliveries", ctx, nil, now.Add(-7*24*time.Hour)).
		Return(int64(12), nil)

	usecase := MaintenanceUsecase{
		executorGetter:     mocks.ExecutorGetter{},
		alertRepository:    alertRepository,
		deliveryRepository: deliveryRepository,
		clock:              clock.NewMock(now),
		alertRetention:     30 * 24 * time.Hour,
		deliveryRetention:  7 * 24 * time.Hour,
	}
	assert.NoError(t, usecase.PurgeExpired(ctx))
	alertRepository.AssertExpectations(t)
	deliveryRepository.AssertExpectations(t)
}

func TestMaintenanceUsecase_PurgeExpired_alertError(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)

	alertRepository := new(mocks.AlertRepository)
	deliveryRepository := new(mocks.DeliveryRepository)
	alertRepository.On("PurgeResolvedAlerts", ctx, nil, now.Add(-30*24*time.Hour)).
		Return(int64(0), errors.New("connection refused"))

	usecase := MaintenanceUsecase{
		executorGetter:     mocks.ExecutorGetter{},
		alertRepository:    alertRepository,
		deliveryRepository: deliveryRepository,
		clock:              clock.NewMock(now),
		alertRetention:     30 * 24 * time.Hour,
		deliveryRetention:  7 * 24 * time.Hour,
	}
	assert.Error(t, usecase.PurgeExpired(ctx))
	deliveryRepository.AssertNotCalled(t, "PurgeSentDeliveries")
}

func TestAlertsUsecase_RefreshAlertGauges(t *testing.T) {
	ctx := context.Background()

	alertRepository := new(mocks.AlertRepository)
	alertRepository.On("CountAlertsByStatus", ctx, nil, models.AlertStatusTriggered).
		Return(3, nil)
	alertRepository.On("CountAlertsByStatus", ctx, nil, models.AlertStatusResolved).
		Return(17, nil)

	usecase := AlertsUsecase{
		executorGetter:  mocks.ExecutorGetter{},
		alertRepository: alertRepository,
		telemetry:       infra.NewTelemetry(),
	}
	assert.NoError(t, usecase.RefreshAlertGauges(ctx))
	alertRepository.AssertExpectations(t)
}
