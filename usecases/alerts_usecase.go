package usecases

import (
	"context"

	"github.com/offkey/offkey/infra"
	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/repositories"
)

type AlertsUsecase struct {
	executorGetter  executorGetter
	alertRepository repositories.AlertRepository
	telemetry       *infra.Telemetry
}

func (usecase AlertsUsecase) ListAlerts(ctx context.Context, filters models.AlertFilters) ([]models.Alert, error) {
	return usecase.alertRepository.ListAlerts(ctx, usecase.executorGetter.GetExecutor(), filters)
}

func (usecase AlertsUsecase) GetAlert(ctx context.Context, id string) (models.Alert, error) {
	return usecase.alertRepository.GetAlertById(ctx, usecase.executorGetter.GetExecutor(), id)
}

// RefreshAlertGauges publishes the current per-status alert counts.
func (usecase AlertsUsecase) RefreshAlertGauges(ctx context.Context) error {
	exec := usecase.executorGetter.GetExecutor()
	for _, status := range []models.AlertStatus{models.AlertStatusTriggered, models.AlertStatusResolved} {
		count, err := usecase.alertRepository.CountAlertsByStatus(ctx, exec, status)
		if err != nil {
			return err
		}
		usecase.telemetry.AlertsCurrent.WithLabelValues(string(status)).Set(float64(count))
	}
	return nil
}
