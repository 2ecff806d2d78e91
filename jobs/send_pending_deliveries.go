package jobs

import (
	"context"

	"github.com/offkey/offkey/usecases"
)

func SendPendingDeliveries(ctx context.Context, uc usecases.Usecases) error {
	return executeWithMonitoring(
		ctx,
		uc,
		"send-pending-deliveries",
		func(ctx context.Context, usecases usecases.Usecases) error {
			deliveryUsecase := usecases.NewDeliveryUsecase()
			if err := deliveryUsecase.SendPendingDeliveries(ctx); err != nil {
				return err
			}
			return usecases.NewAlertsUsecase().RefreshAlertGauges(ctx)
		},
	)
}
