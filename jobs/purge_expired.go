package jobs

import (
	"context"

	"github.com/offkey/offkey/usecases"
)

func PurgeExpired(ctx context.Context, uc usecases.Usecases) error {
	return executeWithMonitoring(
		ctx,
		uc,
		"purge-expired",
		func(ctx context.Context, usecases usecases.Usecases) error {
			maintenanceUsecase := usecases.NewMaintenanceUsecase()
			return maintenanceUsecase.PurgeExpired(ctx)
		},
	)
}
