package cmd

import (
	"context"

	"github.com/offkey/offkey/repositories"
	"github.com/offkey/offkey/utils"
)

func RunMigrations() error {
	config := loadAppConfig()
	logger := utils.NewLogger(config.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	migrater := repositories.NewMigrater(config.pg.GetConnectionString())
	if err := migrater.Run(ctx); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	return nil
}
