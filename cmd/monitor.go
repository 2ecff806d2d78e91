package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"golang.org/x/sync/errgroup"

	"github.com/offkey/offkey/infra"
	"github.com/offkey/offkey/jobs"
	"github.com/offkey/offkey/utils"
)

// RunMonitorScheduler runs the monitor evaluation loops alongside the cron
// maintenance jobs, until interrupted.
func RunMonitorScheduler() error {
	config := loadAppConfig()
	logger := utils.NewLogger(config.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(config.sentryDsn, config.env, appName)
	defer sentry.Flush(3 * time.Second)

	uc, pool, err := setupUsecases(ctx, config)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	defer pool.Close()

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(notify)
	group.Go(func() error {
		return jobs.RunMonitors(groupCtx, uc)
	})
	group.Go(func() error {
		jobs.RunScheduler(groupCtx, uc)
		return nil
	})

	if err := group.Wait(); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	return nil
}
