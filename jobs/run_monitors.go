package jobs

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"golang.org/x/sync/errgroup"

	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/usecases"
	"github.com/offkey/offkey/utils"
)

// RunMonitors runs one evaluation loop per configured monitor, each on its
// own period, until the context is canceled.
func RunMonitors(ctx context.Context, uc usecases.Usecases) error {
	monitorsUsecase := uc.NewMonitorsUsecase()
	monitors := monitorsUsecase.ListMonitors()
	if len(monitors) == 0 {
		return errors.New("no monitors configured")
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, monitor := range monitors {
		group.Go(func() error {
			return runMonitorLoop(groupCtx, uc, monitor)
		})
	}
	return group.Wait()
}

func runMonitorLoop(ctx context.Context, uc usecases.Usecases, monitor models.Monitor) error {
	logger := utils.LoggerFromContext(ctx).With("monitor", monitor.Name)
	ctx = utils.StoreLoggerInContext(ctx, logger)

	evaluationUsecase := uc.NewMonitorEvaluationUsecase()
	ticker := utils.NewTicker(uc.Repositories.Clock.Now(), monitor.Period)
	logger.InfoContext(ctx, fmt.Sprintf(
		"starting monitor '%s' with period %s", monitor.Name, monitor.Period))

	for {
		if _, err := ticker.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		evaluateOnce(ctx, evaluationUsecase, monitor)
	}
}

// evaluateOnce runs a single evaluation pass. Errors and panics are reported
// and swallowed so that a bad pass never stops the loop.
func evaluateOnce(ctx context.Context, usecase usecases.MonitorEvaluationUsecase, monitor models.Monitor) {
	logger := utils.LoggerFromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, fmt.Sprintf(
				"recovered from panic in monitor '%s': %v", monitor.Name, r))
			if hub := sentry.GetHubFromContext(ctx); hub != nil {
				hub.RecoverWithContext(ctx, r)
			} else {
				sentry.CurrentHub().RecoverWithContext(ctx, r)
			}
		}
	}()

	if _, err := usecase.EvaluateMonitor(ctx, monitor, false); err != nil {
		utils.LogAndReportSentryError(ctx, errors.Wrapf(err,
			"error evaluating monitor '%s'", monitor.Name))
	}
}
