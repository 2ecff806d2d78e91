package jobs

import (
	"context"

	"github.com/adhocore/gronx/pkg/tasker"

	"github.com/offkey/offkey/usecases"
	"github.com/offkey/offkey/utils"
)

func errToReturnCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

// RunScheduler runs the cron-style maintenance jobs: draining deliveries the
// evaluation passes could not send, and purging expired rows.
func RunScheduler(ctx context.Context, usecases usecases.Usecases) {
	taskr := tasker.New(tasker.Option{
		Verbose: true,
	}).WithContext(ctx)

	notConcurrent := false
	taskr.Task("* * * * *", func(ctx context.Context) (int, error) {
		logger := utils.LoggerFromContext(ctx).With("job", "send_pending_deliveries")
		ctx = utils.StoreLoggerInContext(ctx, logger)
		err := SendPendingDeliveries(ctx, usecases)
		return errToReturnCode(err), err
	}, notConcurrent)

	taskr.Task("0 3 * * *", func(ctx context.Context) (int, error) {
		logger := utils.LoggerFromContext(ctx).With("job", "purge_expired")
		ctx = utils.StoreLoggerInContext(ctx, logger)
		err := PurgeExpired(ctx, usecases)
		return errToReturnCode(err), err
	})

	taskr.Run()
}
