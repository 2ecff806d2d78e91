package utils

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// LogAndReportSentryError logs the error with the context logger and forwards
// it to sentry, using the request-scoped hub if one is present.
func LogAndReportSentryError(ctx context.Context, err error) {
	logger := LoggerFromContext(ctx)
	logger.ErrorContext(ctx, err.Error())

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}
}
