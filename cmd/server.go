package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/offkey/offkey/api"
	"github.com/offkey/offkey/infra"
	"github.com/offkey/offkey/utils"
)

func RunServer() error {
	config := loadAppConfig()
	apiConfig := api.Configuration{
		Env:            config.env,
		AppName:        appName,
		Port:           utils.GetEnv("PORT", "8080"),
		AllowedOrigins: splitOrigins(utils.GetEnv("ALLOWED_ORIGINS", "")),
		DefaultTimeout: time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 30)) * time.Second,
	}

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

	router := api.InitRouterMiddlewares(ctx, apiConfig)
	server := api.NewServer(router, apiConfig, uc)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "error while serving the app"))
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(ctx, errors.Wrap(err, "error while shutting down the server"))
		return err
	}
	return nil
}

func splitOrigins(origins string) []string {
	if origins == "" {
		return nil
	}
	return strings.Split(origins, ",")
}
