package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/offkey/offkey/api/middleware"
	"github.com/offkey/offkey/utils"
)

func corsOption(conf Configuration) cors.Config {
	return cors.Config{
		AllowOrigins: conf.AllowedOrigins,
		AllowMethods: []string{
			http.MethodOptions, http.MethodHead, http.MethodGet, http.MethodPost,
		},
		AllowHeaders:     []string{"Authorization", "Content-Type", "baggage", "sentry-trace"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}

func InitRouterMiddlewares(ctx context.Context, conf Configuration) *gin.Engine {
	if conf.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := utils.LoggerFromContext(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	if len(conf.AllowedOrigins) > 0 {
		r.Use(cors.New(corsOption(conf)))
	}
	r.Use(middleware.NewLogging(logger, middleware.WithIgnorePath([]string{"/liveness"})))
	r.Use(utils.StoreLoggerInContextMiddleware(logger))

	return r
}
