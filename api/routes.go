package api

import (
	"github.com/gin-gonic/gin"

	"github.com/offkey/offkey/usecases"
)

func addRoutes(r *gin.Engine, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe(uc))

	r.GET("/monitors", handleListMonitors(uc))
	r.GET("/monitors/:monitor_name", handleGetMonitor(uc))
	r.POST("/monitors/:monitor_name/evaluate", handleEvaluateMonitor(uc))

	r.GET("/alerts", handleListAlerts(uc))
	r.GET("/alerts/:alert_id", handleGetAlert(uc))

	r.GET("/-/metrics", gin.WrapH(uc.Telemetry().Handler()))
}
