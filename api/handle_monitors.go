package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/offkey/offkey/dto"
	"github.com/offkey/offkey/usecases"
	"github.com/offkey/offkey/utils"
)

func handleListMonitors(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewMonitorsUsecase()
		c.JSON(http.StatusOK, gin.H{
			"monitors": utils.Map(usecase.ListMonitors(), dto.AdaptMonitorDto),
		})
	}
}

func handleGetMonitor(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewMonitorsUsecase()
		monitor, err := usecase.GetMonitor(c.Param("monitor_name"))
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"monitor": dto.AdaptMonitorDto(monitor)})
	}
}

func handleEvaluateMonitor(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		dryRun, err := strconv.ParseBool(c.DefaultQuery("dry_run", "false"))
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: "invalid dry_run parameter"})
			return
		}

		monitorsUsecase := uc.NewMonitorsUsecase()
		monitor, err := monitorsUsecase.GetMonitor(c.Param("monitor_name"))
		if presentError(c, err) {
			return
		}

		usecase := uc.NewMonitorEvaluationUsecase()
		decisions, err := usecase.EvaluateMonitor(c.Request.Context(), monitor, dryRun)
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"dry_run":   dryRun,
			"decisions": utils.Map(decisions, dto.AdaptEvaluationDecisionDto),
		})
	}
}
