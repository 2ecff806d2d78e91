package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/offkey/offkey/dto"
	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/usecases"
	"github.com/offkey/offkey/utils"
)

type listAlertsQuery struct {
	Status  string `form:"status" binding:"omitempty,oneof=triggered resolved"`
	Monitor string `form:"monitor"`
	Limit   int    `form:"limit,default=100" binding:"omitempty,min=1,max=1000"`
	Offset  int    `form:"offset" binding:"omitempty,min=0"`
}

func handleListAlerts(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var query listAlertsQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error()})
			return
		}

		usecase := uc.NewAlertsUsecase()
		alerts, err := usecase.ListAlerts(c.Request.Context(), models.AlertFilters{
			Status:      models.AlertStatus(query.Status),
			MonitorName: query.Monitor,
			Limit:       query.Limit,
			Offset:      query.Offset,
		})
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"alerts": utils.Map(alerts, dto.AdaptAlertDto),
		})
	}
}

type alertUriInput struct {
	AlertId string `uri:"alert_id" binding:"required,uuid"`
}

func handleGetAlert(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		var input alertUriInput
		if err := c.ShouldBindUri(&input); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := uc.NewAlertsUsecase()
		alert, err := usecase.GetAlert(c.Request.Context(), input.AlertId)
		if presentError(c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"alert": dto.AdaptAlertDto(alert)})
	}
}
