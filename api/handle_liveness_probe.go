package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/offkey/offkey/usecases"
)

func handleLivenessProbe(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		usecase := uc.NewLivenessUsecase()
		if presentError(c, usecase.Liveness(c.Request.Context())) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
}
