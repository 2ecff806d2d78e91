package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/offkey/offkey/usecases"
)

func NewServer(router *gin.Engine, conf Configuration, uc usecases.Usecases) *http.Server {
	addRoutes(router, uc)

	timeout := conf.DefaultTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", conf.Port),
		WriteTimeout: timeout,
		ReadTimeout:  timeout,
		IdleTimeout:  timeout,
		Handler:      router,
	}
}
