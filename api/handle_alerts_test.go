package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/offkey/offkey/mocks"
	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/repositories"
	"github.com/offkey/offkey/repositories/clock"
	"github.com/offkey/offkey/usecases"
)

func makeTestRouter(repos repositories.Repositories) *gin.Engine {
	if repos.Clock == nil {
		repos.Clock = clock.New()
	}
	gin.SetMode(gin.TestMode)
	router := gin.New()
	addRoutes(router, usecases.NewUsecases(repos))
	return router
}

func TestHandleListAlerts(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	alert := models.Alert{
		Id:               uuid.NewString(),
		DedupKey:         "dedup-1",
		MonitorName:      "cpu-5m",
		Metric:           "system.cpu.total.norm.pct",
		Status:           models.AlertStatusTriggered,
		Severity:         models.SeverityWarning,
		Value:            0.91,
		Diagnostic:       "0.91 >= 0.9",
		FirstTriggeredAt: now,
		LastEvaluatedAt:  now,
	}

	t.Run("nominal", func(t *testing.T) {
		alertRepository := new(mocks.AlertRepository)
		alertRepository.On("ListAlerts", mock.Anything, mock.Anything, models.AlertFilters{
			Status:      models.AlertStatusTriggered,
			MonitorName: "cpu-5m",
			Limit:       100,
		}).Return([]models.Alert{alert}, nil)

		router := makeTestRouter(repositories.Repositories{AlertRepository: alertRepository})
		request := httptest.NewRequest(http.MethodGet, "/alerts?status=triggered&monitor=cpu-5m", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusOK, response.Code)
		var body struct {
			Alerts []struct {
				Id       string `json:"id"`
				DedupKey string `json:"dedup_key"`
				Status   string `json:"status"`
			} `json:"alerts"`
		}
		assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))
		assert.Len(t, body.Alerts, 1)
		assert.Equal(t, alert.Id, body.Alerts[0].Id)
		assert.Equal(t, "triggered", body.Alerts[0].Status)
		alertRepository.AssertExpectations(t)
	})

	t.Run("invalid status", func(t *testing.T) {
		router := makeTestRouter(repositories.Repositories{AlertRepository: new(mocks.AlertRepository)})
		request := httptest.NewRequest(http.MethodGet, "/alerts?status=bogus", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})
}

func TestHandleGetAlert(t *testing.T) {
	alertId := uuid.NewString()

	t.Run("nominal", func(t *testing.T) {
		alertRepository := new(mocks.AlertRepository)
		alertRepository.On("GetAlertById", mock.Anything, mock.Anything, alertId).
			Return(models.Alert{Id: alertId, Status: models.AlertStatusResolved}, nil)

		router := makeTestRouter(repositories.Repositories{AlertRepository: alertRepository})
		request := httptest.NewRequest(http.MethodGet, "/alerts/"+alertId, nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusOK, response.Code)
		alertRepository.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		alertRepository := new(mocks.AlertRepository)
		alertRepository.On("GetAlertById", mock.Anything, mock.Anything, alertId).
			Return(models.Alert{}, models.NotFoundError)

		router := makeTestRouter(repositories.Repositories{AlertRepository: alertRepository})
		request := httptest.NewRequest(http.MethodGet, "/alerts/"+alertId, nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusNotFound, response.Code)
	})

	t.Run("not a uuid", func(t *testing.T) {
		router := makeTestRouter(repositories.Repositories{AlertRepository: new(mocks.AlertRepository)})
		request := httptest.NewRequest(http.MethodGet, "/alerts/not-a-uuid", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)
	})
}
