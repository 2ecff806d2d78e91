package dto

import (
	"time"

	"github.com/offkey/offkey/models"
)

type Alert struct {
	Id               string         `json:"id"`
	DedupKey         string         `json:"dedup_key"`
	MonitorName      string         `json:"monitor_name"`
	Metric           string         `json:"metric"`
	Axes             map[string]any `json:"axes,omitempty"`
	Status           string         `json:"status"`
	Severity         string         `json:"severity"`
	Value            float64        `json:"value"`
	Diagnostic       string         `json:"diagnostic"`
	Message          string         `json:"message,omitempty"`
	FirstTriggeredAt time.Time      `json:"first_triggered_at"`
	LastEvaluatedAt  time.Time      `json:"last_evaluated_at"`
	ResolvedAt       *time.Time     `json:"resolved_at,omitempty"`
}

func AdaptAlertDto(alert models.Alert) Alert {
	return Alert{
		Id:               alert.Id,
		DedupKey:         alert.DedupKey,
		MonitorName:      alert.MonitorName,
		Metric:           alert.Metric,
		Axes:             alert.Axes,
		Status:           string(alert.Status),
		Severity:         string(alert.Severity),
		Value:            alert.Value,
		Diagnostic:       alert.Diagnostic,
		Message:          alert.Message,
		FirstTriggeredAt: alert.FirstTriggeredAt,
		LastEvaluatedAt:  alert.LastEvaluatedAt,
		ResolvedAt:       alert.ResolvedAt,
	}
}
