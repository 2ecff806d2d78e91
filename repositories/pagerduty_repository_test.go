package repositories

import (
	"net/http"
	"testing"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"

	"github.com/offkey/offkey/models"
)

func testEvent() models.PagerDutyEvent {
	return models.PagerDutyEvent{
		DedupKey:    "dedup-1",
		EventAction: models.EventActionTrigger,
		Payload: &models.PagerDutyPayload{
			Summary:  "cpu usage: 0.91 >= 0.9",
			Source:   "us-east-1/i-0abc",
			Severity: "warning",
		},
	}
}

func TestPagerDutyRepository_EnqueueEvent(t *testing.T) {
	defer gock.Off()
	defer gock.CleanUnmatchedRequest()

	gock.New("https://events.pagerduty.com").
		Post("/v2/enqueue").
		JSON(map[string]any{
			"routing_key":  "routing-key",
			"dedup_key":    "dedup-1",
			"event_action": "trigger",
			"payload": map[string]any{
				"summary":  "cpu usage: 0.91 >= 0.9",
				"source":   "us-east-1/i-0abc",
				"severity": "warning",
			},
		}).
		Reply(http.StatusAccepted).
		JSON(map[string]any{"status": "success", "dedup_key": "dedup-1"})

	repo := NewPagerDutyAPIRepository("", "routing-key", http.DefaultClient)
	err := repo.EnqueueEvent(t.Context(), testEvent())
	assert.NoError(t, err)
	assert.True(t, gock.IsDone())
}

func TestPagerDutyRepository_EnqueueEvent_RetriesServerErrors(t *testing.T) {
	defer gock.Off()

	gock.New("https://events.pagerduty.com").
		Post("/v2/enqueue").
		Reply(http.StatusBadGateway)
	gock.New("https://events.pagerduty.com").
		Post("/v2/enqueue").
		Reply(http.StatusAccepted).
		JSON(map[string]any{"status": "success"})

	repo := NewPagerDutyAPIRepository("", "routing-key", http.DefaultClient)
	err := repo.EnqueueEvent(t.Context(), testEvent())
	assert.NoError(t, err)
	assert.True(t, gock.IsDone())
}

func TestPagerDutyRepository_EnqueueEvent_RejectionIsNotRetried(t *testing.T) {
	defer gock.Off()

	gock.New("https://events.pagerduty.com").
		Post("/v2/enqueue").
		Reply(http.StatusBadRequest).
		JSON(map[string]any{"status": "invalid event", "message": "Event object is invalid"})

	repo := NewPagerDutyAPIRepository("", "routing-key", http.DefaultClient)
	err := repo.EnqueueEvent(t.Context(), testEvent())
	assert.ErrorIs(t, err, models.ErrDeliveryRejected)
	assert.False(t, gock.HasUnmatchedRequest())
}
