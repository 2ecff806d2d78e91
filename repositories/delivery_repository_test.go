package repositories

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/offkey/offkey/models"
)

var deliveryColumns = []string{
	"id", "alert_id", "dedup_key", "event_action", "payload", "status",
	"attempts", "last_error", "created_at", "sent_at",
}

func TestDeliveryRepository_EnqueueDelivery(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	create := models.AlertDeliveryCreate{
		AlertId:     "alert-1",
		DedupKey:    "dedup-1",
		EventAction: models.EventActionTrigger,
		Payload: &models.PagerDutyPayload{
			Summary:  "cpu usage: 0.91 >= 0.9",
			Source:   "us-east-1/i-0abc",
			Severity: "warning",
		},
	}
	payload, _ := json.Marshal(create.Payload)

	mock.ExpectQuery("INSERT INTO alert_deliveries").
		WithArgs("delivery-1", create.AlertId, create.DedupKey, create.EventAction,
			payload, models.DeliveryStatusPending).
		WillReturnRows(pgxmock.NewRows(deliveryColumns).
			AddRow("delivery-1", "alert-1", "dedup-1", "trigger", payload,
				"pending", 0, nil, at, nil))

	repo := &DeliveryRepositoryPostgresql{}
	delivery, err := repo.EnqueueDelivery(context.Background(), mock, create, "delivery-1")
	assert.NoError(t, err)
	assert.Equal(t, models.DeliveryStatusPending, delivery.Status)
	if assert.NotNil(t, delivery.Payload) {
		assert.Equal(t, "cpu usage: 0.91 >= 0.9", delivery.Payload.Summary)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepository_ListPendingDeliveries(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT .* FROM alert_deliveries WHERE status = .* AND attempts < .* ORDER BY created_at LIMIT 50 FOR UPDATE SKIP LOCKED").
		WithArgs(models.DeliveryStatusPending, 5).
		WillReturnRows(pgxmock.NewRows(deliveryColumns).
			AddRow("delivery-1", "alert-1", "dedup-1", "trigger", nil, "pending", 1, nil, at, nil).
			AddRow("delivery-2", "alert-2", "dedup-2", "resolve", nil, "pending", 0, nil, at, nil))

	repo := &DeliveryRepositoryPostgresql{}
	deliveries, err := repo.ListPendingDeliveries(context.Background(), mock, 5, 50)
	assert.NoError(t, err)
	assert.Len(t, deliveries, 2)
	assert.Nil(t, deliveries[0].Payload)
	assert.Equal(t, "resolve", deliveries[1].EventAction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepository_MarkDeliverySent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE alert_deliveries SET").
		WithArgs(models.DeliveryStatusSent, nil, at, "delivery-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := &DeliveryRepositoryPostgresql{}
	err = repo.MarkDeliverySent(context.Background(), mock, "delivery-1", at)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepository_MarkDeliveryFailed(t *testing.T) {
	t.Run("retryable stays pending", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectExec("UPDATE alert_deliveries SET").
			WithArgs(models.DeliveryStatusPending, "status 500", "delivery-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := &DeliveryRepositoryPostgresql{}
		err = repo.MarkDeliveryFailed(context.Background(), mock, "delivery-1", "status 500", false)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("final marks failed", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectExec("UPDATE alert_deliveries SET").
			WithArgs(models.DeliveryStatusFailed, "status 400", "delivery-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := &DeliveryRepositoryPostgresql{}
		err = repo.MarkDeliveryFailed(context.Background(), mock, "delivery-1", "status 400", true)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeliveryRepository_PurgeSentDeliveries(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	olderThan := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM alert_deliveries").
		WithArgs(models.DeliveryStatusSent, olderThan).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	repo := &DeliveryRepositoryPostgresql{}
	deleted, err := repo.PurgeSentDeliveries(context.Background(), mock, olderThan)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
