package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/utils"
)

type DBAlertDelivery struct {
	Id          string     `db:"id"`
	AlertId     string     `db:"alert_id"`
	DedupKey    string     `db:"dedup_key"`
	EventAction string     `db:"event_action"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	Attempts    int        `db:"attempts"`
	LastError   *string    `db:"last_error"`
	CreatedAt   time.Time  `db:"created_at"`
	SentAt      *time.Time `db:"sent_at"`
}

const TABLE_ALERT_DELIVERIES = "alert_deliveries"

var SelectAlertDeliveryColumns = utils.ColumnList[DBAlertDelivery]()

func AdaptAlertDelivery(db DBAlertDelivery) (models.AlertDelivery, error) {
	var payload *models.PagerDutyPayload
	if len(db.Payload) > 0 {
		payload = &models.PagerDutyPayload{}
		if err := json.Unmarshal(db.Payload, payload); err != nil {
			return models.AlertDelivery{}, errors.Wrap(err, "failed to unmarshal delivery payload")
		}
	}

	return models.AlertDelivery{
		Id:          db.Id,
		AlertId:     db.AlertId,
		DedupKey:    db.DedupKey,
		EventAction: db.EventAction,
		Payload:     payload,
		Status:      models.DeliveryStatus(db.Status),
		Attempts:    db.Attempts,
		LastError:   db.LastError,
		CreatedAt:   db.CreatedAt,
		SentAt:      db.SentAt,
	}, nil
}
