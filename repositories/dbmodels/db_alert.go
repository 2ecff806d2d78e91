package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/utils"
)

type DBAlert struct {
	Id               string     `db:"id"`
	DedupKey         string     `db:"dedup_key"`
	MonitorName      string     `db:"monitor_name"`
	Metric           string     `db:"metric"`
	Axes             []byte     `db:"axes"`
	Status           string     `db:"status"`
	Severity         string     `db:"severity"`
	Value            float64    `db:"value"`
	Diagnostic       string     `db:"diagnostic"`
	Message          string     `db:"message"`
	FirstTriggeredAt time.Time  `db:"first_triggered_at"`
	LastEvaluatedAt  time.Time  `db:"last_evaluated_at"`
	ResolvedAt       *time.Time `db:"resolved_at"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

const TABLE_ALERTS = "alerts"

var SelectAlertColumns = utils.ColumnList[DBAlert]()

func AdaptAlert(db DBAlert) (models.Alert, error) {
	var axes map[string]any
	if len(db.Axes) > 0 {
		if err := json.Unmarshal(db.Axes, &axes); err != nil {
			return models.Alert{}, errors.Wrap(err, "failed to unmarshal alert axes")
		}
	}

	return models.Alert{
		Id:               db.Id,
		DedupKey:         db.DedupKey,
		MonitorName:      db.MonitorName,
		Metric:           db.Metric,
		Axes:             axes,
		Status:           models.AlertStatus(db.Status),
		Severity:         models.Severity(db.Severity),
		Value:            db.Value,
		Diagnostic:       db.Diagnostic,
		Message:          db.Message,
		FirstTriggeredAt: db.FirstTriggeredAt,
		LastEvaluatedAt:  db.LastEvaluatedAt,
		ResolvedAt:       db.ResolvedAt,
		CreatedAt:        db.CreatedAt,
		UpdatedAt:        db.UpdatedAt,
	}, nil
}
