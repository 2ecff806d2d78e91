package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/repositories/dbmodels"
)

type DeliveryRepository interface {
	EnqueueDelivery(ctx context.Context, exec Executor, create models.AlertDeliveryCreate,
		newDeliveryId string) (models.AlertDelivery, error)
	ListPendingDeliveries(ctx context.Context, exec Executor, maxAttempts, limit int) ([]models.AlertDelivery, error)
	MarkDeliverySent(ctx context.Context, exec Executor, id string, at time.Time) error
	MarkDeliveryFailed(ctx context.Context, exec Executor, id string, deliveryError string, final bool) error
	PurgeSentDeliveries(ctx context.Context, exec Executor, olderThan time.Time) (int64, error)
}

type DeliveryRepositoryPostgresql struct{}

func (repo *DeliveryRepositoryPostgresql) EnqueueDelivery(
	ctx context.Context,
	exec Executor,
	create models.AlertDeliveryCreate,
	newDeliveryId string,
) (models.AlertDelivery, error) {
	var payload []byte
	if create.Payload != nil {
		var err error
		payload, err = json.Marshal(create.Payload)
		if err != nil {
			return models.AlertDelivery{}, errors.Wrap(err, "failed to marshal delivery payload")
		}
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_ALERT_DELIVERIES).
		Columns(
			"id",
			"alert_id",
			"dedup_key",
			"event_action",
			"payload",
			"status",
		).
		Values(
			newDeliveryId,
			create.AlertId,
			create.DedupKey,
			create.EventAction,
			payload,
			models.DeliveryStatusPending,
		).
		Suffix("RETURNING " + columnsAsSql(dbmodels.SelectAlertDeliveryColumns))

	return SqlToModel(ctx, exec, query, dbmodels.AdaptAlertDelivery)
}

// ListPendingDeliveries claims up to limit retryable deliveries. Rows are
// locked until the surrounding transaction ends, so concurrent senders skip
// them instead of double-sending.
func (repo *DeliveryRepositoryPostgresql) ListPendingDeliveries(
	ctx context.Context,
	exec Executor,
	maxAttempts, limit int,
) ([]models.AlertDelivery, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAlertDeliveryColumns...).
		From(dbmodels.TABLE_ALERT_DELIVERIES).
		Where(squirrel.Eq{"status": models.DeliveryStatusPending}).
		Where(squirrel.Lt{"attempts": maxAttempts}).
		OrderBy("created_at").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptAlertDelivery)
}

func (repo *DeliveryRepositoryPostgresql) MarkDeliverySent(
	ctx context.Context,
	exec Executor,
	id string,
	at time.Time,
) error {
	return ExecBuilder(ctx, exec, NewQueryBuilder().
		Update(dbmodels.TABLE_ALERT_DELIVERIES).
		Set("status", models.DeliveryStatusSent).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("last_error", nil).
		Set("sent_at", at).
		Where(squirrel.Eq{"id": id}))
}

// MarkDeliveryFailed records a failed attempt. The delivery stays pending and
// will be retried, unless final is set.
func (repo *DeliveryRepositoryPostgresql) MarkDeliveryFailed(
	ctx context.Context,
	exec Executor,
	id string,
	deliveryError string,
	final bool,
) error {
	status := models.DeliveryStatusPending
	if final {
		status = models.DeliveryStatusFailed
	}
	return ExecBuilder(ctx, exec, NewQueryBuilder().
		Update(dbmodels.TABLE_ALERT_DELIVERIES).
		Set("status", status).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("last_error", deliveryError).
		Where(squirrel.Eq{"id": id}))
}

func (repo *DeliveryRepositoryPostgresql) PurgeSentDeliveries(
	ctx context.Context,
	exec Executor,
	olderThan time.Time,
) (int64, error) {
	sql, args, err := NewQueryBuilder().
		Delete(dbmodels.TABLE_ALERT_DELIVERIES).
		Where(squirrel.Eq{"status": models.DeliveryStatusSent}).
		Where(squirrel.Lt{"sent_at": olderThan}).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "failed to build query")
	}

	tag, err := exec.Exec(ctx, sql, args...)
	if err != nil {
		return 0, translatePgError(err)
	}
	return tag.RowsAffected(), nil
}
