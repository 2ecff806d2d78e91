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

type AlertRepository interface {
	GetAlertById(ctx context.Context, exec Executor, id string) (models.Alert, error)
	GetAlertByDedupKey(ctx context.Context, exec Executor, dedupKey string) (*models.Alert, error)
	UpsertTriggeredAlert(ctx context.Context, exec Executor, input models.AlertUpsert,
		newAlertId string, at time.Time) (models.Alert, error)
	ResolveAlert(ctx context.Context, exec Executor, dedupKey string, at time.Time) (*models.Alert, error)
	ListAlerts(ctx context.Context, exec Executor, filters models.AlertFilters) ([]models.Alert, error)
	CountAlertsByStatus(ctx context.Context, exec Executor, status models.AlertStatus) (int, error)
	PurgeResolvedAlerts(ctx context.Context, exec Executor, olderThan time.Time) (int64, error)
}

type AlertRepositoryPostgresql struct{}

func (repo *AlertRepositoryPostgresql) GetAlertById(ctx context.Context, exec Executor, id string) (models.Alert, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectAlertColumns...).
			From(dbmodels.TABLE_ALERTS).
			Where(squirrel.Eq{"id": id}),
		dbmodels.AdaptAlert,
	)
}

func (repo *AlertRepositoryPostgresql) GetAlertByDedupKey(ctx context.Context, exec Executor, dedupKey string) (*models.Alert, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectAlertColumns...).
			From(dbmodels.TABLE_ALERTS).
			Where(squirrel.Eq{"dedup_key": dedupKey}),
		dbmodels.AdaptAlert,
	)
}

// UpsertTriggeredAlert creates the alert for the series or refreshes it if it
// already exists. A previously resolved alert starts a new incident: its
// first_triggered_at is reset.
func (repo *AlertRepositoryPostgresql) UpsertTriggeredAlert(
	ctx context.Context,
	exec Executor,
	input models.AlertUpsert,
	newAlertId string,
	at time.Time,
) (models.Alert, error) {
	axes, err := json.Marshal(input.Axes)
	if err != nil {
		return models.Alert{}, errors.Wrap(err, "failed to marshal alert axes")
	}

	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_ALERTS).
		Columns(
			"id",
			"dedup_key",
			"monitor_name",
			"metric",
			"axes",
			"status",
			"severity",
			"value",
			"diagnostic",
			"message",
			"first_triggered_at",
			"last_evaluated_at",
		).
		Values(
			newAlertId,
			input.DedupKey,
			input.MonitorName,
			input.Metric,
			axes,
			models.AlertStatusTriggered,
			input.Severity,
			input.Value,
			input.Diagnostic,
			input.Message,
			at,
			at,
		).
		Suffix(`ON CONFLICT (dedup_key) DO UPDATE SET
			status = EXCLUDED.status,
			severity = EXCLUDED.severity,
			value = EXCLUDED.value,
			diagnostic = EXCLUDED.diagnostic,
			message = EXCLUDED.message,
			first_triggered_at = CASE
				WHEN alerts.status = 'resolved' THEN EXCLUDED.first_triggered_at
				ELSE alerts.first_triggered_at
			END,
			last_evaluated_at = EXCLUDED.last_evaluated_at,
			resolved_at = NULL,
			updated_at = now()
		RETURNING ` + columnsAsSql(dbmodels.SelectAlertColumns))

	return SqlToModel(ctx, exec, query, dbmodels.AdaptAlert)
}

// ResolveAlert flips a triggered alert to resolved. It returns nil without
// error when the series has no triggered alert.
func (repo *AlertRepositoryPostgresql) ResolveAlert(
	ctx context.Context,
	exec Executor,
	dedupKey string,
	at time.Time,
) (*models.Alert, error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_ALERTS).
		Set("status", models.AlertStatusResolved).
		Set("resolved_at", at).
		Set("last_evaluated_at", at).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{
			"dedup_key": dedupKey,
			"status":    models.AlertStatusTriggered,
		}).
		Suffix("RETURNING " + columnsAsSql(dbmodels.SelectAlertColumns))

	return SqlToOptionalModel(ctx, exec, query, dbmodels.AdaptAlert)
}

func (repo *AlertRepositoryPostgresql) ListAlerts(
	ctx context.Context,
	exec Executor,
	filters models.AlertFilters,
) ([]models.Alert, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAlertColumns...).
		From(dbmodels.TABLE_ALERTS).
		OrderBy("last_evaluated_at DESC")

	if filters.Status != "" {
		query = query.Where(squirrel.Eq{"status": filters.Status})
	}
	if filters.MonitorName != "" {
		query = query.Where(squirrel.Eq{"monitor_name": filters.MonitorName})
	}
	if filters.Limit > 0 {
		query = query.Limit(uint64(filters.Limit))
	}
	if filters.Offset > 0 {
		query = query.Offset(uint64(filters.Offset))
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptAlert)
}

func (repo *AlertRepositoryPostgresql) CountAlertsByStatus(
	ctx context.Context,
	exec Executor,
	status models.AlertStatus,
) (int, error) {
	sql, args, err := NewQueryBuilder().
		Select("COUNT(*)").
		From(dbmodels.TABLE_ALERTS).
		Where(squirrel.Eq{"status": status}).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "failed to build query")
	}

	var count int
	if err := exec.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "error counting alerts")
	}
	return count, nil
}

func (repo *AlertRepositoryPostgresql) PurgeResolvedAlerts(
	ctx context.Context,
	exec Executor,
	olderThan time.Time,
) (int64, error) {
	sql, args, err := NewQueryBuilder().
		Delete(dbmodels.TABLE_ALERTS).
		Where(squirrel.Eq{"status": models.AlertStatusResolved}).
		Where(squirrel.Lt{"resolved_at": olderThan}).
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
