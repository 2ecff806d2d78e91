package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/repositories"
)

type AlertRepository struct {
	mock.Mock
}

func (r *AlertRepository) GetAlertById(ctx context.Context, exec repositories.Executor, id string) (models.Alert, error) {
	args := r.Called(ctx, exec, id)
	return args.Get(0).(models.Alert), args.Error(1)
}

func (r *AlertRepository) GetAlertByDedupKey(ctx context.Context, exec repositories.Executor, dedupKey string) (*models.Alert, error) {
	args := r.Called(ctx, exec, dedupKey)
	alert, _ := args.Get(0).(*models.Alert)
	return alert, args.Error(1)
}

func (r *AlertRepository) UpsertTriggeredAlert(ctx context.Context, exec repositories.Executor,
	input models.AlertUpsert, newAlertId string, at time.Time,
) (models.Alert, error) {
	args := r.Called(ctx, exec, input, newAlertId, at)
	return args.Get(0).(models.Alert), args.Error(1)
}

func (r *AlertRepository) ResolveAlert(ctx context.Context, exec repositories.Executor,
	dedupKey string, at time.Time,
) (*models.Alert, error) {
	args := r.Called(ctx, exec, dedupKey, at)
	alert, _ := args.Get(0).(*models.Alert)
	return alert, args.Error(1)
}

func (r *AlertRepository) ListAlerts(ctx context.Context, exec repositories.Executor,
	filters models.AlertFilters,
) ([]models.Alert, error) {
	args := r.Called(ctx, exec, filters)
	return args.Get(0).([]models.Alert), args.Error(1)
}

func (r *AlertRepository) CountAlertsByStatus(ctx context.Context, exec repositories.Executor,
	status models.AlertStatus,
) (int, error) {
	args := r.Called(ctx, exec, status)
	return args.Int(0), args.Error(1)
}

func (r *AlertRepository) PurgeResolvedAlerts(ctx context.Context, exec repositories.Executor,
	olderThan time.Time,
) (int64, error) {
	args := r.Called(ctx, exec, olderThan)
	return args.Get(0).(int64), args.Error(1)
}
