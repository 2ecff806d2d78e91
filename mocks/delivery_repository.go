package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/repositories"
)

type DeliveryRepository struct {
	mock.Mock
}

func (r *DeliveryRepository) EnqueueDelivery(ctx context.Context, exec repositories.Executor,
	create models.AlertDeliveryCreate, newDeliveryId string,
) (models.AlertDelivery, error) {
	args := r.Called(ctx, exec, create, newDeliveryId)
	return args.Get(0).(models.AlertDelivery), args.Error(1)
}

func (r *DeliveryRepository) ListPendingDeliveries(ctx context.Context, exec repositories.Executor,
	maxAttempts, limit int,
) ([]models.AlertDelivery, error) {
	args := r.Called(ctx, exec, maxAttempts, limit)
	return args.Get(0).([]models.AlertDelivery), args.Error(1)
}

func (r *DeliveryRepository) MarkDeliverySent(ctx context.Context, exec repositories.Executor,
	id string, at time.Time,
) error {
	args := r.Called(ctx, exec, id, at)
	return args.Error(0)
}

func (r *DeliveryRepository) MarkDeliveryFailed(ctx context.Context, exec repositories.Executor,
	id string, deliveryError string, final bool,
) error {
	args := r.Called(ctx, exec, id, deliveryError, final)
	return args.Error(0)
}

func (r *DeliveryRepository) PurgeSentDeliveries(ctx context.Context, exec repositories.Executor,
	olderThan time.Time,
) (int64, error) {
	args := r.Called(ctx, exec, olderThan)
	return args.Get(0).(int64), args.Error(1)
}
