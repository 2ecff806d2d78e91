package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/offkey/offkey/models"
)

type PagerDutyRepository struct {
	mock.Mock
}

func (r *PagerDutyRepository) EnqueueEvent(ctx context.Context, event models.PagerDutyEvent) error {
	args := r.Called(ctx, event)
	return args.Error(0)
}
