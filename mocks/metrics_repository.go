package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/offkey/offkey/models"
)

type MetricsRepository struct {
	mock.Mock
}

func (r *MetricsRepository) QuerySeries(ctx context.Context, monitor models.Monitor,
	endTime time.Time,
) ([]models.SeriesPoint, error) {
	args := r.Called(ctx, monitor, endTime)
	points, _ := args.Get(0).([]models.SeriesPoint)
	return points, args.Error(1)
}
