package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/offkey/offkey/models"
	"github.com/offkey/offkey/repositories"
)

func TestMonitorsUsecase(t *testing.T) {
	usecases := NewUsecases(repositories.Repositories{})
	usecase := usecases.NewMonitorsUsecase()

	monitors := usecase.ListMonitors()
	assert.NotEmpty(t, monitors)

	monitor, err := usecase.GetMonitor("cpu-5m")
	assert.NoError(t, err)
	assert.Equal(t, "cpu-5m", monitor.Name)

	_, err = usecase.GetMonitor("does-not-exist")
	assert.ErrorIs(t, err, models.ErrUnknownMonitor)
	assert.ErrorIs(t, err, models.NotFoundError)
}
