package usecases

import (
	"github.com/cockroachdb/errors"

	"github.com/offkey/offkey/models"
)

type MonitorsUsecase struct {
	monitors       []models.Monitor
	monitorsByName map[string]models.Monitor
}

func (usecase MonitorsUsecase) ListMonitors() []models.Monitor {
	return usecase.monitors
}

func (usecase MonitorsUsecase) GetMonitor(name string) (models.Monitor, error) {
	monitor, ok := usecase.monitorsByName[name]
	if !ok {
		return models.Monitor{}, errors.Wrapf(models.ErrUnknownMonitor, "'%s'", name)
	}
	return monitor, nil
}
