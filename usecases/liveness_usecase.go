package usecases

import (
	"context"

	"github.com/offkey/offkey/repositories"
)

type LivenessUsecase struct {
	executorGetter     executorGetter
	livenessRepository repositories.LivenessRepository
}

func (usecase LivenessUsecase) Liveness(ctx context.Context) error {
	return usecase.livenessRepository.Liveness(ctx, usecase.executorGetter.GetExecutor())
}
