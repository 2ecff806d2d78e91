package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/offkey/offkey/repositories"
)

type LivenessRepository struct {
	mock.Mock
}

func (r *LivenessRepository) Liveness(ctx context.Context, exec repositories.Executor) error {
	args := r.Called(ctx, exec)
	return args.Error(0)
}
