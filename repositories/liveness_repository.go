package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
)

type LivenessRepository interface {
	Liveness(ctx context.Context, exec Executor) error
}

type LivenessRepositoryPostgresql struct{}

func (repo *LivenessRepositoryPostgresql) Liveness(ctx context.Context, exec Executor) error {
	var one int
	if err := exec.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return errors.Wrap(err, "database liveness check failed")
	}
	return nil
}
