package mocks

import (
	"context"

	"github.com/offkey/offkey/repositories"
)

// ExecutorGetter stands in for the database access layer: it hands out a nil
// executor and runs transaction callbacks directly.
type ExecutorGetter struct{}

func (g ExecutorGetter) GetExecutor() repositories.Executor {
	return nil
}

func (g ExecutorGetter) Transaction(ctx context.Context, fn func(tx repositories.Executor) error) error {
	return fn(nil)
}
