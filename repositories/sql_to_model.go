package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/cockroachdb/errors"

	"github.com/offkey/offkey/models"
)

// SqlToListOfModels runs the query and adapts every returned row.
func SqlToListOfModels[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) ([]Model, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing query")
	}
	dbModels, err := pgx.CollectRows(rows, pgx.RowToStructByName[DBModel])
	if err != nil {
		return nil, errors.Wrap(err, "error collecting rows")
	}

	list := make([]Model, len(dbModels))
	for i, dbModel := range dbModels {
		list[i], err = adapter(dbModel)
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}

// SqlToModel runs the query and adapts exactly one row, returning
// models.NotFoundError when none matches.
func SqlToModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (Model, error) {
	var zero Model

	model, err := SqlToOptionalModel(ctx, exec, query, adapter)
	if err != nil {
		return zero, err
	}
	if model == nil {
		return zero, errors.WithStack(models.NotFoundError)
	}
	return *model, nil
}

// SqlToOptionalModel runs the query and adapts at most one row, returning nil
// when none matches.
func SqlToOptionalModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	query squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (*Model, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing query")
	}
	dbModel, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[DBModel])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error collecting row")
	}

	model, err := adapter(dbModel)
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// ExecBuilder builds and executes a statement that returns no rows.
func ExecBuilder(ctx context.Context, exec Executor, query squirrel.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if _, err := exec.Exec(ctx, sql, args...); err != nil {
		return translatePgError(err)
	}
	return nil
}
