package repositories

import (
	"context"
	"database/sql"
	"embed"

	"github.com/cockroachdb/errors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/offkey/offkey/utils"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

type Migrater struct {
	connectionString string
}

func NewMigrater(connectionString string) Migrater {
	return Migrater{connectionString: connectionString}
}

func (m Migrater) Run(ctx context.Context) error {
	logger := utils.LoggerFromContext(ctx)

	db, err := sql.Open("pgx", m.connectionString)
	if err != nil {
		return errors.Wrap(err, "unable to connect to database")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "unable to ping database")
	}

	logger.InfoContext(ctx, "starting migrations")
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Wrap(err, "unable to run migrations")
	}
	logger.InfoContext(ctx, "migrations done")
	return nil
}
