// Package repomanager wires the PostgreSQL repository implementations
// together and owns schema migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/eventkeeper/internal/worker/migrations"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/repositories/events"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/repositories/reminders"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories bound to a
// shared connection pool and exposes a schema migration hook.
type PostgresRepositoryManager struct {
	db        *sql.DB
	events    events.Repository
	reminders reminders.Repository
	users     users.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Events() events.Repository {
	return m.events
}

func (m *PostgresRepositoryManager) Reminders() reminders.Repository {
	return m.reminders
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the managed connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager opens the database and constructs the
// repositories. Migrations are run immediately so the schema is ready before
// the first pass.
func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:        db,
		events:    events.NewPostgresRepository(db),
		reminders: reminders.NewPostgresRepository(db),
		users:     users.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
