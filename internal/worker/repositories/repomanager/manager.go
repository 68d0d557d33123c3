package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/eventkeeper/internal/worker/repositories/events"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/repositories/reminders"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Events() events.Repository
	Reminders() reminders.Repository
	Users() users.Repository
}
