package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/worker/models"
)

type Repository interface {
	SelectPending(ctx context.Context) ([]*models.Event, error)
	MarkSynced(ctx context.Context, id string, googleCalendarID string, syncedAt time.Time) error
}
