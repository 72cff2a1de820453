package persistence

import (
	"context"
	"fmt"

	"github.com/newsroom/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// saveAggregateEvents writes the aggregate's pending domain events to the
// outbox within the given transaction and clears them on success. A nil
// saver means the outbox is not wired and events are dropped silently.
func saveAggregateEvents(ctx context.Context, tx *gorm.DB, saver shared.OutboxEventSaver, agg shared.AggregateRoot) error {
	if saver == nil {
		return nil
	}
	events := agg.GetDomainEvents()
	if len(events) == 0 {
		return nil
	}
	if err := saver.SaveEvents(ctx, tx, events...); err != nil {
		return fmt.Errorf("failed to save events to outbox: %w", err)
	}
	agg.ClearDomainEvents()
	return nil
}
