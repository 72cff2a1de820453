package event

import (
	"github.com/newsroom/backend/internal/domain/content"
	"github.com/newsroom/backend/internal/domain/identity"
	"github.com/newsroom/backend/internal/domain/taxonomy"
)

// RegisterAllEvents registers all domain event types with the serializer.
// Required so the OutboxProcessor can deserialize events from the outbox table.
func RegisterAllEvents(serializer *EventSerializer) {
	// Identity domain events
	serializer.Register(identity.EventTypeUserRegistered, &identity.UserRegisteredEvent{})
	serializer.Register(identity.EventTypeUserRoleChanged, &identity.UserRoleChangedEvent{})

	// Taxonomy domain events
	serializer.Register(taxonomy.EventTypeCategoryCreated, &taxonomy.CategoryCreatedEvent{})

	// Content domain events
	serializer.Register(content.EventTypePostCreated, &content.PostCreatedEvent{})
	serializer.Register(content.EventTypePostPublished, &content.PostPublishedEvent{})
	serializer.Register(content.EventTypePostRejected, &content.PostRejectedEvent{})
}
