package service

import (
	"context"
	"log/slog"

	"github.com/firmdesk/firmdesk/pkg/slogx"
)

// Event kinds emitted to the notification collaborator.
const (
	EventInvitationIssued = "invitation.issued"
	EventDocumentUploaded = "document.uploaded"
	EventMessagePosted    = "thread.message_posted"
	EventThreadResolved   = "thread.resolved"
)

// Event carries the entity and actor a notification is about. Delivery
// (email, webhooks) is an external concern.
type Event struct {
	Kind     string
	OrgID    string
	EntityID string
	ActorID  string

	// Email set for invitation events: the invited address.
	Email string
}

// Notifier is the fire-and-forget notification boundary. Implementations
// must not block the caller and get no acknowledgment contract; a lost
// notification never fails the operation that emitted it.
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

// LogNotifier records events to the log. It is the default sink; production
// deployments swap in a queue-backed implementation.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, e Event) {
	slogx.FromContext(ctx).Info("notify",
		slog.String("kind", e.Kind),
		slog.String("org_id", e.OrgID),
		slog.String("entity_id", e.EntityID),
		slog.String("actor_id", e.ActorID),
	)
}

// NopNotifier discards events; used in tests.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Event) {}
