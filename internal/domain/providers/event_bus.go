package providers

import (
	"context"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to routing
// lifecycle events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.RoutingEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.RoutingEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// Event channel constants
const (
	// EventChannelRequests carries request lifecycle events
	EventChannelRequests = "routing:requests"

	// EventChannelDoctorStatus carries doctor availability changes
	EventChannelDoctorStatus = "routing:doctor-status"

	// EventChannelDoctorPrefix is the prefix for per-doctor notification channels
	EventChannelDoctorPrefix = "routing:doctor:"
)

// GetDoctorChannel returns the notification channel for a specific doctor
func GetDoctorChannel(doctorID string) string {
	return EventChannelDoctorPrefix + doctorID
}
