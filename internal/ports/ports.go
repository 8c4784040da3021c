package ports

import (
	"context"

	"github.com/mikey-austin/music_bridge/pkg/mb"
)

// Broker publishes commands and reads retained presence.
type Broker interface {
	ReplyTopic() string
	PublishCommand(ctx context.Context, nodeID string, cmd mb.CommandEnvelope) (mb.ReplyEnvelope, error)
	ListPresence(ctx context.Context) ([]mb.Presence, error)
	WatchEvents(ctx context.Context, nodeID string) (<-chan mb.Event, <-chan error)
}

// Clock returns the current unix time in seconds.
type Clock interface {
	NowUnix() int64
}

// IDGen returns unique correlation IDs.
type IDGen interface {
	NewID() string
}
