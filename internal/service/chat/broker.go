package chat

import (
	"context"
	"encoding/json"
)

// Envelope wraps a raw client frame with the authenticated sender. The
// user id comes from the gateway handshake, never from the frame, so a
// consumer on another process can trust it.
type Envelope struct {
	UserId string          `json:"userId"`
	Event  json.RawMessage `json:"event"`
}

// Broker carries envelopes from read pumps to the hub loop. The channel
// implementation keeps everything in one process; the kafka one lets
// several gateway processes share a topic.
type Broker interface {
	// Publish hands an envelope to the broker.
	Publish(ctx context.Context, env Envelope) error
	// Consume returns the stream the hub drains. The channel closes
	// when the broker shuts down.
	Consume() <-chan Envelope
	// Close releases broker resources and closes the consume stream.
	Close() error
}
