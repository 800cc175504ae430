package chat

import (
	"context"
	"sync"

	"apna_room_server/pkg/constants"
	"apna_room_server/pkg/errorx"
)

// ChannelBroker is the in-process broker. Publish and Consume share one
// buffered channel; there is no serialization overhead.
type ChannelBroker struct {
	stream    chan Envelope
	closeOnce sync.Once
	done      chan struct{}
}

// NewChannelBroker creates the default single-process broker.
func NewChannelBroker() *ChannelBroker {
	return &ChannelBroker{
		stream: make(chan Envelope, constants.CHANNEL_SIZE),
		done:   make(chan struct{}),
	}
}

func (b *ChannelBroker) Publish(ctx context.Context, env Envelope) error {
	select {
	case <-b.done:
		return errorx.New(errorx.CodeServerBusy, "broker closed")
	case <-ctx.Done():
		return errorx.Wrap(ctx.Err(), errorx.CodeServerBusy, "publish cancelled")
	case b.stream <- env:
		return nil
	default:
		return errorx.New(errorx.CodeServerBusy, "event stream full")
	}
}

func (b *ChannelBroker) Consume() <-chan Envelope {
	return b.stream
}

func (b *ChannelBroker) Close() error {
	b.closeOnce.Do(func() {
		close(b.done)
		close(b.stream)
	})
	return nil
}

var _ Broker = (*ChannelBroker)(nil)
