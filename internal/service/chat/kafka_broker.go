package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"apna_room_server/internal/config"
	"apna_room_server/pkg/constants"
	"apna_room_server/pkg/errorx"
)

// KafkaBroker routes envelopes through a shared topic so multiple
// gateway processes see every client event. Keys are user ids, which
// keeps one user's events ordered within a partition.
type KafkaBroker struct {
	producer *kafka.Writer
	consumer *kafka.Reader
	stream   chan Envelope

	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewKafkaBroker builds writer and reader from config and starts the
// consume loop.
func NewKafkaBroker(conf *config.KafkaConfig) *KafkaBroker {
	b := &KafkaBroker{
		producer: &kafka.Writer{
			Addr:                   kafka.TCP(conf.HostPort),
			Topic:                  conf.ChatTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           conf.Timeout * time.Second,
			RequiredAcks:           kafka.RequireNone,
			AllowAutoTopicCreation: false,
		},
		consumer: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{conf.HostPort},
			Topic:          conf.ChatTopic,
			CommitInterval: conf.Timeout * time.Second,
			GroupID:        "chat",
			StartOffset:    kafka.LastOffset,
		}),
		stream: make(chan Envelope, constants.CHANNEL_SIZE),
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	go b.consumeLoop(ctx)
	return b
}

func (b *KafkaBroker) Publish(ctx context.Context, env Envelope) error {
	value, err := json.Marshal(env)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeInvalidParam, "encode envelope")
	}
	err = b.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(env.UserId),
		Value: value,
	})
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "kafka publish")
	}
	return nil
}

func (b *KafkaBroker) consumeLoop(ctx context.Context) {
	defer close(b.stream)
	for {
		msg, err := b.consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			zap.L().Error("kafka read failed", zap.Error(err))
			continue
		}
		var env Envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			zap.L().Warn("dropping malformed kafka envelope", zap.Error(err))
			continue
		}
		select {
		case <-ctx.Done():
			return
		case b.stream <- env:
		}
	}
}

func (b *KafkaBroker) Consume() <-chan Envelope {
	return b.stream
}

func (b *KafkaBroker) Close() error {
	var err error
	b.closeOnce.Do(func() {
		b.cancel()
		if cerr := b.producer.Close(); cerr != nil {
			err = cerr
		}
		if cerr := b.consumer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	})
	return err
}

var _ Broker = (*KafkaBroker)(nil)
