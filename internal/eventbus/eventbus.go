package eventbus

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
)

// EventBus publishes messages for external collaborators (the feed service).
type EventBus interface {
	Publish(topic string, msg *message.Message) error
	Close() error
}

// NatsEventBus implements EventBus over core NATS.
type NatsEventBus struct {
	conn *nc.Conn
}

// New connects to NATS and returns an event bus.
func New(natsURL string) (*NatsEventBus, error) {
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
	}

	conn, err := nc.Connect(natsURL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NatsEventBus{conn: conn}, nil
}

// Publish sends a watermill message on the given subject. The message UUID
// and metadata travel as NATS headers so subscribers can correlate.
func (b *NatsEventBus) Publish(topic string, msg *message.Message) error {
	natsMsg := nc.NewMsg(topic)
	natsMsg.Data = msg.Payload
	natsMsg.Header.Set("message_id", msg.UUID)
	for k, v := range msg.Metadata {
		natsMsg.Header.Set(k, v)
	}

	if err := b.conn.PublishMsg(natsMsg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Close drains and closes the underlying connection.
func (b *NatsEventBus) Close() error {
	if b.conn == nil {
		return nil
	}
	return b.conn.Drain()
}
