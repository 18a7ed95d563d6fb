package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/airplanemode/internal/logging"
	"github.com/segmentio/kafka-go"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads one topic as part of a consumer group. The worker uses it on
// the notifications topic to turn ticket and lease events into tenant and
// passenger e-mails.
type Consumer struct {
	reader messageReader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume hands every message to handler and commits its offset once handler
// succeeded. A handler error stops consumption without committing, so the
// notification is redelivered to the group after a restart.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}
		if err := handler(ctx, msg); err != nil {
			logging.Error("failed to handle message", "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)
			return fmt.Errorf("handle %s@%d: %w", msg.Topic, msg.Offset, err)
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit %s@%d: %w", msg.Topic, msg.Offset, err)
		}
	}
}

// EventHandler adapts a typed handler to Consume. Undecodable messages are
// logged and skipped.
func EventHandler(handle func(context.Context, Event) error) func(context.Context, kafka.Message) error {
	return func(ctx context.Context, msg kafka.Message) error {
		var event Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logging.Warn("skipping undecodable event", "topic", msg.Topic, "offset", msg.Offset, "error", err)
			return nil
		}
		return handle(ctx, event)
	}
}
