package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airplanemode/internal/logging"
	"github.com/segmentio/kafka-go"
)

// Event is the payload of every message on the lease, ticket and notification topics.
type Event struct {
	Type        string            `json:"type"`
	Doctype     string            `json:"doctype"`
	Name        string            `json:"name"`
	Email       string            `json:"email,omitempty"`
	Status      string            `json:"status,omitempty"`
	AmountCents int64             `json:"amount_cents,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
	Details     map[string]string `json:"details,omitempty"`
}

const (
	EventTicketBooked    = "ticket_booked"
	EventTicketSubmitted = "ticket_submitted"
	EventGateChanged     = "gate_changed"
	EventLeaseSubmitted  = "lease_submitted"
	EventLeaseCancelled  = "lease_cancelled"
	EventPeriodInvoiced  = "period_invoiced"
	EventPaymentReceived = "payment_received"
	EventLeaseOffboarded = "lease_offboarded"
	EventRentReminder    = "rent_reminder"
)

type Producer struct {
	brokers []string
	writer  *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{
		brokers: brokers,
		writer:  writer,
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	logging.Debug("published kafka message", "topic", topic, "key", key)
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection dials the first broker and reads its partitions.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("failed to read partitions: %w", err)
	}

	logging.Info("connected to kafka", "partitions", len(partitions))
	return nil
}
