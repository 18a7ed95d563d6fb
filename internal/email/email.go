package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airplanemode/internal/kafka"
	"github.com/Domenick1991/airplanemode/internal/logging"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

// Send delivers the notification for event. Events without a recipient are dropped.
func (s *Sender) Send(ctx context.Context, event kafka.Event) error {
	if event.Email == "" {
		logging.Debug("notification without recipient dropped", "type", event.Type, "name", event.Name)
		return nil
	}
	logging.Info("email sent",
		"to", event.Email,
		"subject", Subject(event),
		"type", event.Type,
		"name", event.Name,
	)
	return nil
}

func Subject(event kafka.Event) string {
	switch event.Type {
	case kafka.EventRentReminder:
		return fmt.Sprintf("Rent reminder for lease %s", event.Name)
	case kafka.EventPeriodInvoiced:
		return fmt.Sprintf("New invoice for lease %s", event.Name)
	case kafka.EventPaymentReceived:
		return fmt.Sprintf("Payment received for lease %s", event.Name)
	case kafka.EventTicketBooked:
		return fmt.Sprintf("Your ticket %s is booked", event.Name)
	default:
		return fmt.Sprintf("%s %s: %s", event.Doctype, event.Name, event.Type)
	}
}
