package tickets

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/kafka"
	"github.com/Domenick1991/airplanemode/internal/logging"
	"github.com/Domenick1991/airplanemode/internal/metrics"
	"github.com/Domenick1991/airplanemode/internal/repository"
	"github.com/go-playground/validator/v10"
)

type TicketUseCase interface {
	Book(ctx context.Context, input BookTicketInput) (*domain.Ticket, error)
	Get(ctx context.Context, name string) (*domain.Ticket, error)
	Update(ctx context.Context, name string, input UpdateTicketInput) (*domain.Ticket, error)
	SetStatus(ctx context.Context, name string, status domain.TicketStatus) (*domain.Ticket, error)
	AssignSeat(ctx context.Context, name, seat string) (*domain.Ticket, error)
	Submit(ctx context.Context, name string) (*domain.Ticket, error)
	Cancel(ctx context.Context, name string) (*domain.Ticket, error)
}

type SeatCache interface {
	AcquireSeatLock(ctx context.Context, flight, seat string, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flight, seat string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookTicketInput struct {
	Passenger string         `json:"passenger" validate:"required"`
	Flight    string         `json:"flight" validate:"required"`
	AddOns    []domain.AddOn `json:"add_ons" validate:"dive"`
	Email     string         `json:"email" validate:"omitempty,email"`
}

type UpdateTicketInput struct {
	AddOns []domain.AddOn `json:"add_ons" validate:"dive"`
}

type TicketService struct {
	tickets            repository.TicketRepository
	flights            repository.FlightRepository
	fleet              repository.FleetRepository
	cache              SeatCache
	producer           Producer
	ticketTopic        string
	notificationsTopic string
	seatLockTTL        time.Duration
	seatAttempts       int
	nextSeat           func() string
	metrics            *metrics.MetricsRegistry
	validate           *validator.Validate
}

type TicketServiceOption func(*TicketService)

func WithNotificationsTopic(topic string) TicketServiceOption {
	return func(s *TicketService) {
		s.notificationsTopic = topic
	}
}

func WithMetrics(m *metrics.MetricsRegistry) TicketServiceOption {
	return func(s *TicketService) {
		s.metrics = m
	}
}

// WithSeatAttempts bounds how many random seats Book tries.
func WithSeatAttempts(n int) TicketServiceOption {
	return func(s *TicketService) {
		if n > 0 {
			s.seatAttempts = n
		}
	}
}

func NewTicketService(
	tickets repository.TicketRepository,
	flights repository.FlightRepository,
	fleet repository.FleetRepository,
	cache SeatCache,
	producer Producer,
	ticketTopic string,
	seatLockTTL time.Duration,
	opts ...TicketServiceOption,
) *TicketService {
	service := &TicketService{
		tickets:      tickets,
		flights:      flights,
		fleet:        fleet,
		cache:        cache,
		producer:     producer,
		ticketTopic:  ticketTopic,
		seatLockTTL:  seatLockTTL,
		seatAttempts: 10,
		nextSeat:     randomSeat,
		validate:     validator.New(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func randomSeat() string {
	return domain.RandomSeat(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// Book creates a ticket on a random free seat of the flight.
func (s *TicketService) Book(ctx context.Context, input BookTicketInput) (*domain.Ticket, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperr.New(apperr.CodeValidation, "invalid ticket", err)
	}
	if _, err := s.fleet.GetPassenger(ctx, input.Passenger); err != nil {
		return nil, err
	}
	flight, err := s.flights.Get(ctx, input.Flight)
	if err != nil {
		return nil, err
	}
	if flight.DocStatus == domain.DocStatusCancelled {
		return nil, apperr.InvalidState("flight %s is cancelled", flight.Name)
	}
	airplane, err := s.fleet.GetAirplane(ctx, flight.Airplane)
	if err != nil {
		return nil, err
	}
	count, err := s.tickets.CountByFlight(ctx, flight.Name)
	if err != nil {
		return nil, err
	}
	if domain.Overcapacity(count, airplane.Capacity) {
		return nil, repository.ErrFlightFull
	}
	if err := s.checkAddOns(ctx, input.AddOns); err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{Passenger: input.Passenger, AddOns: input.AddOns, Status: domain.TicketStatusBooked}
	ticket.ApplyFlight(flight)
	if err := ticket.Validate(); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.seatAttempts; attempt++ {
		seat := s.nextSeat()
		err := s.withSeatLock(ctx, flight.Name, seat, func() error {
			ticket.Seat = seat
			return s.tickets.Create(ctx, ticket, airplane.Capacity)
		})
		if errors.Is(err, repository.ErrSeatTaken) {
			logging.Debug("seat taken, retrying", "flight", flight.Name, "seat", seat, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, err
		}

		if s.metrics != nil {
			s.metrics.TicketsBookedTotal.Inc()
		}
		s.publish(ctx, kafka.EventTicketBooked, ticket, input.Email)
		return ticket, nil
	}
	return nil, apperr.Conflict("no free seat found on flight %s after %d attempts", flight.Name, s.seatAttempts)
}

// Get loads the ticket and checks it still shows the flight's gate.
func (s *TicketService) Get(ctx context.Context, name string) (*domain.Ticket, error) {
	ticket, err := s.tickets.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	flight, err := s.flights.Get(ctx, ticket.Flight)
	if err != nil {
		return nil, err
	}
	if err := ticket.ValidateGate(flight.GateNumber); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) Update(ctx context.Context, name string, input UpdateTicketInput) (*domain.Ticket, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperr.New(apperr.CodeValidation, "invalid ticket", err)
	}
	ticket, err := s.tickets.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := ticket.DocStatus.CheckEditable("Airplane Ticket", name); err != nil {
		return nil, err
	}
	if err := s.checkAddOns(ctx, input.AddOns); err != nil {
		return nil, err
	}
	ticket.AddOns = input.AddOns
	if err := ticket.Validate(); err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) SetStatus(ctx context.Context, name string, status domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := s.tickets.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := ticket.SetStatus(status); err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// AssignSeat moves a draft ticket to a specific free seat.
func (s *TicketService) AssignSeat(ctx context.Context, name, seat string) (*domain.Ticket, error) {
	if !domain.ValidSeat(seat) {
		return nil, apperr.Validation("seat %q must be a row 1-100 followed by a column A-E", seat)
	}
	ticket, err := s.tickets.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := ticket.DocStatus.CheckEditable("Airplane Ticket", name); err != nil {
		return nil, err
	}
	if ticket.Seat == seat {
		return ticket, nil
	}

	err = s.withSeatLock(ctx, ticket.Flight, seat, func() error {
		taken, err := s.tickets.SeatTaken(ctx, ticket.Flight, seat)
		if err != nil {
			return err
		}
		if taken {
			return repository.ErrSeatTaken
		}
		ticket.Seat = seat
		return s.tickets.Update(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) Submit(ctx context.Context, name string) (*domain.Ticket, error) {
	ticket, err := s.tickets.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := ticket.Submit(); err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventTicketSubmitted, ticket, "")
	return ticket, nil
}

func (s *TicketService) Cancel(ctx context.Context, name string) (*domain.Ticket, error) {
	ticket, err := s.tickets.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := ticket.Cancel(); err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) checkAddOns(ctx context.Context, addOns []domain.AddOn) error {
	for _, a := range addOns {
		if _, err := s.fleet.GetAddOnType(ctx, a.Item); err != nil {
			return err
		}
	}
	return nil
}

// withSeatLock runs fn while holding the seat lock. A seat locked by another
// request is reported as taken.
func (s *TicketService) withSeatLock(ctx context.Context, flight, seat string, fn func() error) error {
	if s.cache == nil {
		return fn()
	}
	ok, err := s.cache.AcquireSeatLock(ctx, flight, seat, s.seatLockTTL)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrSeatTaken
	}
	defer func() {
		if err := s.cache.ReleaseSeatLock(ctx, flight, seat); err != nil {
			logging.Warn("failed to release seat lock", "flight", flight, "seat", seat, "error", err)
		}
	}()
	return fn()
}

func (s *TicketService) publish(ctx context.Context, eventType string, ticket *domain.Ticket, email string) {
	if s.producer == nil || s.ticketTopic == "" {
		return
	}
	event := kafka.Event{
		Type:        eventType,
		Doctype:     "Airplane Ticket",
		Name:        ticket.Name,
		Email:       email,
		Status:      string(ticket.Status),
		AmountCents: ticket.TotalAmountCents,
		OccurredAt:  time.Now().UTC(),
		Details:     map[string]string{"flight": ticket.Flight, "seat": ticket.Seat},
	}
	if err := s.producer.Publish(ctx, s.ticketTopic, ticket.Name, event); err != nil {
		logging.Warn("failed to publish ticket event", "type", eventType, "ticket", ticket.Name, "error", err)
		return
	}
	if s.notificationsTopic != "" && email != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, ticket.Name, event); err != nil {
			logging.Warn("failed to publish ticket notification", "ticket", ticket.Name, "error", err)
		}
	}
}

var _ TicketUseCase = (*TicketService)(nil)
