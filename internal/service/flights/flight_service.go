package flights

import (
	"context"
	"strings"
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/kafka"
	"github.com/Domenick1991/airplanemode/internal/logging"
	"github.com/Domenick1991/airplanemode/internal/metrics"
	"github.com/Domenick1991/airplanemode/internal/repository"
	"github.com/go-playground/validator/v10"
)

type FlightUseCase interface {
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	Get(ctx context.Context, name string) (*domain.Flight, error)
	UpdateGate(ctx context.Context, name, gate string) (*domain.Flight, error)
	Submit(ctx context.Context, name string) (*domain.Flight, error)
	Cancel(ctx context.Context, name string) (*domain.Flight, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateFlightInput struct {
	Airplane           string    `json:"airplane" validate:"required"`
	SourceAirport      string    `json:"source_airport" validate:"required"`
	DestinationAirport string    `json:"destination_airport" validate:"required,nefield=SourceAirport"`
	DateOfDeparture    time.Time `json:"date_of_departure" validate:"required"`
	TimeOfDeparture    string    `json:"time_of_departure" validate:"required"`
	DurationSeconds    int64     `json:"duration_seconds" validate:"gt=0"`
	GateNumber         string    `json:"gate_number" validate:"required"`
	PriceCents         int64     `json:"price_cents" validate:"gte=0"`
	Crew               []int64   `json:"crew"`
	Published          bool      `json:"published"`
}

type FlightService struct {
	repo     repository.FlightRepository
	fleet    repository.FleetRepository
	cache    FlightCache
	producer Producer
	topic    string
	metrics  *metrics.MetricsRegistry
	validate *validator.Validate
}

type FlightServiceOption func(*FlightService)

// WithEvents publishes gate changes and status transitions on topic.
func WithEvents(producer Producer, topic string) FlightServiceOption {
	return func(s *FlightService) {
		s.producer = producer
		s.topic = topic
	}
}

func WithMetrics(m *metrics.MetricsRegistry) FlightServiceOption {
	return func(s *FlightService) {
		s.metrics = m
	}
}

func NewFlightService(repo repository.FlightRepository, fleet repository.FleetRepository, cache FlightCache, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{repo: repo, fleet: fleet, cache: cache, validate: validator.New()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperr.New(apperr.CodeValidation, "invalid flight", err)
	}
	if _, err := s.fleet.GetAirplane(ctx, input.Airplane); err != nil {
		return nil, err
	}
	source, err := s.fleet.GetAirport(ctx, input.SourceAirport)
	if err != nil {
		return nil, err
	}
	destination, err := s.fleet.GetAirport(ctx, input.DestinationAirport)
	if err != nil {
		return nil, err
	}
	for _, id := range input.Crew {
		if _, err := s.fleet.GetCrewMember(ctx, id); err != nil {
			return nil, err
		}
	}

	flight := &domain.Flight{
		Airplane:               input.Airplane,
		SourceAirport:          source.Name,
		SourceAirportCode:      source.Code,
		DestinationAirport:     destination.Name,
		DestinationAirportCode: destination.Code,
		DateOfDeparture:        domain.DateOf(input.DateOfDeparture),
		TimeOfDeparture:        input.TimeOfDeparture,
		DurationSeconds:        input.DurationSeconds,
		GateNumber:             input.GateNumber,
		PriceCents:             input.PriceCents,
		Crew:                   input.Crew,
		Published:              input.Published,
	}
	if err := flight.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			s.observeCache(true)
			return cached, nil
		}
		s.observeCache(false)
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			logging.Warn("failed to cache flights", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) Get(ctx context.Context, name string) (*domain.Flight, error) {
	return s.repo.Get(ctx, name)
}

// UpdateGate changes the gate and cascades it to the tickets of the flight.
func (s *FlightService) UpdateGate(ctx context.Context, name, gate string) (*domain.Flight, error) {
	flight, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	changed, err := flight.ChangeGate(gate)
	if err != nil {
		return nil, err
	}
	if !changed {
		return flight, nil
	}

	tickets, err := s.repo.UpdateGate(ctx, name, flight.GateNumber)
	if err != nil {
		return nil, err
	}
	logging.Info("flight gate changed", "flight", name, "gate", flight.GateNumber, "tickets_updated", tickets)

	s.invalidate(ctx)
	s.publish(ctx, kafka.EventGateChanged, flight)
	return flight, nil
}

func (s *FlightService) Submit(ctx context.Context, name string) (*domain.Flight, error) {
	return s.transition(ctx, name, (*domain.Flight).Submit)
}

func (s *FlightService) Cancel(ctx context.Context, name string) (*domain.Flight, error) {
	return s.transition(ctx, name, (*domain.Flight).Cancel)
}

func (s *FlightService) transition(ctx context.Context, name string, apply func(*domain.Flight) error) (*domain.Flight, error) {
	flight, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := apply(flight); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.publish(ctx, "flight_"+strings.ToLower(string(flight.Status)), flight)
	return flight, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		logging.Warn("failed to invalidate flights cache", "error", err)
	}
}

func (s *FlightService) observeCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues("flights").Inc()
	} else {
		s.metrics.CacheMissesTotal.WithLabelValues("flights").Inc()
	}
}

func (s *FlightService) publish(ctx context.Context, eventType string, flight *domain.Flight) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.Event{
		Type:       eventType,
		Doctype:    "Airplane Flight",
		Name:       flight.Name,
		Status:     string(flight.Status),
		OccurredAt: time.Now().UTC(),
		Details:    map[string]string{"gate_number": flight.GateNumber},
	}
	if err := s.producer.Publish(ctx, s.topic, flight.Name, event); err != nil {
		logging.Warn("failed to publish flight event", "type", eventType, "flight", flight.Name, "error", err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
