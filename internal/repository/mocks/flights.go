package mocks

import (
	"context"

	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/repository"
	"github.com/stretchr/testify/mock"
)

type FlightRepository struct {
	mock.Mock
}

func (m *FlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	return m.Called(ctx, f).Error(0)
}

func (m *FlightRepository) Get(ctx context.Context, name string) (*domain.Flight, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *FlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *FlightRepository) Update(ctx context.Context, f *domain.Flight) error {
	return m.Called(ctx, f).Error(0)
}

func (m *FlightRepository) UpdateGate(ctx context.Context, name, gate string) (int64, error) {
	args := m.Called(ctx, name, gate)
	return args.Get(0).(int64), args.Error(1)
}

type TicketRepository struct {
	mock.Mock
}

func (m *TicketRepository) Create(ctx context.Context, t *domain.Ticket, capacity int) error {
	return m.Called(ctx, t, capacity).Error(0)
}

func (m *TicketRepository) Get(ctx context.Context, name string) (*domain.Ticket, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *TicketRepository) ListByFlight(ctx context.Context, flight string) ([]domain.Ticket, error) {
	args := m.Called(ctx, flight)
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *TicketRepository) CountByFlight(ctx context.Context, flight string) (int, error) {
	args := m.Called(ctx, flight)
	return args.Int(0), args.Error(1)
}

func (m *TicketRepository) SeatTaken(ctx context.Context, flight, seat string) (bool, error) {
	args := m.Called(ctx, flight, seat)
	return args.Bool(0), args.Error(1)
}

func (m *TicketRepository) Update(ctx context.Context, t *domain.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

var (
	_ repository.FlightRepository = (*FlightRepository)(nil)
	_ repository.TicketRepository = (*TicketRepository)(nil)
)
