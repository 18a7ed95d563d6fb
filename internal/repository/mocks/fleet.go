// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/repository"
	"github.com/stretchr/testify/mock"
)

type FleetRepository struct {
	mock.Mock
}

func (m *FleetRepository) CreateAirline(ctx context.Context, a *domain.Airline) error {
	return m.Called(ctx, a).Error(0)
}

func (m *FleetRepository) GetAirline(ctx context.Context, name string) (*domain.Airline, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airline), args.Error(1)
}

func (m *FleetRepository) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airline), args.Error(1)
}

func (m *FleetRepository) CreateAirport(ctx context.Context, a *domain.Airport) error {
	return m.Called(ctx, a).Error(0)
}

func (m *FleetRepository) GetAirport(ctx context.Context, name string) (*domain.Airport, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *FleetRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *FleetRepository) CreateAirplane(ctx context.Context, a *domain.Airplane) error {
	return m.Called(ctx, a).Error(0)
}

func (m *FleetRepository) GetAirplane(ctx context.Context, name string) (*domain.Airplane, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *FleetRepository) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airplane), args.Error(1)
}

func (m *FleetRepository) CreateCrewMember(ctx context.Context, c *domain.CrewMember) error {
	return m.Called(ctx, c).Error(0)
}

func (m *FleetRepository) GetCrewMember(ctx context.Context, id int64) (*domain.CrewMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CrewMember), args.Error(1)
}

func (m *FleetRepository) ListCrew(ctx context.Context) ([]domain.CrewMember, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CrewMember), args.Error(1)
}

func (m *FleetRepository) CreatePassenger(ctx context.Context, p *domain.Passenger) error {
	return m.Called(ctx, p).Error(0)
}

func (m *FleetRepository) GetPassenger(ctx context.Context, name string) (*domain.Passenger, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *FleetRepository) ListPassengers(ctx context.Context) ([]domain.Passenger, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func (m *FleetRepository) CreateAddOnType(ctx context.Context, a *domain.AddOnType) error {
	return m.Called(ctx, a).Error(0)
}

func (m *FleetRepository) GetAddOnType(ctx context.Context, name string) (*domain.AddOnType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AddOnType), args.Error(1)
}

func (m *FleetRepository) ListAddOnTypes(ctx context.Context) ([]domain.AddOnType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AddOnType), args.Error(1)
}

var _ repository.FleetRepository = (*FleetRepository)(nil)
