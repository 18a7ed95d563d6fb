package fleet

import (
	"context"
	"time"

	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/repository"
)

type FleetUseCase interface {
	CreateAirline(ctx context.Context, a domain.Airline) (*domain.Airline, error)
	GetAirline(ctx context.Context, name string) (*domain.Airline, error)
	ListAirlines(ctx context.Context) ([]domain.Airline, error)

	CreateAirport(ctx context.Context, a domain.Airport) (*domain.Airport, error)
	GetAirport(ctx context.Context, name string) (*domain.Airport, error)
	ListAirports(ctx context.Context) ([]domain.Airport, error)

	CreateAirplane(ctx context.Context, a domain.Airplane) (*domain.Airplane, error)
	GetAirplane(ctx context.Context, name string) (*domain.Airplane, error)
	ListAirplanes(ctx context.Context) ([]domain.Airplane, error)

	CreateCrewMember(ctx context.Context, c domain.CrewMember) (*domain.CrewMember, error)
	GetCrewMember(ctx context.Context, id int64) (*domain.CrewMember, error)
	ListCrew(ctx context.Context) ([]domain.CrewMember, error)

	CreatePassenger(ctx context.Context, p domain.Passenger) (*domain.Passenger, error)
	GetPassenger(ctx context.Context, name string) (*domain.Passenger, error)
	ListPassengers(ctx context.Context) ([]domain.Passenger, error)

	CreateAddOnType(ctx context.Context, a domain.AddOnType) (*domain.AddOnType, error)
	GetAddOnType(ctx context.Context, name string) (*domain.AddOnType, error)
	ListAddOnTypes(ctx context.Context) ([]domain.AddOnType, error)
}

// FleetService manages the master data of the airline side.
type FleetService struct {
	repo repository.FleetRepository
	now  func() time.Time
}

func NewFleetService(repo repository.FleetRepository) *FleetService {
	return &FleetService{repo: repo, now: time.Now}
}

func (s *FleetService) CreateAirline(ctx context.Context, a domain.Airline) (*domain.Airline, error) {
	if err := a.Validate(s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.CreateAirline(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *FleetService) GetAirline(ctx context.Context, name string) (*domain.Airline, error) {
	return s.repo.GetAirline(ctx, name)
}

func (s *FleetService) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	return s.repo.ListAirlines(ctx)
}

func (s *FleetService) CreateAirport(ctx context.Context, a domain.Airport) (*domain.Airport, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateAirport(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *FleetService) GetAirport(ctx context.Context, name string) (*domain.Airport, error) {
	return s.repo.GetAirport(ctx, name)
}

func (s *FleetService) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	return s.repo.ListAirports(ctx)
}

func (s *FleetService) CreateAirplane(ctx context.Context, a domain.Airplane) (*domain.Airplane, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetAirline(ctx, a.Airline); err != nil {
		return nil, err
	}
	if err := s.repo.CreateAirplane(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *FleetService) GetAirplane(ctx context.Context, name string) (*domain.Airplane, error) {
	return s.repo.GetAirplane(ctx, name)
}

func (s *FleetService) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	return s.repo.ListAirplanes(ctx)
}

func (s *FleetService) CreateCrewMember(ctx context.Context, c domain.CrewMember) (*domain.CrewMember, error) {
	if err := c.BeforeSave(s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.CreateCrewMember(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *FleetService) GetCrewMember(ctx context.Context, id int64) (*domain.CrewMember, error) {
	return s.repo.GetCrewMember(ctx, id)
}

func (s *FleetService) ListCrew(ctx context.Context) ([]domain.CrewMember, error) {
	return s.repo.ListCrew(ctx)
}

func (s *FleetService) CreatePassenger(ctx context.Context, p domain.Passenger) (*domain.Passenger, error) {
	if err := p.BeforeSave(s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.CreatePassenger(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *FleetService) GetPassenger(ctx context.Context, name string) (*domain.Passenger, error) {
	return s.repo.GetPassenger(ctx, name)
}

func (s *FleetService) ListPassengers(ctx context.Context) ([]domain.Passenger, error) {
	return s.repo.ListPassengers(ctx)
}

func (s *FleetService) CreateAddOnType(ctx context.Context, a domain.AddOnType) (*domain.AddOnType, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateAddOnType(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *FleetService) GetAddOnType(ctx context.Context, name string) (*domain.AddOnType, error) {
	return s.repo.GetAddOnType(ctx, name)
}

func (s *FleetService) ListAddOnTypes(ctx context.Context) ([]domain.AddOnType, error) {
	return s.repo.ListAddOnTypes(ctx)
}

var _ FleetUseCase = (*FleetService)(nil)
