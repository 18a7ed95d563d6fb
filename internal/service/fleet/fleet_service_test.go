package fleet

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService(repo *mocks.FleetRepository) *FleetService {
	s := NewFleetService(repo)
	s.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestFleetService_CreateAirline(t *testing.T) {
	repo := &mocks.FleetRepository{}
	s := newService(repo)
	ctx := context.Background()

	repo.On("CreateAirline", ctx, mock.AnythingOfType("*domain.Airline")).Return(nil).Once()

	a, err := s.CreateAirline(ctx, domain.Airline{Name: " Pan Am ", Headquarters: "NYC", FoundingYear: 1927, CustomerCareNumber: "1"})
	require.NoError(t, err)
	assert.Equal(t, "Pan Am", a.Name)
	repo.AssertExpectations(t)
}

func TestFleetService_CreateAirline_Invalid(t *testing.T) {
	repo := &mocks.FleetRepository{}
	s := newService(repo)

	_, err := s.CreateAirline(context.Background(), domain.Airline{Name: "X", Headquarters: "Y", FoundingYear: 1800, CustomerCareNumber: "1"})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
	repo.AssertNotCalled(t, "CreateAirline", mock.Anything, mock.Anything)
}

func TestFleetService_CreateAirplane_UnknownAirline(t *testing.T) {
	repo := &mocks.FleetRepository{}
	s := newService(repo)
	ctx := context.Background()

	repo.On("GetAirline", ctx, "Ghost Air").Return(nil, apperr.NotFound("Airline", "Ghost Air")).Once()

	_, err := s.CreateAirplane(ctx, domain.Airplane{Model: "A320", Airline: "Ghost Air", Capacity: 180})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	repo.AssertNotCalled(t, "CreateAirplane", mock.Anything, mock.Anything)
}

func TestFleetService_CreateCrewMember_SetsFullName(t *testing.T) {
	repo := &mocks.FleetRepository{}
	s := newService(repo)
	ctx := context.Background()

	repo.On("CreateCrewMember", ctx, mock.AnythingOfType("*domain.CrewMember")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.CrewMember).ID = 7
	}).Return(nil).Once()

	c, err := s.CreateCrewMember(ctx, domain.CrewMember{FirstName: "Sally", LastName: "Ride", PassportID: "P1", DateOfBirth: time.Date(1951, 5, 26, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, "Sally Ride", c.FullName)
}

func TestFleetService_CreatePassenger(t *testing.T) {
	repo := &mocks.FleetRepository{}
	s := newService(repo)
	ctx := context.Background()

	repo.On("CreatePassenger", ctx, mock.AnythingOfType("*domain.Passenger")).Return(nil).Once()

	p, err := s.CreatePassenger(ctx, domain.Passenger{FirstName: "Neil"})
	require.NoError(t, err)
	assert.Equal(t, "Neil", p.FullName)
}

func TestFleetService_CreateAirport_NormalisesCode(t *testing.T) {
	repo := &mocks.FleetRepository{}
	s := newService(repo)
	ctx := context.Background()

	repo.On("CreateAirport", ctx, mock.MatchedBy(func(a *domain.Airport) bool { return a.Name == "SFO" })).Return(nil).Once()

	a, err := s.CreateAirport(ctx, domain.Airport{Code: "sfo", City: "San Francisco", Country: "USA"})
	require.NoError(t, err)
	assert.Equal(t, "SFO", a.Code)
	repo.AssertExpectations(t)
}
