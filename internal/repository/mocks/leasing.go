package mocks

import (
	"context"

	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/repository"
	"github.com/stretchr/testify/mock"
)

type RoomRepository struct {
	mock.Mock
}

func (m *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *RoomRepository) Get(ctx context.Context, name string) (*domain.Room, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *RoomRepository) List(ctx context.Context, airport string) ([]domain.Room, error) {
	args := m.Called(ctx, airport)
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *RoomRepository) UpdateStatus(ctx context.Context, name string, status domain.RoomStatus) error {
	return m.Called(ctx, name, status).Error(0)
}

type ShopRepository struct {
	mock.Mock
}

func (m *ShopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	return m.Called(ctx, shop).Error(0)
}

func (m *ShopRepository) Get(ctx context.Context, name string) (*domain.Shop, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}

func (m *ShopRepository) List(ctx context.Context) ([]domain.Shop, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Shop), args.Error(1)
}

func (m *ShopRepository) Rooms(ctx context.Context, shop string) ([]domain.ShopRoom, error) {
	args := m.Called(ctx, shop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShopRoom), args.Error(1)
}

type LeaseRepository struct {
	mock.Mock
}

func (m *LeaseRepository) Create(ctx context.Context, l *domain.Lease) error {
	return m.Called(ctx, l).Error(0)
}

func (m *LeaseRepository) Get(ctx context.Context, name string) (*domain.Lease, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}

func (m *LeaseRepository) List(ctx context.Context) ([]domain.Lease, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Lease), args.Error(1)
}

func (m *LeaseRepository) ListByRoom(ctx context.Context, room string) ([]domain.Lease, error) {
	args := m.Called(ctx, room)
	return args.Get(0).([]domain.Lease), args.Error(1)
}

func (m *LeaseRepository) ListSubmitted(ctx context.Context) ([]domain.Lease, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Lease), args.Error(1)
}

func (m *LeaseRepository) CountByRoom(ctx context.Context, room string) (repository.LeaseCounts, error) {
	args := m.Called(ctx, room)
	return args.Get(0).(repository.LeaseCounts), args.Error(1)
}

func (m *LeaseRepository) Save(ctx context.Context, l *domain.Lease) error {
	return m.Called(ctx, l).Error(0)
}

type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) Get(ctx context.Context) (*domain.LeasingSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeasingSettings), args.Error(1)
}

func (m *SettingsRepository) Save(ctx context.Context, s *domain.LeasingSettings) error {
	return m.Called(ctx, s).Error(0)
}

type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) RevenueByAirline(ctx context.Context, bookedOnly bool) ([]domain.RevenueRow, error) {
	args := m.Called(ctx, bookedOnly)
	return args.Get(0).([]domain.RevenueRow), args.Error(1)
}

func (m *ReportRepository) VacancyPerAirport(ctx context.Context) ([]domain.VacancyRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.VacancyRow), args.Error(1)
}

var (
	_ repository.RoomRepository     = (*RoomRepository)(nil)
	_ repository.ShopRepository     = (*ShopRepository)(nil)
	_ repository.LeaseRepository    = (*LeaseRepository)(nil)
	_ repository.SettingsRepository = (*SettingsRepository)(nil)
	_ repository.ReportRepository   = (*ReportRepository)(nil)
)
