package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/metrics"
	"github.com/Domenick1991/airplanemode/internal/repository/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetAirportShops(ctx context.Context) (*domain.AirportShopsPage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AirportShopsPage), args.Error(1)
}

func (m *MockCache) SetAirportShops(ctx context.Context, page *domain.AirportShopsPage) error {
	return m.Called(ctx, page).Error(0)
}

func TestReportService_RevenueByAirline(t *testing.T) {
	reports := &mocks.ReportRepository{}
	ctx := context.Background()
	service := NewReportService(reports, &mocks.ShopRepository{}, nil, nil)

	reports.On("RevenueByAirline", ctx, true).Return([]domain.RevenueRow{
		{Airline: "Air One", RevenueCents: 30000},
		{Airline: "Ghost Air", RevenueCents: 0},
	}, nil)

	report, err := service.RevenueByAirline(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), report.Total)
	assert.Equal(t, "Green", report.Summary[0].Indicator)
	assert.Equal(t, []string{"Air One", "Ghost Air"}, report.Chart.Labels)
}

func TestReportService_VacancyPerAirport(t *testing.T) {
	reports := &mocks.ReportRepository{}
	ctx := context.Background()
	service := NewReportService(reports, &mocks.ShopRepository{}, nil, nil)

	rows := []domain.VacancyRow{{Airport: "JFK", Rooms: 4, Occupied: 1, Available: 3, VacancyRate: 0.75}}
	reports.On("VacancyPerAirport", ctx).Return(rows, nil).Once()
	got, err := service.VacancyPerAirport(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	reports.On("VacancyPerAirport", ctx).Return([]domain.VacancyRow(nil), errors.New("db down")).Once()
	_, err = service.VacancyPerAirport(ctx)
	assert.Error(t, err)
}

func TestReportService_AirportShops_Miss(t *testing.T) {
	shops := &mocks.ShopRepository{}
	cache := &MockCache{}
	m := metrics.NewMetricsRegistry()
	ctx := context.Background()
	service := NewReportService(&mocks.ReportRepository{}, shops, cache, m)

	cache.On("GetAirportShops", ctx).Return(nil, nil).Once()
	shops.On("List", ctx).Return([]domain.Shop{
		{Name: "SHOP-00001", ShopType: "Food"},
		{Name: "SHOP-00002", ShopType: "Books"},
	}, nil)
	shops.On("Rooms", mock.Anything, "SHOP-00001").Return([]domain.ShopRoom{{Room: "JFK12", Airport: "JFK"}}, nil)
	shops.On("Rooms", mock.Anything, "SHOP-00002").Return([]domain.ShopRoom{}, nil)
	cache.On("SetAirportShops", ctx, mock.AnythingOfType("*domain.AirportShopsPage")).Return(errors.New("redis down")).Once()

	page, err := service.AirportShops(ctx)
	require.NoError(t, err)
	require.Len(t, page.Shops, 2)
	assert.Equal(t, "SHOP-00001", page.Shops[0].Name)
	assert.Equal(t, "/api/shops/SHOP-00001", page.Shops[0].Link)
	assert.Equal(t, []domain.ShopRoom{{Room: "JFK12", Airport: "JFK"}}, page.Shops[0].Rooms)
	assert.Empty(t, page.Shops[1].Rooms)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMissesTotal.WithLabelValues("airport_shops")))
	cache.AssertExpectations(t)
}

func TestReportService_AirportShops_Hit(t *testing.T) {
	shops := &mocks.ShopRepository{}
	cache := &MockCache{}
	ctx := context.Background()
	service := NewReportService(&mocks.ReportRepository{}, shops, cache, nil)

	cached := &domain.AirportShopsPage{Shops: []domain.ShopListing{{Name: "SHOP-00001"}}}
	cache.On("GetAirportShops", ctx).Return(cached, nil).Once()

	page, err := service.AirportShops(ctx)
	require.NoError(t, err)
	assert.Same(t, cached, page)
	shops.AssertNotCalled(t, "List", mock.Anything)
}

func TestReportService_AirportShops_RoomsError(t *testing.T) {
	shops := &mocks.ShopRepository{}
	ctx := context.Background()
	service := NewReportService(&mocks.ReportRepository{}, shops, nil, nil)

	shops.On("List", ctx).Return([]domain.Shop{{Name: "SHOP-00001"}}, nil)
	shops.On("Rooms", mock.Anything, "SHOP-00001").Return(nil, errors.New("db down"))

	_, err := service.AirportShops(ctx)
	assert.ErrorContains(t, err, "db down")
}
