package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReportUseCase struct {
	mock.Mock
}

func (m *MockReportUseCase) RevenueByAirline(ctx context.Context, bookedOnly bool) (domain.RevenueReport, error) {
	args := m.Called(ctx, bookedOnly)
	return args.Get(0).(domain.RevenueReport), args.Error(1)
}

func (m *MockReportUseCase) VacancyPerAirport(ctx context.Context) ([]domain.VacancyRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.VacancyRow), args.Error(1)
}

func (m *MockReportUseCase) AirportShops(ctx context.Context) (*domain.AirportShopsPage, error) {
	args := m.Called(ctx)
	return args.Get(0).(*domain.AirportShopsPage), args.Error(1)
}

func newTestRouter(reports *MockReportUseCase, opts RouterOptions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(Handlers{
		Fleet:   NewFleetHandler(nil),
		Flights: NewFlightHandler(nil),
		Tickets: NewTicketHandler(nil),
		Leasing: NewLeasingHandler(nil, nil, nil, nil),
		Reports: NewReportHandler(reports),
	}, opts)
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(&MockReportUseCase{}, RouterOptions{Health: map[string]HealthCheck{
		"postgres": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
	}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"Service Unavailable","checks":{"postgres":"ok","redis":"connection refused"}}`, w.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(&MockReportUseCase{}, RouterOptions{Metrics: metrics.NewMetricsRegistry()})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Reports(t *testing.T) {
	reports := &MockReportUseCase{}
	router := newTestRouter(reports, RouterOptions{})

	reports.On("RevenueByAirline", mock.Anything, true).Return(domain.NewRevenueReport(nil), nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/reports/revenue-by-airline?booked=true", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/reports/revenue-by-airline?booked=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	reports.AssertExpectations(t)
}

func TestRouter_PublicPagesAreRateLimited(t *testing.T) {
	reports := &MockReportUseCase{}
	router := newTestRouter(reports, RouterOptions{RateLimiter: NewIPRateLimiter(0.001, 1)})

	reports.On("AirportShops", mock.Anything).Return(&domain.AirportShopsPage{Shops: []domain.ShopListing{}}, nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/www/airport-shops", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/www/airport-shops", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	reports.AssertExpectations(t)
}

func TestOpsRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := metrics.NewMetricsRegistry()
	reg.RentRemindersSent.Inc()
	reg.JobDuration.WithLabelValues("autorenew_daily").Observe(0.2)
	router := NewOpsRouter(reg, map[string]HealthCheck{
		"postgres": func(ctx context.Context) error { return nil },
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "airplanemode_rent_reminders_total 1")
	assert.Contains(t, w.Body.String(), `job_name="autorenew_daily"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/reports/revenue-by-airline", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
