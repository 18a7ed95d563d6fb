package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/service/leasing"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLeaseUseCase struct {
	mock.Mock
}

func (m *MockLeaseUseCase) lease(args mock.Arguments) (*domain.Lease, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}

func (m *MockLeaseUseCase) Create(ctx context.Context, input leasing.CreateLeaseInput) (*domain.Lease, error) {
	return m.lease(m.Called(ctx, input))
}

func (m *MockLeaseUseCase) Get(ctx context.Context, name string) (*domain.Lease, error) {
	return m.lease(m.Called(ctx, name))
}

func (m *MockLeaseUseCase) List(ctx context.Context) ([]domain.Lease, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Lease), args.Error(1)
}

func (m *MockLeaseUseCase) Update(ctx context.Context, name string, input leasing.UpdateLeaseInput) (*domain.Lease, error) {
	return m.lease(m.Called(ctx, name, input))
}

func (m *MockLeaseUseCase) Submit(ctx context.Context, name string) (*domain.Lease, error) {
	return m.lease(m.Called(ctx, name))
}

func (m *MockLeaseUseCase) Cancel(ctx context.Context, name string) (*domain.Lease, error) {
	return m.lease(m.Called(ctx, name))
}

func (m *MockLeaseUseCase) NextPeriod(ctx context.Context, name string) (*domain.Lease, error) {
	return m.lease(m.Called(ctx, name))
}

func (m *MockLeaseUseCase) ReceivePayment(ctx context.Context, name string, input leasing.ReceivePaymentInput) (*domain.Lease, error) {
	return m.lease(m.Called(ctx, name, input))
}

func (m *MockLeaseUseCase) DeletePayment(ctx context.Context, name, payment string) error {
	return m.Called(ctx, name, payment).Error(0)
}

func (m *MockLeaseUseCase) Offboard(ctx context.Context, name string, date time.Time) (*domain.Lease, error) {
	return m.lease(m.Called(ctx, name, date))
}

func (m *MockLeaseUseCase) RemindTenant(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeaseUseCase) AutorenewDue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockLeaseUseCase) SendReminders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockSettingsUseCase struct {
	mock.Mock
}

func (m *MockSettingsUseCase) Get(ctx context.Context) (*domain.LeasingSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeasingSettings), args.Error(1)
}

func (m *MockSettingsUseCase) Update(ctx context.Context, input leasing.UpdateSettingsInput) (*domain.LeasingSettings, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeasingSettings), args.Error(1)
}

func (m *MockSettingsUseCase) DefaultUOM(ctx context.Context) (domain.UOM, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.UOM), args.Error(1)
}

func newLeasingHandler(leases *MockLeaseUseCase, settings *MockSettingsUseCase) *LeasingHandler {
	return NewLeasingHandler(nil, nil, leases, settings)
}

func TestLeasingHandler_createLease(t *testing.T) {
	leases := &MockLeaseUseCase{}
	handler := newLeasingHandler(leases, nil)

	body := `{"leasing_of":"JFK12","leased_from":"Airport Co","leased_to":"SHOP-00001","start_date":"2024-01-15","end_date":"2024-06-30","period_length":"Quarterly"}`
	c, w := newTestContext("POST", "/api/leases", body)
	expected := leasing.CreateLeaseInput{
		LeasingOf:    "JFK12",
		LeasedFrom:   "Airport Co",
		LeasedTo:     "SHOP-00001",
		StartDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		PeriodLength: domain.PeriodQuarterly,
	}
	leases.On("Create", c.Request.Context(), expected).Return(&domain.Lease{Name: "LEASE-00001"}, nil)

	handler.createLease(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	leases.AssertExpectations(t)
}

func TestLeasingHandler_createLeaseBadDate(t *testing.T) {
	leases := &MockLeaseUseCase{}
	handler := newLeasingHandler(leases, nil)

	body := `{"leasing_of":"JFK12","leased_from":"Airport Co","leased_to":"SHOP-00001","start_date":"15/01/2024","end_date":"2024-06-30"}`
	c, w := newTestContext("POST", "/api/leases", body)

	handler.createLease(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w)["error"], "start_date")
	leases.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLeasingHandler_deletePayment(t *testing.T) {
	leases := &MockLeaseUseCase{}
	handler := newLeasingHandler(leases, nil)

	c, w := newTestContext("DELETE", "/api/leases/LEASE-00001/payments/PAY-1", "")
	c.Params = gin.Params{{Key: "name", Value: "LEASE-00001"}, {Key: "payment", Value: "PAY-1"}}
	leases.On("DeletePayment", c.Request.Context(), "LEASE-00001", "PAY-1").Return(apperr.Validation("cannot delete lease payments"))

	handler.deletePayment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cannot delete lease payments", decodeError(t, w)["error"])
}

func TestLeasingHandler_receivePayment(t *testing.T) {
	leases := &MockLeaseUseCase{}
	handler := newLeasingHandler(leases, nil)

	c, w := newTestContext("POST", "/api/leases/LEASE-00001/payments", `{"amount_cents":15000,"reference_no":"BANK-1","payment_date":"2024-01-20"}`)
	c.Params = gin.Params{{Key: "name", Value: "LEASE-00001"}}
	paid := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	leases.On("ReceivePayment", c.Request.Context(), "LEASE-00001", leasing.ReceivePaymentInput{
		AmountCents: 15000,
		ReferenceNo: "BANK-1",
		PaymentDate: &paid,
	}).Return(&domain.Lease{Name: "LEASE-00001"}, nil)

	handler.receivePayment(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	leases.AssertExpectations(t)
}

func TestLeasingHandler_offboard(t *testing.T) {
	leases := &MockLeaseUseCase{}
	handler := newLeasingHandler(leases, nil)

	c, w := newTestContext("POST", "/api/leases/LEASE-00001/offboard", `{"date":"2024-02-01"}`)
	c.Params = gin.Params{{Key: "name", Value: "LEASE-00001"}}
	leases.On("Offboard", c.Request.Context(), "LEASE-00001", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).
		Return(&domain.Lease{Name: "LEASE-00001"}, nil)

	handler.offboard(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLeasingHandler_remind(t *testing.T) {
	leases := &MockLeaseUseCase{}
	handler := newLeasingHandler(leases, nil)

	c, w := newTestContext("POST", "/api/leases/LEASE-00001/remind", "")
	c.Params = gin.Params{{Key: "name", Value: "LEASE-00001"}}
	leases.On("RemindTenant", c.Request.Context(), "LEASE-00001").Return(true, nil)

	handler.remind(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sent":true}`, w.Body.String())
}

func TestLeasingHandler_defaultUOM(t *testing.T) {
	settings := &MockSettingsUseCase{}
	handler := newLeasingHandler(nil, settings)

	c, w := newTestContext("GET", "/api/method/default_uom", "")
	settings.On("DefaultUOM", c.Request.Context()).Return(domain.UOMWeek, nil)

	handler.defaultUOM(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Week"}`, w.Body.String())
}
