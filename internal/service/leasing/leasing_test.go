package leasing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/cache"
	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/kafka"
	"github.com/Domenick1991/airplanemode/internal/repository"
	"github.com/Domenick1991/airplanemode/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

type stubSettings struct {
	settings domain.LeasingSettings
}

func (s *stubSettings) Get(ctx context.Context) (*domain.LeasingSettings, error) {
	settings := s.settings
	return &settings, nil
}

func (s *stubSettings) Update(ctx context.Context, input UpdateSettingsInput) (*domain.LeasingSettings, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSettings) DefaultUOM(ctx context.Context) (domain.UOM, error) {
	return s.settings.UOM(), nil
}

type MockPages struct {
	mock.Mock
}

func (m *MockPages) InvalidateAirportShops(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func submittedRoom() *domain.Room {
	return &domain.Room{Name: "JFK12", Airport: "JFK", AirportCode: "JFK", RoomNumber: 12, DocStatus: domain.DocStatusSubmitted}
}

func TestSettingsService_CachesUntilUpdate(t *testing.T) {
	repo := &mocks.SettingsRepository{}
	ctx := context.Background()
	service := NewSettingsService(repo, cache.NewLocalCache(time.Minute, time.Minute))

	repo.On("Get", ctx).Return(&domain.LeasingSettings{DefaultRentalRateCents: 5000}, nil).Times(3)
	repo.On("Save", ctx, mock.AnythingOfType("*domain.LeasingSettings")).Return(nil).Once()

	first, err := service.Get(ctx)
	require.NoError(t, err)
	first.DefaultRentalRateCents = 1
	second, err := service.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), second.DefaultRentalRateCents)

	uom, err := service.DefaultUOM(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.UOMWeek, uom)

	month := domain.UOMMonth
	updated, err := service.Update(ctx, UpdateSettingsInput{DefaultUOM: &month})
	require.NoError(t, err)
	assert.Equal(t, domain.UOMMonth, updated.DefaultUOM)

	_, err = service.Get(ctx)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSettingsService_UpdateRejectsUnknownUOM(t *testing.T) {
	repo := &mocks.SettingsRepository{}
	service := NewSettingsService(repo, nil)
	day := domain.UOM("Day")

	_, err := service.Update(context.Background(), UpdateSettingsInput{DefaultUOM: &day})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRoomService_Create(t *testing.T) {
	rooms := &mocks.RoomRepository{}
	fleet := &mocks.FleetRepository{}
	ctx := context.Background()
	service := NewRoomService(rooms, &mocks.LeaseRepository{}, fleet, &stubSettings{domain.LeasingSettings{DefaultRentalRateCents: 5000}}, nil)

	fleet.On("GetAirport", ctx, "JFK").Return(&domain.Airport{Name: "JFK", Code: "JFK"}, nil)
	rooms.On("Create", ctx, mock.AnythingOfType("*domain.Room")).Return(nil).Once()

	room, err := service.Create(ctx, CreateRoomInput{Airport: "JFK", RoomNumber: 12, AreaSqm: 40})
	require.NoError(t, err)
	assert.Equal(t, "JFK12", room.Name)
	assert.Equal(t, int64(5000), room.RentalRateCents)
	assert.Equal(t, domain.RoomStatusDraft, room.Status)
	rooms.AssertExpectations(t)
}

func TestRoomService_Submit(t *testing.T) {
	rooms := &mocks.RoomRepository{}
	leases := &mocks.LeaseRepository{}
	pages := &MockPages{}
	ctx := context.Background()
	service := NewRoomService(rooms, leases, &mocks.FleetRepository{}, &stubSettings{domain.LeasingSettings{DefaultUOM: domain.UOMMonth}}, pages)

	room := &domain.Room{Name: "JFK12", Airport: "JFK", AirportCode: "JFK", RoomNumber: 12}
	rooms.On("Get", ctx, "JFK12").Return(room, nil)
	leases.On("CountByRoom", ctx, "JFK12").Return(repository.LeaseCounts{}, nil)
	rooms.On("Update", ctx, room).Return(nil).Once()
	pages.On("InvalidateAirportShops", ctx).Return(errors.New("redis down")).Once()

	submitted, err := service.Submit(ctx, "JFK12")
	require.NoError(t, err)
	assert.Equal(t, "JFK12", submitted.ItemCode)
	assert.Equal(t, domain.UOMMonth, submitted.UOM)
	assert.Equal(t, domain.RoomStatusAvailable, submitted.Status)
	pages.AssertExpectations(t)
}

func TestRoomService_CancelWithSubmittedLease(t *testing.T) {
	rooms := &mocks.RoomRepository{}
	leases := &mocks.LeaseRepository{}
	ctx := context.Background()
	service := NewRoomService(rooms, leases, &mocks.FleetRepository{}, &stubSettings{}, nil)

	rooms.On("Get", ctx, "JFK12").Return(submittedRoom(), nil)
	leases.On("CountByRoom", ctx, "JFK12").Return(repository.LeaseCounts{Submitted: 1}, nil)

	_, err := service.Cancel(ctx, "JFK12")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
	rooms.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRoomService_UpdateMaintenance(t *testing.T) {
	rooms := &mocks.RoomRepository{}
	leases := &mocks.LeaseRepository{}
	ctx := context.Background()
	service := NewRoomService(rooms, leases, &mocks.FleetRepository{}, &stubSettings{}, nil)

	room := submittedRoom()
	rooms.On("Get", ctx, "JFK12").Return(room, nil)
	leases.On("CountByRoom", ctx, "JFK12").Return(repository.LeaseCounts{Submitted: 1}, nil)
	rooms.On("Update", ctx, room).Return(nil)

	on := true
	updated, err := service.Update(ctx, "JFK12", UpdateRoomInput{Maintenance: &on})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomStatusMaintenance, updated.Status)

	off := false
	updated, err = service.Update(ctx, "JFK12", UpdateRoomInput{Maintenance: &off})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomStatusOccupied, updated.Status)
}

func TestShopService_Rooms(t *testing.T) {
	shops := &mocks.ShopRepository{}
	ctx := context.Background()
	service := NewShopService(shops, nil)

	shops.On("Get", ctx, "SHOP-00001").Return(&domain.Shop{Name: "SHOP-00001"}, nil)
	shops.On("Rooms", ctx, "SHOP-00001").Return([]domain.ShopRoom{{Room: "JFK12", Airport: "JFK"}}, nil)
	shops.On("Get", ctx, "SHOP-00404").Return(nil, apperr.NotFound("Shop", "SHOP-00404"))

	rooms, err := service.Rooms(ctx, "SHOP-00001")
	require.NoError(t, err)
	assert.Equal(t, []domain.ShopRoom{{Room: "JFK12", Airport: "JFK"}}, rooms)

	_, err = service.Rooms(ctx, "SHOP-00404")
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestShopService_CreateValidates(t *testing.T) {
	shops := &mocks.ShopRepository{}
	service := NewShopService(shops, nil)

	_, err := service.Create(context.Background(), CreateShopInput{ShopNumber: 1, OwnedBy: "Jane", ContactEmail: "not-an-email"})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
	shops.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

type leaseFixture struct {
	leases   *mocks.LeaseRepository
	rooms    *mocks.RoomRepository
	shops    *mocks.ShopRepository
	producer *mocks.Producer
	settings *stubSettings
	service  *LeaseService
}

func newLeaseFixture(today string) *leaseFixture {
	f := &leaseFixture{
		leases:   &mocks.LeaseRepository{},
		rooms:    &mocks.RoomRepository{},
		shops:    &mocks.ShopRepository{},
		producer: &mocks.Producer{},
		settings: &stubSettings{domain.LeasingSettings{DefaultRentalRateCents: 10000, EnablePaymentReminders: true}},
	}
	f.service = NewLeaseService(f.leases, f.rooms, f.shops, f.settings, WithEvents(f.producer, "lease_events", "notifications"))
	now := date(today)
	f.service.now = func() time.Time { return now }
	return f
}

func draftLease() *domain.Lease {
	return &domain.Lease{
		Name:         "LEASE-00001",
		LeasingOf:    "JFK12",
		LeasedFrom:   "Airport Co",
		LeasedTo:     "SHOP-00001",
		StartDate:    date("2024-01-15"),
		EndDate:      date("2024-06-30"),
		PeriodLength: domain.PeriodMonthly,
		Status:       domain.LeaseStatusDraft,
	}
}

func billedLease(name string, periodEnd string) *domain.Lease {
	l := draftLease()
	l.Name = name
	l.DocStatus = domain.DocStatusSubmitted
	l.RentalRateCents = 10000
	l.Periods = []domain.Period{{
		StartDate: date("2024-01-15"),
		EndDate:   date(periodEnd),
		Invoice: domain.Invoice{
			Name:             "SINV-" + name + "-01",
			PostingDate:      date("2024-01-10"),
			DueDate:          date("2024-01-24"),
			GrandTotalCents:  40000,
			OutstandingCents: 40000,
		},
	}}
	return l
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e kafka.Event) bool { return e.Type == eventType })
}

func TestLeaseService_Create(t *testing.T) {
	f := newLeaseFixture("2024-01-10")
	ctx := context.Background()

	f.shops.On("Get", ctx, "SHOP-00001").Return(&domain.Shop{Name: "SHOP-00001"}, nil)
	f.rooms.On("Get", ctx, "JFK12").Return(submittedRoom(), nil)
	f.leases.On("ListByRoom", ctx, "JFK12").Return([]domain.Lease{
		{Name: "LEASE-00000", StartDate: date("2023-01-01"), EndDate: date("2024-01-14"), DocStatus: domain.DocStatusSubmitted},
		{Name: "LEASE-00009", StartDate: date("2024-03-01"), EndDate: date("2024-04-01"), DocStatus: domain.DocStatusCancelled},
	}, nil)
	f.leases.On("Create", ctx, mock.AnythingOfType("*domain.Lease")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Lease).Name = "LEASE-00001"
	}).Return(nil).Once()
	f.leases.On("CountByRoom", ctx, "JFK12").Return(repository.LeaseCounts{Draft: 1}, nil)
	f.rooms.On("UpdateStatus", ctx, "JFK12", domain.RoomStatusReserved).Return(nil).Once()

	lease, err := f.service.Create(ctx, CreateLeaseInput{
		LeasingOf:  "JFK12",
		LeasedFrom: "Airport Co",
		LeasedTo:   "SHOP-00001",
		StartDate:  date("2024-01-15"),
		EndDate:    date("2024-06-30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "LEASE-00001", lease.Name)
	assert.Equal(t, domain.PeriodMonthly, lease.PeriodLength)
	assert.Equal(t, domain.LeaseStatusDraft, lease.Status)
	f.rooms.AssertExpectations(t)
}

func TestLeaseService_CreateRejects(t *testing.T) {
	ctx := context.Background()
	input := CreateLeaseInput{
		LeasingOf:  "JFK12",
		LeasedFrom: "Airport Co",
		LeasedTo:   "SHOP-00001",
		StartDate:  date("2024-01-15"),
		EndDate:    date("2024-06-30"),
	}

	t.Run("start in the past", func(t *testing.T) {
		f := newLeaseFixture("2024-02-01")
		f.shops.On("Get", ctx, "SHOP-00001").Return(&domain.Shop{Name: "SHOP-00001"}, nil)

		_, err := f.service.Create(ctx, input)
		assert.True(t, apperr.Is(err, apperr.CodeValidation))
	})

	t.Run("room under maintenance", func(t *testing.T) {
		f := newLeaseFixture("2024-01-10")
		room := submittedRoom()
		room.Maintenance = true
		f.shops.On("Get", ctx, "SHOP-00001").Return(&domain.Shop{Name: "SHOP-00001"}, nil)
		f.rooms.On("Get", ctx, "JFK12").Return(room, nil)

		_, err := f.service.Create(ctx, input)
		assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
	})

	t.Run("overlapping submitted lease", func(t *testing.T) {
		f := newLeaseFixture("2024-01-10")
		f.shops.On("Get", ctx, "SHOP-00001").Return(&domain.Shop{Name: "SHOP-00001"}, nil)
		f.rooms.On("Get", ctx, "JFK12").Return(submittedRoom(), nil)
		f.leases.On("ListByRoom", ctx, "JFK12").Return([]domain.Lease{
			{Name: "LEASE-00000", StartDate: date("2024-06-01"), EndDate: date("2024-12-31"), DocStatus: domain.DocStatusSubmitted},
		}, nil)

		_, err := f.service.Create(ctx, input)
		assert.True(t, apperr.Is(err, apperr.CodeConflict))
		f.leases.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLeaseService_Submit(t *testing.T) {
	f := newLeaseFixture("2024-01-10")
	ctx := context.Background()

	lease := draftLease()
	f.leases.On("Get", ctx, "LEASE-00001").Return(lease, nil)
	f.rooms.On("Get", ctx, "JFK12").Return(submittedRoom(), nil)
	f.leases.On("ListByRoom", ctx, "JFK12").Return([]domain.Lease{*lease}, nil)
	f.leases.On("Save", ctx, lease).Return(nil).Once()
	f.leases.On("CountByRoom", ctx, "JFK12").Return(repository.LeaseCounts{Submitted: 1}, nil)
	f.rooms.On("UpdateStatus", ctx, "JFK12", domain.RoomStatusOccupied).Return(nil).Once()
	f.producer.On("Publish", ctx, "lease_events", "LEASE-00001", eventOfType(kafka.EventLeaseSubmitted)).Return(nil).Once()
	f.producer.On("Publish", ctx, "lease_events", "LEASE-00001", mock.MatchedBy(func(e kafka.Event) bool {
		return e.Type == kafka.EventPeriodInvoiced && e.AmountCents == 40000 && e.Details["invoice"] == "SINV-LEASE-00001-01"
	})).Return(nil).Once()

	submitted, err := f.service.Submit(ctx, "LEASE-00001")
	require.NoError(t, err)
	assert.Equal(t, domain.DocStatusSubmitted, submitted.DocStatus)
	assert.Equal(t, domain.LeaseStatusActive, submitted.Status)
	assert.Equal(t, int64(10000), submitted.RentalRateCents)
	require.Len(t, submitted.Periods, 1)
	assert.Equal(t, date("2024-02-12"), submitted.Periods[0].EndDate)
	assert.Equal(t, date("2024-01-24"), submitted.Periods[0].Invoice.DueDate)

	f.rooms.AssertExpectations(t)
	f.producer.AssertExpectations(t)
}

func TestLeaseService_SubmitUsesRoomRate(t *testing.T) {
	f := newLeaseFixture("2024-01-10")
	ctx := context.Background()

	lease := draftLease()
	room := submittedRoom()
	room.RentalRateCents = 2500
	f.leases.On("Get", ctx, "LEASE-00001").Return(lease, nil)
	f.rooms.On("Get", ctx, "JFK12").Return(room, nil)
	f.leases.On("ListByRoom", ctx, "JFK12").Return([]domain.Lease{}, nil)
	f.leases.On("Save", ctx, lease).Return(nil)
	f.leases.On("CountByRoom", ctx, "JFK12").Return(repository.LeaseCounts{Submitted: 1}, nil)
	f.rooms.On("UpdateStatus", ctx, "JFK12", domain.RoomStatusOccupied).Return(nil)
	f.producer.On("Publish", ctx, "lease_events", "LEASE-00001", mock.Anything).Return(errors.New("kafka down"))

	submitted, err := f.service.Submit(ctx, "LEASE-00001")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), submitted.Periods[0].Invoice.GrandTotalCents)
}

func TestLeaseService_ReceivePayment(t *testing.T) {
	f := newLeaseFixture("2024-01-20")
	ctx := context.Background()

	lease := billedLease("LEASE-00001", "2024-02-12")
	f.leases.On("Get", ctx, "LEASE-00001").Return(lease, nil)
	f.leases.On("Save", ctx, lease).Return(nil).Once()
	f.producer.On("Publish", ctx, "lease_events", "LEASE-00001", mock.MatchedBy(func(e kafka.Event) bool {
		return e.Type == kafka.EventPaymentReceived && e.AmountCents == 15000 && e.Details["reference_no"] == "BANK-1"
	})).Return(nil).Once()

	updated, err := f.service.ReceivePayment(ctx, "LEASE-00001", ReceivePaymentInput{AmountCents: 15000, ReferenceNo: "BANK-1"})
	require.NoError(t, err)
	require.Len(t, updated.Payments, 1)
	assert.True(t, strings.HasPrefix(updated.Payments[0].Name, "PAY-"))
	assert.Equal(t, date("2024-01-20"), updated.Payments[0].PaymentDate)
	assert.Equal(t, int64(25000), updated.OutstandingBalance())
	assert.Equal(t, domain.InvoiceStatusPartlyPaid, updated.Periods[0].Status(date("2024-01-20")))

	_, err = f.service.ReceivePayment(ctx, "LEASE-00001", ReceivePaymentInput{AmountCents: 30000})
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
	f.producer.AssertExpectations(t)
}

func TestLeaseService_ReceivePaymentStaleLease(t *testing.T) {
	f := newLeaseFixture("2024-01-20")
	ctx := context.Background()

	lease := billedLease("LEASE-00001", "2024-02-12")
	f.leases.On("Get", ctx, "LEASE-00001").Return(lease, nil)
	f.leases.On("Save", ctx, lease).Return(repository.ErrLeaseModified)

	_, err := f.service.ReceivePayment(ctx, "LEASE-00001", ReceivePaymentInput{AmountCents: 40000})
	require.ErrorIs(t, err, repository.ErrLeaseModified)
	assert.True(t, apperr.Is(err, apperr.CodeConflict))
	f.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLeaseService_List(t *testing.T) {
	f := newLeaseFixture("2024-02-01")
	ctx := context.Background()

	overdue := billedLease("LEASE-00001", "2024-02-12")
	overdue.Status = domain.LeaseStatusActive
	expired := billedLease("LEASE-00002", "2024-01-31")
	expired.EndDate = date("2024-01-31")
	expired.Periods[0].Invoice.OutstandingCents = 0
	expired.Status = domain.LeaseStatusActive
	f.leases.On("List", ctx).Return([]domain.Lease{*overdue, *expired, *draftLease()}, nil)

	leases, err := f.service.List(ctx)
	require.NoError(t, err)
	require.Len(t, leases, 3)
	assert.Equal(t, domain.LeaseStatusOverdue, leases[0].Status)
	assert.Len(t, leases[0].Periods, 1)
	assert.Equal(t, domain.LeaseStatusExpired, leases[1].Status)
	assert.Equal(t, domain.LeaseStatusDraft, leases[2].Status)
}

func TestLeaseService_DeletePayment(t *testing.T) {
	f := newLeaseFixture("2024-01-20")
	ctx := context.Background()
	f.leases.On("Get", ctx, "LEASE-00001").Return(billedLease("LEASE-00001", "2024-02-12"), nil)

	err := f.service.DeletePayment(ctx, "LEASE-00001", "PAY-1")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeValidation))
	assert.Equal(t, "cannot delete lease payments", apperr.Message(err))
}

func TestLeaseService_NextPeriodRequiresSubmitted(t *testing.T) {
	f := newLeaseFixture("2024-01-20")
	ctx := context.Background()
	f.leases.On("Get", ctx, "LEASE-00001").Return(draftLease(), nil)

	_, err := f.service.NextPeriod(ctx, "LEASE-00001")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidState))
}

func TestLeaseService_Offboard(t *testing.T) {
	f := newLeaseFixture("2024-01-20")
	ctx := context.Background()

	lease := billedLease("LEASE-00001", "2024-02-12")
	f.leases.On("Get", ctx, "LEASE-00001").Return(lease, nil)
	f.leases.On("Save", ctx, lease).Return(nil)
	f.producer.On("Publish", ctx, "lease_events", "LEASE-00001", eventOfType(kafka.EventLeaseOffboarded)).Return(nil)

	updated, err := f.service.Offboard(ctx, "LEASE-00001", date("2024-02-01"))
	require.NoError(t, err)
	assert.Equal(t, date("2024-02-12"), updated.EndDate)
}

func TestLeaseService_AutorenewDue(t *testing.T) {
	f := newLeaseFixture("2024-02-01")
	ctx := context.Background()

	due := billedLease("LEASE-00001", "2024-02-12")
	notYet := billedLease("LEASE-00002", "2024-03-30")
	expired := billedLease("LEASE-00003", "2024-01-31")
	expired.EndDate = date("2024-01-31")
	f.leases.On("ListSubmitted", ctx).Return([]domain.Lease{*due, *notYet, *expired}, nil)
	f.leases.On("Save", ctx, mock.MatchedBy(func(l *domain.Lease) bool { return l.Name == "LEASE-00001" })).Return(nil).Once()
	f.producer.On("Publish", ctx, "lease_events", "LEASE-00001", mock.MatchedBy(func(e kafka.Event) bool {
		return e.Type == kafka.EventPeriodInvoiced && e.Details["start_date"] == "2024-02-13" && e.Details["end_date"] == "2024-03-12"
	})).Return(nil).Once()

	renewed, err := f.service.AutorenewDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, renewed)
	f.leases.AssertExpectations(t)
	f.producer.AssertExpectations(t)
}

func TestLeaseService_AutorenewDueReloadsModifiedLease(t *testing.T) {
	f := newLeaseFixture("2024-02-01")
	ctx := context.Background()

	stale := billedLease("LEASE-00001", "2024-02-12")
	paid := billedLease("LEASE-00001", "2024-02-12")
	paid.Periods[0].Invoice.OutstandingCents = 0
	paid.Payments = []domain.Payment{{Name: "PAY-1", AmountCents: 40000, PaymentDate: date("2024-01-31")}}

	f.leases.On("ListSubmitted", ctx).Return([]domain.Lease{*stale}, nil)
	f.leases.On("Save", ctx, mock.Anything).Return(repository.ErrLeaseModified).Once()
	f.leases.On("Get", ctx, "LEASE-00001").Return(paid, nil).Once()
	f.leases.On("Save", ctx, mock.MatchedBy(func(l *domain.Lease) bool {
		return len(l.Periods) == 2 && l.Periods[0].Invoice.OutstandingCents == 0 && len(l.Payments) == 1
	})).Return(nil).Once()
	f.producer.On("Publish", ctx, "lease_events", "LEASE-00001", eventOfType(kafka.EventPeriodInvoiced)).Return(nil).Once()

	renewed, err := f.service.AutorenewDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, renewed)
	assert.Equal(t, int64(40000), paid.OutstandingBalance())
	f.leases.AssertExpectations(t)
	f.producer.AssertExpectations(t)
}

func TestLeaseService_AutorenewDueGivesUpAfterSecondConflict(t *testing.T) {
	f := newLeaseFixture("2024-02-01")
	ctx := context.Background()

	f.leases.On("ListSubmitted", ctx).Return([]domain.Lease{*billedLease("LEASE-00001", "2024-02-12")}, nil)
	f.leases.On("Get", ctx, "LEASE-00001").Return(billedLease("LEASE-00001", "2024-02-12"), nil).Once()
	f.leases.On("Save", ctx, mock.Anything).Return(repository.ErrLeaseModified).Twice()

	renewed, err := f.service.AutorenewDue(ctx)
	assert.Equal(t, 0, renewed)
	assert.ErrorIs(t, err, repository.ErrLeaseModified)
	f.leases.AssertExpectations(t)
}

func TestLeaseService_AutorenewDueCollectsErrors(t *testing.T) {
	f := newLeaseFixture("2024-02-01")
	ctx := context.Background()

	f.leases.On("ListSubmitted", ctx).Return([]domain.Lease{*billedLease("LEASE-00001", "2024-02-12")}, nil)
	f.leases.On("Save", ctx, mock.Anything).Return(errors.New("db down"))

	renewed, err := f.service.AutorenewDue(ctx)
	assert.Equal(t, 0, renewed)
	assert.ErrorContains(t, err, "db down")
}

func TestLeaseService_RemindTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		f := newLeaseFixture("2024-02-01")
		f.settings.settings.EnablePaymentReminders = false

		sent, err := f.service.RemindTenant(ctx, "LEASE-00001")
		require.NoError(t, err)
		assert.False(t, sent)
		f.leases.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("unpaid period", func(t *testing.T) {
		f := newLeaseFixture("2024-02-01")
		f.leases.On("Get", ctx, "LEASE-00001").Return(billedLease("LEASE-00001", "2024-02-12"), nil)
		f.shops.On("Get", ctx, "SHOP-00001").Return(&domain.Shop{Name: "SHOP-00001", ContactEmail: "shop@example.com"}, nil)
		f.producer.On("Publish", ctx, "notifications", "LEASE-00001", mock.MatchedBy(func(e kafka.Event) bool {
			return e.Type == kafka.EventRentReminder && e.Email == "shop@example.com" && e.Status == string(domain.LeaseStatusOverdue)
		})).Return(nil).Once()

		sent, err := f.service.RemindTenant(ctx, "LEASE-00001")
		require.NoError(t, err)
		assert.True(t, sent)
		f.producer.AssertExpectations(t)
	})

	t.Run("fully paid", func(t *testing.T) {
		f := newLeaseFixture("2024-02-01")
		lease := billedLease("LEASE-00001", "2024-02-12")
		lease.Periods[0].Invoice.OutstandingCents = 0
		f.leases.On("Get", ctx, "LEASE-00001").Return(lease, nil)

		sent, err := f.service.RemindTenant(ctx, "LEASE-00001")
		require.NoError(t, err)
		assert.False(t, sent)
	})
}

func TestLeaseService_SendReminders(t *testing.T) {
	f := newLeaseFixture("2024-02-01")
	ctx := context.Background()

	withMail := billedLease("LEASE-00001", "2024-02-12")
	noMail := billedLease("LEASE-00002", "2024-02-12")
	noMail.LeasedTo = "SHOP-00002"
	f.leases.On("ListSubmitted", ctx).Return([]domain.Lease{*withMail, *noMail}, nil)
	f.shops.On("Get", ctx, "SHOP-00001").Return(&domain.Shop{Name: "SHOP-00001", ContactEmail: "shop@example.com"}, nil)
	f.shops.On("Get", ctx, "SHOP-00002").Return(&domain.Shop{Name: "SHOP-00002"}, nil)
	f.producer.On("Publish", ctx, "notifications", "LEASE-00001", eventOfType(kafka.EventRentReminder)).Return(nil).Once()

	sent, err := f.service.SendReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	f.producer.AssertExpectations(t)
}
