package leasing

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/kafka"
	"github.com/Domenick1991/airplanemode/internal/logging"
	"github.com/Domenick1991/airplanemode/internal/metrics"
	"github.com/Domenick1991/airplanemode/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const leaseDoctype = "Lease"

type LeaseUseCase interface {
	Create(ctx context.Context, input CreateLeaseInput) (*domain.Lease, error)
	Get(ctx context.Context, name string) (*domain.Lease, error)
	List(ctx context.Context) ([]domain.Lease, error)
	Update(ctx context.Context, name string, input UpdateLeaseInput) (*domain.Lease, error)
	Submit(ctx context.Context, name string) (*domain.Lease, error)
	Cancel(ctx context.Context, name string) (*domain.Lease, error)
	NextPeriod(ctx context.Context, name string) (*domain.Lease, error)
	ReceivePayment(ctx context.Context, name string, input ReceivePaymentInput) (*domain.Lease, error)
	DeletePayment(ctx context.Context, name, payment string) error
	Offboard(ctx context.Context, name string, date time.Time) (*domain.Lease, error)
	RemindTenant(ctx context.Context, name string) (bool, error)
	AutorenewDue(ctx context.Context) (int, error)
	SendReminders(ctx context.Context) (int, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateLeaseInput struct {
	LeasingOf    string              `json:"leasing_of" validate:"required"`
	LeasedFrom   string              `json:"leased_from" validate:"required"`
	LeasedTo     string              `json:"leased_to" validate:"required"`
	StartDate    time.Time           `json:"start_date" validate:"required"`
	EndDate      time.Time           `json:"end_date" validate:"required"`
	PeriodLength domain.PeriodLength `json:"period_length" validate:"omitempty,oneof=Monthly Quarterly"`
}

type UpdateLeaseInput struct {
	LeasedFrom   *string              `json:"leased_from"`
	StartDate    *time.Time           `json:"start_date"`
	EndDate      *time.Time           `json:"end_date"`
	PeriodLength *domain.PeriodLength `json:"period_length" validate:"omitempty,oneof=Monthly Quarterly"`
}

type ReceivePaymentInput struct {
	AmountCents int64      `json:"amount_cents"`
	ReferenceNo string     `json:"reference_no" validate:"max=140"`
	PaymentDate *time.Time `json:"payment_date"`
}

type LeaseService struct {
	leases             repository.LeaseRepository
	rooms              repository.RoomRepository
	shops              repository.ShopRepository
	settings           SettingsUseCase
	pages              PageCache
	producer           Producer
	leaseTopic         string
	notificationsTopic string
	metrics            *metrics.MetricsRegistry
	validate           *validator.Validate
	now                func() time.Time
}

type LeaseServiceOption func(*LeaseService)

// WithEvents publishes lease events on leaseTopic and tenant mail on notificationsTopic.
func WithEvents(producer Producer, leaseTopic, notificationsTopic string) LeaseServiceOption {
	return func(s *LeaseService) {
		s.producer = producer
		s.leaseTopic = leaseTopic
		s.notificationsTopic = notificationsTopic
	}
}

func WithMetrics(m *metrics.MetricsRegistry) LeaseServiceOption {
	return func(s *LeaseService) {
		s.metrics = m
	}
}

func WithPageCache(pages PageCache) LeaseServiceOption {
	return func(s *LeaseService) {
		s.pages = pages
	}
}

func NewLeaseService(
	leases repository.LeaseRepository,
	rooms repository.RoomRepository,
	shops repository.ShopRepository,
	settings SettingsUseCase,
	opts ...LeaseServiceOption,
) *LeaseService {
	s := &LeaseService{
		leases:   leases,
		rooms:    rooms,
		shops:    shops,
		settings: settings,
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LeaseService) today() time.Time {
	return domain.DateOf(s.now())
}

func (s *LeaseService) Create(ctx context.Context, input CreateLeaseInput) (*domain.Lease, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperr.New(apperr.CodeValidation, "invalid lease", err)
	}
	if _, err := s.shops.Get(ctx, input.LeasedTo); err != nil {
		return nil, err
	}

	lease := &domain.Lease{
		LeasingOf:    input.LeasingOf,
		LeasedFrom:   input.LeasedFrom,
		LeasedTo:     input.LeasedTo,
		StartDate:    domain.DateOf(input.StartDate),
		EndDate:      domain.DateOf(input.EndDate),
		PeriodLength: input.PeriodLength,
	}
	if err := s.check(ctx, lease, true); err != nil {
		return nil, err
	}
	lease.SetStatus(s.today())
	if err := s.leases.Create(ctx, lease); err != nil {
		return nil, err
	}
	s.refreshRoom(ctx, lease.LeasingOf)
	return lease, nil
}

func (s *LeaseService) Get(ctx context.Context, name string) (*domain.Lease, error) {
	lease, err := s.leases.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	lease.SetStatus(s.today())
	return lease, nil
}

// List returns lease headers with their status recomputed for today.
func (s *LeaseService) List(ctx context.Context) ([]domain.Lease, error) {
	leases, err := s.leases.List(ctx)
	if err != nil {
		return nil, err
	}
	today := s.today()
	for i := range leases {
		leases[i].SetStatus(today)
	}
	return leases, nil
}

// Update edits a draft lease.
func (s *LeaseService) Update(ctx context.Context, name string, input UpdateLeaseInput) (*domain.Lease, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperr.New(apperr.CodeValidation, "invalid lease", err)
	}
	lease, err := s.leases.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := lease.DocStatus.CheckEditable(leaseDoctype, name); err != nil {
		return nil, err
	}
	if input.LeasedFrom != nil {
		lease.LeasedFrom = *input.LeasedFrom
	}
	if input.StartDate != nil {
		lease.StartDate = domain.DateOf(*input.StartDate)
	}
	if input.EndDate != nil {
		lease.EndDate = domain.DateOf(*input.EndDate)
	}
	if input.PeriodLength != nil {
		lease.PeriodLength = *input.PeriodLength
	}
	if err := s.check(ctx, lease, input.StartDate != nil); err != nil {
		return nil, err
	}
	if err := s.leases.Save(ctx, lease); err != nil {
		return nil, err
	}
	return lease, nil
}

// Submit bills the first period at the room rate, or the default rate when the room has none.
func (s *LeaseService) Submit(ctx context.Context, name string) (*domain.Lease, error) {
	lease, err := s.leases.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, lease, false); err != nil {
		return nil, err
	}
	room, err := s.rooms.Get(ctx, lease.LeasingOf)
	if err != nil {
		return nil, err
	}
	rate := room.RentalRateCents
	if rate == 0 {
		settings, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		rate = settings.DefaultRentalRateCents
	}

	period, err := lease.Submit(s.today(), rate)
	if err != nil {
		return nil, err
	}
	if err := s.leases.Save(ctx, lease); err != nil {
		return nil, err
	}
	s.refreshRoom(ctx, lease.LeasingOf)
	invalidatePages(ctx, s.pages)

	s.publish(ctx, kafka.EventLeaseSubmitted, lease, "", 0, nil)
	s.periodInvoiced(ctx, lease, period)
	return lease, nil
}

func (s *LeaseService) Cancel(ctx context.Context, name string) (*domain.Lease, error) {
	lease, err := s.leases.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := lease.Cancel(s.today()); err != nil {
		return nil, err
	}
	if err := s.leases.Save(ctx, lease); err != nil {
		return nil, err
	}
	s.refreshRoom(ctx, lease.LeasingOf)
	invalidatePages(ctx, s.pages)
	s.publish(ctx, kafka.EventLeaseCancelled, lease, "", 0, nil)
	return lease, nil
}

// NextPeriod bills the next period of a submitted lease right away.
func (s *LeaseService) NextPeriod(ctx context.Context, name string) (*domain.Lease, error) {
	lease, err := s.leases.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if lease.DocStatus != domain.DocStatusSubmitted {
		return nil, apperr.InvalidState("lease %s is %s, only submitted leases are billed", name, lease.DocStatus)
	}
	if err := s.invoiceNext(ctx, lease); err != nil {
		return nil, err
	}
	return lease, nil
}

func (s *LeaseService) invoiceNext(ctx context.Context, lease *domain.Lease) error {
	today := s.today()
	period, err := lease.NextPeriod(today)
	if err != nil {
		return err
	}
	lease.SetStatus(today)
	if err := s.leases.Save(ctx, lease); err != nil {
		return err
	}
	s.periodInvoiced(ctx, lease, period)
	return nil
}

func (s *LeaseService) ReceivePayment(ctx context.Context, name string, input ReceivePaymentInput) (*domain.Lease, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperr.New(apperr.CodeValidation, "invalid payment", err)
	}
	lease, err := s.leases.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	payment := domain.Payment{
		Name:        "PAY-" + uuid.NewString(),
		AmountCents: input.AmountCents,
		ReferenceNo: input.ReferenceNo,
	}
	if input.PaymentDate != nil {
		payment.PaymentDate = domain.DateOf(*input.PaymentDate)
	}
	if err := lease.ReceivePayment(payment, s.today()); err != nil {
		return nil, err
	}
	if err := s.leases.Save(ctx, lease); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.LeasePaymentsReceived.Add(float64(payment.AmountCents))
	}
	s.publish(ctx, kafka.EventPaymentReceived, lease, "", payment.AmountCents, map[string]string{
		"payment":      payment.Name,
		"reference_no": payment.ReferenceNo,
	})
	return lease, nil
}

// DeletePayment always fails: recorded payments are permanent.
func (s *LeaseService) DeletePayment(ctx context.Context, name, payment string) error {
	if _, err := s.leases.Get(ctx, name); err != nil {
		return err
	}
	return apperr.Validation("cannot delete lease payments")
}

// Offboard ends the lease at date so no further periods are billed.
func (s *LeaseService) Offboard(ctx context.Context, name string, date time.Time) (*domain.Lease, error) {
	lease, err := s.leases.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := lease.Offboard(date, s.today()); err != nil {
		return nil, err
	}
	if err := s.leases.Save(ctx, lease); err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventLeaseOffboarded, lease, "", 0, map[string]string{"end_date": lease.EndDate.Format(domain.DateLayout)})
	return lease, nil
}

// RemindTenant sends a rent reminder when reminders are enabled and the lease has unpaid periods.
// It reports whether a reminder went out.
func (s *LeaseService) RemindTenant(ctx context.Context, name string) (bool, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return false, err
	}
	if !settings.EnablePaymentReminders {
		return false, nil
	}
	lease, err := s.leases.Get(ctx, name)
	if err != nil {
		return false, err
	}
	return s.remind(ctx, lease)
}

func (s *LeaseService) remind(ctx context.Context, lease *domain.Lease) (bool, error) {
	today := s.today()
	unpaid := lease.UnpaidPeriods(today)
	if len(unpaid) == 0 {
		return false, nil
	}
	shop, err := s.shops.Get(ctx, lease.LeasedTo)
	if err != nil {
		return false, err
	}
	if shop.ContactEmail == "" {
		logging.Warn("shop has no contact email, skipping rent reminder", "lease", lease.Name, "shop", shop.Name)
		return false, nil
	}

	lease.SetStatus(today)
	event := s.event(kafka.EventRentReminder, lease, shop.ContactEmail, lease.OutstandingBalance(), map[string]string{
		"shop":           shop.Name,
		"unpaid_periods": strconv.Itoa(len(unpaid)),
	})
	if err := s.send(ctx, s.notificationsTopic, lease.Name, event); err != nil {
		return false, err
	}
	if s.metrics != nil {
		s.metrics.RentRemindersSent.Inc()
	}
	return true, nil
}

// AutorenewDue bills the next period of every running lease whose renew date has come.
func (s *LeaseService) AutorenewDue(ctx context.Context) (int, error) {
	leases, err := s.leases.ListSubmitted(ctx)
	if err != nil {
		return 0, err
	}
	today := s.today()
	renewed := 0
	var errs []error
	for i := range leases {
		ok, err := s.renew(ctx, &leases[i], today)
		if err != nil {
			logging.Error("failed to renew lease", "lease", leases[i].Name, "error", err)
			errs = append(errs, err)
			continue
		}
		if ok {
			renewed++
		}
	}
	logging.Info("lease autorenew finished", "renewed", renewed, "failed", len(errs))
	return renewed, errors.Join(errs...)
}

// renew bills the next period when the lease is due. A lease saved by another
// request since the batch loaded it is reloaded once and checked again.
func (s *LeaseService) renew(ctx context.Context, lease *domain.Lease, today time.Time) (bool, error) {
	for attempt := 1; ; attempt++ {
		if lease.EndDate.Before(today) || !lease.DueForRenewal(today) {
			return false, nil
		}
		err := s.invoiceNext(ctx, lease)
		if err == nil {
			return true, nil
		}
		if attempt > 1 || !errors.Is(err, repository.ErrLeaseModified) {
			return false, err
		}
		logging.Debug("lease changed during autorenew, reloading", "lease", lease.Name)
		if lease, err = s.leases.Get(ctx, lease.Name); err != nil {
			return false, err
		}
	}
}

// SendReminders reminds every tenant with unpaid periods.
func (s *LeaseService) SendReminders(ctx context.Context) (int, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return 0, err
	}
	if !settings.EnablePaymentReminders {
		logging.Debug("payment reminders disabled")
		return 0, nil
	}
	leases, err := s.leases.ListSubmitted(ctx)
	if err != nil {
		return 0, err
	}
	sent := 0
	var errs []error
	for i := range leases {
		ok, err := s.remind(ctx, &leases[i])
		if err != nil {
			logging.Error("failed to remind tenant", "lease", leases[i].Name, "error", err)
			errs = append(errs, err)
			continue
		}
		if ok {
			sent++
		}
	}
	logging.Info("rent reminders sent", "sent", sent, "failed", len(errs))
	return sent, errors.Join(errs...)
}

// check validates the lease and its room, and rejects overlaps with other submitted leases.
func (s *LeaseService) check(ctx context.Context, lease *domain.Lease, newDates bool) error {
	if err := lease.Validate(s.today(), newDates); err != nil {
		return err
	}
	room, err := s.rooms.Get(ctx, lease.LeasingOf)
	if err != nil {
		return err
	}
	if err := room.Leasable(); err != nil {
		return err
	}
	others, err := s.leases.ListByRoom(ctx, lease.LeasingOf)
	if err != nil {
		return err
	}
	for i := range others {
		other := &others[i]
		if other.Name == lease.Name || other.DocStatus != domain.DocStatusSubmitted {
			continue
		}
		if lease.Overlaps(other) {
			return apperr.Conflict("room %s is already leased by %s from %s to %s", room.Name, other.Name,
				other.StartDate.Format(domain.DateLayout), other.EndDate.Format(domain.DateLayout))
		}
	}
	return nil
}

func (s *LeaseService) refreshRoom(ctx context.Context, room string) {
	if err := refreshRoomStatus(ctx, s.rooms, s.leases, room); err != nil {
		logging.Warn("failed to refresh room status", "room", room, "error", err)
	}
}

func (s *LeaseService) periodInvoiced(ctx context.Context, lease *domain.Lease, period *domain.Period) {
	if s.metrics != nil {
		s.metrics.LeasePeriodsInvoiced.Inc()
	}
	s.publish(ctx, kafka.EventPeriodInvoiced, lease, "", period.Invoice.GrandTotalCents, map[string]string{
		"invoice":    period.Invoice.Name,
		"start_date": period.StartDate.Format(domain.DateLayout),
		"end_date":   period.EndDate.Format(domain.DateLayout),
		"due_date":   period.Invoice.DueDate.Format(domain.DateLayout),
	})
}

func (s *LeaseService) event(eventType string, lease *domain.Lease, email string, amount int64, details map[string]string) kafka.Event {
	if details == nil {
		details = map[string]string{}
	}
	details["room"] = lease.LeasingOf
	details["shop"] = lease.LeasedTo
	return kafka.Event{
		Type:        eventType,
		Doctype:     leaseDoctype,
		Name:        lease.Name,
		Email:       email,
		Status:      string(lease.Status),
		AmountCents: amount,
		OccurredAt:  s.now().UTC(),
		Details:     details,
	}
}

// publish is best effort: a broker failure never fails the lease operation.
func (s *LeaseService) publish(ctx context.Context, eventType string, lease *domain.Lease, email string, amount int64, details map[string]string) {
	if err := s.send(ctx, s.leaseTopic, lease.Name, s.event(eventType, lease, email, amount, details)); err != nil {
		logging.Warn("failed to publish lease event", "type", eventType, "lease", lease.Name, "error", err)
	}
}

func (s *LeaseService) send(ctx context.Context, topic, key string, event kafka.Event) error {
	if s.producer == nil || topic == "" {
		return nil
	}
	return s.producer.Publish(ctx, topic, key, event)
}

var _ LeaseUseCase = (*LeaseService)(nil)
