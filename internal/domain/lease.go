package domain

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
)

type PeriodLength string

const (
	PeriodMonthly   PeriodLength = "Monthly"
	PeriodQuarterly PeriodLength = "Quarterly"
)

// Weeks is the billing length of one period.
func (p PeriodLength) Weeks() int {
	switch p {
	case PeriodMonthly:
		return 4
	case PeriodQuarterly:
		return 12
	default:
		return 0
	}
}

type LeaseStatus string

const (
	LeaseStatusDraft     LeaseStatus = "Draft"
	LeaseStatusActive    LeaseStatus = "Active"
	LeaseStatusOverdue   LeaseStatus = "Overdue"
	LeaseStatusExpired   LeaseStatus = "Expired"
	LeaseStatusCancelled LeaseStatus = "Cancelled"
)

type InvoiceStatus string

const (
	InvoiceStatusUnpaid     InvoiceStatus = "Unpaid"
	InvoiceStatusPartlyPaid InvoiceStatus = "Partly Paid"
	InvoiceStatusPaid       InvoiceStatus = "Paid"
	InvoiceStatusOverdue    InvoiceStatus = "Overdue"
)

const (
	InvoiceDueDays    = 14
	RenewalBufferDays = 14
)

// ErrLeaseFullyInvoiced is returned when every day of the lease already belongs to a period.
var ErrLeaseFullyInvoiced = apperr.InvalidState("lease is fully invoiced")

type Invoice struct {
	Name             string    `json:"name"`
	PostingDate      time.Time `json:"posting_date"`
	DueDate          time.Time `json:"due_date"`
	QtyWeeks         float64   `json:"qty_weeks"`
	RateCents        int64     `json:"rate_cents"`
	GrandTotalCents  int64     `json:"grand_total_cents"`
	OutstandingCents int64     `json:"outstanding_cents"`
}

func (i Invoice) Status(today time.Time) InvoiceStatus {
	switch {
	case i.OutstandingCents <= 0:
		return InvoiceStatusPaid
	case DateOf(i.DueDate).Before(DateOf(today)):
		return InvoiceStatusOverdue
	case i.OutstandingCents < i.GrandTotalCents:
		return InvoiceStatusPartlyPaid
	default:
		return InvoiceStatusUnpaid
	}
}

// Period is one billing window of a lease.
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Invoice   Invoice   `json:"invoice"`
}

func (p Period) Status(today time.Time) InvoiceStatus {
	return p.Invoice.Status(today)
}

type Allocation struct {
	Invoice     string `json:"invoice"`
	AmountCents int64  `json:"amount_cents"`
}

type Payment struct {
	Name        string       `json:"name"`
	PaymentDate time.Time    `json:"payment_date"`
	AmountCents int64        `json:"amount_cents"`
	ReferenceNo string       `json:"reference_no"`
	Allocations []Allocation `json:"allocations"`
}

type Lease struct {
	Name            string       `json:"name"`
	LeasingOf       string       `json:"leasing_of"`
	LeasedFrom      string       `json:"leased_from"`
	LeasedTo        string       `json:"leased_to"`
	StartDate       time.Time    `json:"start_date"`
	EndDate         time.Time    `json:"end_date"`
	PeriodLength    PeriodLength `json:"period_length"`
	RentalRateCents int64        `json:"rental_rate_cents"`
	Status          LeaseStatus  `json:"status"`
	DocStatus       DocStatus    `json:"docstatus"`
	Periods         []Period     `json:"periods"`
	Payments        []Payment    `json:"payments"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// TotalWeeks is the fractional number of weeks between two dates.
func TotalWeeks(start, end time.Time) float64 {
	days := DateOf(end).Sub(DateOf(start)).Hours() / 24
	return days / 7
}

// CalculateRenewalBuffer is the day renewal becomes due for a period ending on periodEnd.
func CalculateRenewalBuffer(periodEnd time.Time) time.Time {
	return AddDays(periodEnd, -RenewalBufferDays)
}

// Validate checks the lease fields. isNew additionally rejects backdated starts.
func (l *Lease) Validate(today time.Time, isNew bool) error {
	if l.LeasingOf == "" {
		return apperr.Validation("leasing of (room) is required")
	}
	if l.LeasedFrom == "" {
		return apperr.Validation("leased from (company) is required")
	}
	if l.LeasedTo == "" {
		return apperr.Validation("leased to (shop) is required")
	}
	if l.PeriodLength == "" {
		l.PeriodLength = PeriodMonthly
	}
	if l.PeriodLength.Weeks() == 0 {
		return apperr.Validation("period length must be Monthly or Quarterly, got %q", l.PeriodLength)
	}
	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return apperr.Validation("start and end dates are required")
	}
	if !DateOf(l.EndDate).After(DateOf(l.StartDate)) {
		return apperr.Validation("end date must be after start date")
	}
	if isNew && DateOf(l.StartDate).Before(DateOf(today)) {
		return apperr.Validation("start date cannot be in the past")
	}
	if l.Periods == nil {
		l.Periods = []Period{}
	}
	if l.Payments == nil {
		l.Payments = []Payment{}
	}
	return nil
}

// Overlaps reports whether both leases cover at least one common day.
func (l *Lease) Overlaps(other *Lease) bool {
	return !DateOf(l.StartDate).After(DateOf(other.EndDate)) && !DateOf(other.StartDate).After(DateOf(l.EndDate))
}

// LatestPeriod returns the period with the latest start, or nil.
func (l *Lease) LatestPeriod() *Period {
	if len(l.Periods) == 0 {
		return nil
	}
	latest := &l.Periods[0]
	for i := range l.Periods[1:] {
		p := &l.Periods[i+1]
		if p.StartDate.After(latest.StartDate) {
			latest = p
		}
	}
	return latest
}

// NextPeriodDates computes the window of the next period.
func (l *Lease) NextPeriodDates() (start, end time.Time, err error) {
	if latest := l.LatestPeriod(); latest == nil {
		start = DateOf(l.StartDate)
	} else {
		start = AddDays(latest.EndDate, 1)
	}
	if start.After(DateOf(l.EndDate)) {
		return time.Time{}, time.Time{}, ErrLeaseFullyInvoiced
	}
	end = MinDate(AddDays(start, 7*l.PeriodLength.Weeks()), DateOf(l.EndDate))
	return start, end, nil
}

// NextPeriod appends the next billing period together with its invoice.
func (l *Lease) NextPeriod(today time.Time) (*Period, error) {
	if l.PeriodLength.Weeks() == 0 {
		return nil, apperr.Validation("period length must be Monthly or Quarterly, got %q", l.PeriodLength)
	}
	start, end, err := l.NextPeriodDates()
	if err != nil {
		return nil, err
	}

	qty := TotalWeeks(start, end)
	total := int64(math.Round(qty * float64(l.RentalRateCents)))
	period := Period{
		StartDate: start,
		EndDate:   end,
		Invoice: Invoice{
			Name:             fmt.Sprintf("SINV-%s-%02d", l.Name, len(l.Periods)+1),
			PostingDate:      DateOf(today),
			DueDate:          AddDays(today, InvoiceDueDays),
			QtyWeeks:         qty,
			RateCents:        l.RentalRateCents,
			GrandTotalCents:  total,
			OutstandingCents: total,
		},
	}
	l.Periods = append(l.Periods, period)
	return &l.Periods[len(l.Periods)-1], nil
}

// Submit freezes the lease and bills its first period.
func (l *Lease) Submit(today time.Time, rentalRateCents int64) (*Period, error) {
	if err := l.DocStatus.CheckSubmit("Lease", l.Name); err != nil {
		return nil, err
	}
	l.RentalRateCents = rentalRateCents
	period, err := l.NextPeriod(today)
	if err != nil {
		return nil, err
	}
	l.DocStatus = DocStatusSubmitted
	l.SetStatus(today)
	return period, nil
}

func (l *Lease) Cancel(today time.Time) error {
	if err := l.DocStatus.CheckCancel("Lease", l.Name); err != nil {
		return err
	}
	l.DocStatus = DocStatusCancelled
	l.SetStatus(today)
	return nil
}

// UnpaidPeriods returns the periods whose invoice still has an outstanding amount.
func (l *Lease) UnpaidPeriods(today time.Time) []Period {
	var unpaid []Period
	for _, p := range l.Periods {
		if p.Status(today) != InvoiceStatusPaid {
			unpaid = append(unpaid, p)
		}
	}
	return unpaid
}

func (l *Lease) TotalOwing() int64 {
	var sum int64
	for _, p := range l.Periods {
		sum += p.Invoice.GrandTotalCents
	}
	return sum
}

func (l *Lease) TotalPaid() int64 {
	var sum int64
	for _, p := range l.Payments {
		sum += p.AmountCents
	}
	return sum
}

func (l *Lease) OutstandingBalance() int64 {
	var sum int64
	for _, p := range l.Periods {
		sum += p.Invoice.OutstandingCents
	}
	return sum
}

// SetStatus derives the lease status from its docstatus, periods and dates.
func (l *Lease) SetStatus(today time.Time) {
	switch l.DocStatus {
	case DocStatusDraft:
		l.Status = LeaseStatusDraft
		return
	case DocStatusCancelled:
		l.Status = LeaseStatusCancelled
		return
	}
	for _, p := range l.Periods {
		if p.Status(today) == InvoiceStatusOverdue {
			l.Status = LeaseStatusOverdue
			return
		}
	}
	if DateOf(l.EndDate).Before(DateOf(today)) {
		l.Status = LeaseStatusExpired
		return
	}
	l.Status = LeaseStatusActive
}

// RenewDate is the renewal buffer of the latest period end.
func (l *Lease) RenewDate() (time.Time, bool) {
	latest := l.LatestPeriod()
	if latest == nil {
		return time.Time{}, false
	}
	return CalculateRenewalBuffer(latest.EndDate), true
}

// DueForRenewal reports whether autorenew should bill the next period today.
func (l *Lease) DueForRenewal(today time.Time) bool {
	if l.DocStatus != DocStatusSubmitted {
		return false
	}
	renew, ok := l.RenewDate()
	if !ok {
		return false
	}
	if DateOf(today).Before(renew) {
		return false
	}
	return l.LatestPeriod().EndDate.Before(DateOf(l.EndDate))
}

// ReceivePayment records a payment and allocates it to unpaid invoices, oldest first.
func (l *Lease) ReceivePayment(payment Payment, today time.Time) error {
	if l.DocStatus != DocStatusSubmitted {
		return apperr.InvalidState("lease %s is %s and cannot receive payments", l.Name, l.DocStatus)
	}
	if len(l.Periods) == 0 {
		return apperr.Validation("lease %s has no invoice to pay", l.Name)
	}
	if payment.AmountCents <= 0 {
		return apperr.Validation("payment amount must be positive")
	}
	if outstanding := l.OutstandingBalance(); payment.AmountCents > outstanding {
		return apperr.Validation("payment of %d exceeds outstanding balance of %d", payment.AmountCents, outstanding)
	}

	order := make([]int, len(l.Periods))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return l.Periods[order[a]].StartDate.Before(l.Periods[order[b]].StartDate)
	})

	remaining := payment.AmountCents
	payment.Allocations = payment.Allocations[:0]
	for _, idx := range order {
		if remaining == 0 {
			break
		}
		inv := &l.Periods[idx].Invoice
		if inv.OutstandingCents == 0 {
			continue
		}
		applied := min(remaining, inv.OutstandingCents)
		inv.OutstandingCents -= applied
		remaining -= applied
		payment.Allocations = append(payment.Allocations, Allocation{Invoice: inv.Name, AmountCents: applied})
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = DateOf(today)
	}
	l.Payments = append(l.Payments, payment)
	l.SetStatus(today)
	return nil
}

// Offboard ends the lease early. The end date never cuts into a billed period.
func (l *Lease) Offboard(date, today time.Time) error {
	if l.DocStatus != DocStatusSubmitted {
		return apperr.InvalidState("lease %s is %s and cannot be offboarded", l.Name, l.DocStatus)
	}
	end := DateOf(date)
	if latest := l.LatestPeriod(); latest != nil {
		end = MaxDate(end, DateOf(latest.EndDate))
	}
	if end.After(DateOf(l.EndDate)) {
		return apperr.Validation("offboarding date is after the lease end date")
	}
	l.EndDate = end
	l.SetStatus(today)
	return nil
}
