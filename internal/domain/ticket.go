package domain

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
)

type TicketStatus string

const (
	TicketStatusBooked    TicketStatus = "Booked"
	TicketStatusCheckedIn TicketStatus = "Checked-In"
	TicketStatusBoarded   TicketStatus = "Boarded"
)

var ticketStatusOrder = map[TicketStatus]int{
	TicketStatusBooked:    0,
	TicketStatusCheckedIn: 1,
	TicketStatusBoarded:   2,
}

func (s TicketStatus) Valid() bool {
	_, ok := ticketStatusOrder[s]
	return ok
}

type AddOn struct {
	Item        string `json:"item"`
	AmountCents int64  `json:"amount_cents"`
}

type Ticket struct {
	Name                   string       `json:"name"`
	Passenger              string       `json:"passenger"`
	Flight                 string       `json:"flight"`
	FlightPriceCents       int64        `json:"flight_price_cents"`
	AddOns                 []AddOn      `json:"add_ons"`
	TotalAmountCents       int64        `json:"total_amount_cents"`
	Seat                   string       `json:"seat"`
	GateNumber             string       `json:"gate_number"`
	SourceAirportCode      string       `json:"source_airport_code"`
	DestinationAirportCode string       `json:"destination_airport_code"`
	DepartureDate          time.Time    `json:"departure_date"`
	DepartureTime          string       `json:"departure_time"`
	DurationSeconds        int64        `json:"duration_seconds"`
	Status                 TicketStatus `json:"status"`
	DocStatus              DocStatus    `json:"docstatus"`
	CreatedAt              time.Time    `json:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at"`
}

// ApplyFlight copies the flight details a ticket displays.
func (t *Ticket) ApplyFlight(f *Flight) {
	t.Flight = f.Name
	t.FlightPriceCents = f.PriceCents
	t.GateNumber = f.GateNumber
	t.SourceAirportCode = f.SourceAirportCode
	t.DestinationAirportCode = f.DestinationAirportCode
	t.DepartureDate = f.DateOfDeparture
	t.DepartureTime = f.TimeOfDeparture
	t.DurationSeconds = f.DurationSeconds
}

// Validate drops duplicate add-ons and recomputes the total.
func (t *Ticket) Validate() error {
	if t.Passenger == "" {
		return apperr.Validation("passenger is required")
	}
	if t.Flight == "" {
		return apperr.Validation("flight is required")
	}
	if t.Status == "" {
		t.Status = TicketStatusBooked
	}
	if !t.Status.Valid() {
		return apperr.Validation("unknown ticket status %q", t.Status)
	}
	for _, a := range t.AddOns {
		if a.Item == "" {
			return apperr.Validation("add-on item is required")
		}
		if a.AmountCents < 0 {
			return apperr.Validation("add-on %s amount cannot be negative", a.Item)
		}
	}
	t.RemoveDuplicateAddOns()
	t.TotalAmountCents = t.TotalPrice()
	return nil
}

// RemoveDuplicateAddOns keeps the first add-on per item and returns the removed ones.
func (t *Ticket) RemoveDuplicateAddOns() []AddOn {
	duplicates, uniques := FindDuplicatesByItem(t.AddOns)
	t.AddOns = uniques
	return duplicates
}

func (t *Ticket) TotalPrice() int64 {
	total := t.FlightPriceCents
	for _, a := range t.AddOns {
		total += a.AmountCents
	}
	return total
}

// SetStatus moves the ticket forward through Booked, Checked-In and Boarded.
func (t *Ticket) SetStatus(status TicketStatus) error {
	if err := t.DocStatus.CheckEditable("Airplane Ticket", t.Name); err != nil {
		return err
	}
	if !status.Valid() {
		return apperr.Validation("unknown ticket status %q", status)
	}
	if ticketStatusOrder[status] < ticketStatusOrder[t.Status] {
		return apperr.InvalidState("ticket %s cannot go back from %s to %s", t.Name, t.Status, status)
	}
	t.Status = status
	return nil
}

// Submit is only possible once the passenger boarded.
func (t *Ticket) Submit() error {
	if err := t.DocStatus.CheckSubmit("Airplane Ticket", t.Name); err != nil {
		return err
	}
	if t.Status != TicketStatusBoarded {
		return apperr.Validation("ticket %s can only be submitted once Boarded, status is %s", t.Name, t.Status)
	}
	t.DocStatus = DocStatusSubmitted
	return nil
}

func (t *Ticket) Cancel() error {
	if err := t.DocStatus.CheckCancel("Airplane Ticket", t.Name); err != nil {
		return err
	}
	t.DocStatus = DocStatusCancelled
	return nil
}

// ValidateGate checks the ticket still shows the flight's gate.
func (t *Ticket) ValidateGate(flightGate string) error {
	if t.GateNumber != "" && t.GateNumber != flightGate {
		return apperr.Validation("ticket %s shows gate %s but flight %s boards at %s", t.Name, t.GateNumber, t.Flight, flightGate)
	}
	return nil
}

// FindDuplicatesByItem splits add-ons into repeated items and first occurrences.
func FindDuplicatesByItem(addOns []AddOn) (duplicates, uniques []AddOn) {
	seen := make(map[string]struct{}, len(addOns))
	uniques = make([]AddOn, 0, len(addOns))
	for _, a := range addOns {
		if _, ok := seen[a.Item]; ok {
			duplicates = append(duplicates, a)
			continue
		}
		seen[a.Item] = struct{}{}
		uniques = append(uniques, a)
	}
	return duplicates, uniques
}

const (
	SeatRows    = 100
	SeatColumns = "ABCDE"
)

var seatPattern = regexp.MustCompile(`^([1-9][0-9]?|100)[A-E]$`)

// RandomSeat returns a seat like "42C".
func RandomSeat(r *rand.Rand) string {
	row := r.IntN(SeatRows) + 1
	col := SeatColumns[r.IntN(len(SeatColumns))]
	return fmt.Sprintf("%d%c", row, col)
}

func ValidSeat(seat string) bool {
	return seatPattern.MatchString(seat)
}
