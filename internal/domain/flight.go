package domain

import (
	"strings"
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
)

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "Scheduled"
	FlightStatusCompleted FlightStatus = "Completed"
	FlightStatusCancelled FlightStatus = "Cancelled"
)

const DepartureTimeLayout = "15:04"

type Flight struct {
	Name                   string       `json:"name"`
	Airplane               string       `json:"airplane"`
	SourceAirport          string       `json:"source_airport"`
	SourceAirportCode      string       `json:"source_airport_code"`
	DestinationAirport     string       `json:"destination_airport"`
	DestinationAirportCode string       `json:"destination_airport_code"`
	DateOfDeparture        time.Time    `json:"date_of_departure"`
	TimeOfDeparture        string       `json:"time_of_departure"`
	DurationSeconds        int64        `json:"duration_seconds"`
	GateNumber             string       `json:"gate_number"`
	Status                 FlightStatus `json:"status"`
	Crew                   []int64      `json:"crew"`
	Published              bool         `json:"published"`
	Route                  string       `json:"route"`
	PriceCents             int64        `json:"price_cents"`
	DocStatus              DocStatus    `json:"docstatus"`
	CreatedAt              time.Time    `json:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at"`
}

func (f *Flight) Validate() error {
	if f.Airplane == "" {
		return apperr.Validation("airplane is required")
	}
	if f.SourceAirport == "" || f.DestinationAirport == "" {
		return apperr.Validation("source and destination airports are required")
	}
	if f.SourceAirport == f.DestinationAirport {
		return apperr.Validation("source and destination airports must differ")
	}
	if f.DateOfDeparture.IsZero() {
		return apperr.Validation("date of departure is required")
	}
	if _, err := time.Parse(DepartureTimeLayout, f.TimeOfDeparture); err != nil {
		return apperr.Validation("time of departure %q must be HH:MM", f.TimeOfDeparture)
	}
	if f.DurationSeconds <= 0 {
		return apperr.Validation("duration must be positive")
	}
	if strings.TrimSpace(f.GateNumber) == "" {
		return apperr.Validation("gate number is required")
	}
	if f.PriceCents < 0 {
		return apperr.Validation("price cannot be negative")
	}
	if f.Status == "" {
		f.Status = FlightStatusScheduled
	}
	if f.Crew == nil {
		f.Crew = []int64{}
	}
	return nil
}

// SetRoute derives the public page route from the flight name.
func (f *Flight) SetRoute() {
	f.Route = "flights/" + strings.ToLower(f.Name)
}

// Departure combines the departure date and time.
func (f *Flight) Departure() time.Time {
	t, err := time.Parse(DepartureTimeLayout, f.TimeOfDeparture)
	if err != nil {
		return DateOf(f.DateOfDeparture)
	}
	return DateOf(f.DateOfDeparture).Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}

// Submit marks the flight as flown.
func (f *Flight) Submit() error {
	if err := f.DocStatus.CheckSubmit("Airplane Flight", f.Name); err != nil {
		return err
	}
	f.Status = FlightStatusCompleted
	f.DocStatus = DocStatusSubmitted
	return nil
}

func (f *Flight) Cancel() error {
	if err := f.DocStatus.CheckCancel("Airplane Flight", f.Name); err != nil {
		return err
	}
	f.Status = FlightStatusCancelled
	f.DocStatus = DocStatusCancelled
	return nil
}

// ChangeGate reports whether the gate actually changed.
func (f *Flight) ChangeGate(gate string) (bool, error) {
	gate = strings.TrimSpace(gate)
	if gate == "" {
		return false, apperr.Validation("gate number is required")
	}
	if f.DocStatus == DocStatusCancelled {
		return false, apperr.InvalidState("cannot change gate of cancelled flight %s", f.Name)
	}
	if f.GateNumber == gate {
		return false, nil
	}
	f.GateNumber = gate
	return true, nil
}

// Overcapacity reports whether a flight with ticketCount tickets is full.
func Overcapacity(ticketCount, capacity int) bool {
	return ticketCount >= capacity
}
