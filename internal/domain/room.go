package domain

import (
	"fmt"
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
)

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "Available"
	RoomStatusOccupied    RoomStatus = "Occupied"
	RoomStatusReserved    RoomStatus = "Reserved"
	RoomStatusMaintenance RoomStatus = "Maintenance"
	RoomStatusDraft       RoomStatus = "Draft"
	RoomStatusCancelled   RoomStatus = "Cancelled"
)

// Room is a leasable space inside an airport, named {airport_code}{room_number}.
type Room struct {
	Name            string     `json:"name"`
	Airport         string     `json:"airport"`
	AirportCode     string     `json:"airport_code"`
	RoomNumber      int        `json:"room_number"`
	AreaSqm         int        `json:"area"`
	Capacity        int        `json:"capacity"`
	RentalRateCents int64      `json:"rental_rate_cents"`
	ItemCode        string     `json:"item_code,omitempty"`
	UOM             UOM        `json:"uom,omitempty"`
	Maintenance     bool       `json:"maintenance"`
	Status          RoomStatus `json:"status"`
	DocStatus       DocStatus  `json:"docstatus"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func RoomName(airportCode string, roomNumber int) string {
	return fmt.Sprintf("%s%d", airportCode, roomNumber)
}

func (r *Room) Autoname(airportCode string) {
	r.AirportCode = airportCode
	r.Name = RoomName(airportCode, r.RoomNumber)
}

func (r *Room) Validate() error {
	if r.Airport == "" {
		return apperr.Validation("airport is required")
	}
	if r.RoomNumber <= 0 {
		return apperr.Validation("room number must be positive")
	}
	if r.AreaSqm < 0 || r.Capacity < 0 {
		return apperr.Validation("area and capacity cannot be negative")
	}
	if r.RentalRateCents < 0 {
		return apperr.Validation("rental rate cannot be negative")
	}
	return nil
}

// ApplyDefaultRentalRate fills an unset rate from the settings.
func (r *Room) ApplyDefaultRentalRate(s LeasingSettings) {
	if r.RentalRateCents == 0 {
		r.RentalRateCents = s.DefaultRentalRateCents
	}
}

// EnsureItem assigns the billable item code once and reports whether it was created.
func (r *Room) EnsureItem(uom UOM) bool {
	if r.ItemCode != "" {
		return false
	}
	r.ItemCode = RoomName(r.AirportCode, r.RoomNumber)
	r.UOM = uom
	return true
}

func (r *Room) Submit(uom UOM) error {
	if err := r.DocStatus.CheckSubmit("Room", r.Name); err != nil {
		return err
	}
	r.DocStatus = DocStatusSubmitted
	r.EnsureItem(uom)
	return nil
}

func (r *Room) Cancel(activeLeases int) error {
	if err := r.DocStatus.CheckCancel("Room", r.Name); err != nil {
		return err
	}
	if activeLeases > 0 {
		return apperr.InvalidState("room %s still has %d submitted lease(s)", r.Name, activeLeases)
	}
	r.DocStatus = DocStatusCancelled
	return nil
}

// Leasable reports why a lease cannot be placed on the room, if it cannot.
func (r *Room) Leasable() error {
	if r.DocStatus != DocStatusSubmitted {
		return apperr.InvalidState("room %s is %s and cannot be leased", r.Name, r.DocStatus)
	}
	if r.Maintenance {
		return apperr.InvalidState("room %s is under maintenance", r.Name)
	}
	return nil
}

// DeriveRoomStatus resolves the room status; the first matching rule wins.
func DeriveRoomStatus(doc DocStatus, maintenance bool, draftLeases, activeLeases int) RoomStatus {
	switch {
	case doc == DocStatusDraft:
		return RoomStatusDraft
	case doc == DocStatusCancelled:
		return RoomStatusCancelled
	case maintenance:
		return RoomStatusMaintenance
	case activeLeases > 0:
		return RoomStatusOccupied
	case draftLeases > 0:
		return RoomStatusReserved
	default:
		return RoomStatusAvailable
	}
}

func (r *Room) SetStatus(draftLeases, activeLeases int) {
	r.Status = DeriveRoomStatus(r.DocStatus, r.Maintenance, draftLeases, activeLeases)
}
