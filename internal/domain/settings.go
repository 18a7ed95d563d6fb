package domain

import (
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
)

type UOM string

const (
	UOMWeek  UOM = "Week"
	UOMMonth UOM = "Month"
)

// LeasingSettings is the single settings record of the leasing module.
type LeasingSettings struct {
	DefaultRentalRateCents int64     `json:"default_rental_rate_cents"`
	DefaultUOM             UOM       `json:"default_uom"`
	EnablePaymentReminders bool      `json:"enable_payment_reminders"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// UOM falls back to weeks when unset.
func (s LeasingSettings) UOM() UOM {
	if s.DefaultUOM == "" {
		return UOMWeek
	}
	return s.DefaultUOM
}

func (s *LeasingSettings) Validate() error {
	if s.DefaultRentalRateCents < 0 {
		return apperr.Validation("default rental rate cannot be negative")
	}
	switch s.DefaultUOM {
	case "", UOMWeek, UOMMonth:
	default:
		return apperr.Validation("default uom must be Week or Month, got %q", s.DefaultUOM)
	}
	return nil
}
