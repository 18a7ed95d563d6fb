package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
)

// Shop is a tenant business that leases rooms.
type Shop struct {
	Name         string    `json:"name"`
	ShopNumber   int       `json:"shop_number"`
	ShopType     string    `json:"shop_type"`
	OwnedBy      string    `json:"owned_by"`
	ContactEmail string    `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *Shop) Validate() error {
	if s.ShopNumber <= 0 {
		return apperr.Validation("shop number must be positive")
	}
	if strings.TrimSpace(s.OwnedBy) == "" {
		return apperr.Validation("owned by is required")
	}
	if s.ContactEmail != "" {
		if _, err := mail.ParseAddress(s.ContactEmail); err != nil {
			return apperr.Validation("contact email %q is invalid", s.ContactEmail)
		}
	}
	return nil
}
