package domain

import (
	"strings"
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
)

type Airplane struct {
	Name                  string    `json:"name"`
	Model                 string    `json:"model"`
	Airline               string    `json:"airline"`
	Capacity              int       `json:"capacity"`
	InitialAuditCompleted bool      `json:"initial_audit_completed"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (a *Airplane) Validate() error {
	if strings.TrimSpace(a.Model) == "" {
		return apperr.Validation("airplane model is required")
	}
	if a.Airline == "" {
		return apperr.Validation("airline is required")
	}
	if a.Capacity <= 0 {
		return apperr.Validation("capacity must be positive")
	}
	return nil
}

// FullName joins first and last name, dropping an empty last name.
func FullName(first, last string) string {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if last == "" {
		return first
	}
	return first + " " + last
}

type CrewMember struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name,omitempty"`
	FullName    string    `json:"full_name"`
	PassportID  string    `json:"passport_id"`
	DateOfBirth time.Time `json:"date_of_birth"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeSave validates the member and derives FullName.
func (c *CrewMember) BeforeSave(today time.Time) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return apperr.Validation("first name is required")
	}
	if strings.TrimSpace(c.PassportID) == "" {
		return apperr.Validation("passport id is required")
	}
	if c.DateOfBirth.IsZero() || !DateOf(c.DateOfBirth).Before(DateOf(today)) {
		return apperr.Validation("date of birth must be in the past")
	}
	c.FullName = FullName(c.FirstName, c.LastName)
	return nil
}

type Passenger struct {
	Name        string     `json:"name"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name,omitempty"`
	FullName    string     `json:"full_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Passenger) BeforeSave(today time.Time) error {
	if strings.TrimSpace(p.FirstName) == "" {
		return apperr.Validation("first name is required")
	}
	if p.DateOfBirth != nil && DateOf(*p.DateOfBirth).After(DateOf(today)) {
		return apperr.Validation("date of birth cannot be in the future")
	}
	p.FullName = FullName(p.FirstName, p.LastName)
	return nil
}

// AddOnType is a purchasable ticket extra, e.g. "Extra Baggage".
type AddOnType struct {
	Name      string    `json:"name"`
	Options   []string  `json:"options"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *AddOnType) Validate() error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return apperr.Validation("add-on type name is required")
	}
	if a.Options == nil {
		a.Options = []string{}
	}
	return nil
}
