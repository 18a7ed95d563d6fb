package domain

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
)

type Airline struct {
	Name               string    `json:"name"`
	Headquarters       string    `json:"headquarters"`
	FoundingYear       int       `json:"founding_year"`
	CustomerCareNumber string    `json:"customer_care_number"`
	Website            string    `json:"website,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

const firstFoundingYear = 1900

func (a *Airline) Validate(now time.Time) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return apperr.Validation("airline name is required")
	}
	if strings.TrimSpace(a.Headquarters) == "" {
		return apperr.Validation("headquarters is required")
	}
	if strings.TrimSpace(a.CustomerCareNumber) == "" {
		return apperr.Validation("customer care number is required")
	}
	if a.FoundingYear < firstFoundingYear || a.FoundingYear > now.Year() {
		return apperr.Validation("founding year must be between %d and %d", firstFoundingYear, now.Year())
	}
	if a.Website != "" {
		u, err := url.Parse(a.Website)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return apperr.Validation("website %q is not an absolute http(s) URL", a.Website)
		}
	}
	return nil
}

// Airport is named after its IATA code.
type Airport struct {
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	AirportName string    `json:"airport_name"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var airportCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

func (a *Airport) Validate() error {
	a.Code = strings.ToUpper(strings.TrimSpace(a.Code))
	if !airportCodePattern.MatchString(a.Code) {
		return apperr.Validation("airport code %q must be three letters", a.Code)
	}
	if strings.TrimSpace(a.City) == "" || strings.TrimSpace(a.Country) == "" {
		return apperr.Validation("city and country are required")
	}
	a.Name = a.Code
	return nil
}
