package domain

import (
	"time"

	"github.com/Domenick1991/airplanemode/internal/apperr"
)

// DocStatus gates the mutability of submittable records.
type DocStatus int

const (
	DocStatusDraft     DocStatus = 0
	DocStatusSubmitted DocStatus = 1
	DocStatusCancelled DocStatus = 2
)

func (s DocStatus) String() string {
	switch s {
	case DocStatusDraft:
		return "Draft"
	case DocStatusSubmitted:
		return "Submitted"
	case DocStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// CheckSubmit allows only Draft -> Submitted.
func (s DocStatus) CheckSubmit(doctype, name string) error {
	if s != DocStatusDraft {
		return apperr.InvalidState("cannot submit %s %s: it is %s", doctype, name, s)
	}
	return nil
}

// CheckCancel allows only Submitted -> Cancelled.
func (s DocStatus) CheckCancel(doctype, name string) error {
	if s != DocStatusSubmitted {
		return apperr.InvalidState("cannot cancel %s %s: it is %s", doctype, name, s)
	}
	return nil
}

// CheckEditable rejects any change to a record that is not a draft.
func (s DocStatus) CheckEditable(doctype, name string) error {
	if s != DocStatusDraft {
		return apperr.InvalidState("cannot modify %s %s: it is %s", doctype, name, s)
	}
	return nil
}

const DateLayout = "2006-01-02"

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays adds n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return DateOf(t).AddDate(0, 0, n)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func MinDate(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func MaxDate(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
