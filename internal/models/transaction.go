package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind tells whether money entered or left the account.
type Kind string

const (
	KindInflow  Kind = "entrada"
	KindOutflow Kind = "saida"
)

// IsOutflow reports whether the kind debits the account. Anything other than
// "saida" is displayed as an inflow.
func (k Kind) IsOutflow() bool {
	return strings.EqualFold(string(k), string(KindOutflow))
}

// TransactionRecord represents a single statement entry returned by the backend.
type TransactionRecord struct {
	Description string          `json:"descricao"`
	Amount      decimal.Decimal `json:"valor"`
	Kind        Kind            `json:"tipo"`
	Date        Date            `json:"data"`
}

// MarshalJSON writes valor as a bare JSON number, the way the statement
// backend sends it.
func (r TransactionRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Description string      `json:"descricao"`
		Amount      json.Number `json:"valor"`
		Kind        Kind        `json:"tipo"`
		Date        Date        `json:"data"`
	}{
		Description: r.Description,
		Amount:      json.Number(r.Amount.String()),
		Kind:        r.Kind,
		Date:        r.Date,
	})
}

// dateLayouts are tried in order when decoding a Date.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// DateLayout is the wire format of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day. Date-time inputs keep only
// their date part, in the offset they were written with.
type Date struct {
	time.Time
}

// NewDate returns the calendar date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a calendar date or an ISO-8601 date-time.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return NewDate(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

// After reports whether d is a later calendar day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY-MM-DD", an RFC 3339 date-time or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
