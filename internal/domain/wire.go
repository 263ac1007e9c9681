package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for all campaign configuration dates.
const DateLayout = "20060102"

// Date is a calendar date carried on the wire as a YYYYMMDD string. It wraps
// time.Time so comparisons and arithmetic stay on the standard library.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseWireDate parses a YYYYMMDD string.
func ParseWireDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYYMMDD", s)
	}
	return Date{t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseWireDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// OnOrBefore reports whether d is on or before t's calendar date.
func (d Date) OnOrBefore(t time.Time) bool {
	return !d.After(DateOf(t).Time)
}

// OnOrAfter reports whether d is on or after t's calendar date.
func (d Date) OnOrAfter(t time.Time) bool {
	return !d.Before(DateOf(t).Time)
}

// YesNo is a boolean carried on the wire as "Y" or "N". The zero value is
// false/"N", so optional flags behave correctly when the key is absent.
type YesNo bool

func (y YesNo) Bool() bool { return bool(y) }

func (y YesNo) MarshalJSON() ([]byte, error) {
	if y {
		return json.Marshal("Y")
	}
	return json.Marshal("N")
}

func (y *YesNo) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Y":
		*y = true
	case "N", "":
		*y = false
	default:
		return fmt.Errorf("invalid flag %q: expected \"Y\" or \"N\"", s)
	}
	return nil
}
