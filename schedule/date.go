/*
Package schedule provides the date-scheduling and notification engine.

PURPOSE:
  Derives the next salary increment (KGB) and rank promotion dates from the
  last granted TMT dates, and classifies those derived dates against "today"
  into overdue / soon / future notifications.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: a calendar date without time-of-day or timezone
  - Clock: injectable "now" provider
  - ParseDate / FormatDate: YYYY-MM-DD text form

DESIGN PRINCIPLES:
  1. Calendar granularity: a Date is year/month/day only. Arithmetic is done
     on UTC midnight so DST never shifts a day count.
  2. Absent is a value: the zero Date means "no date". Parsing never panics
     and never returns an error, a malformed value is simply absent.
  3. No ambient now: "today" always comes from a Clock passed by the caller.

SEE ALSO:
  - calculator.go: ComputeNextDate
  - classifier.go: Classify
*/
package schedule

import (
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// =============================================================================
// DATE - Calendar date (no time-of-day)
// =============================================================================

// Date is a calendar date. The zero value is the absent date.
type Date struct {
	t time.Time
}

const layout = "2006-01-02"

// NewDate builds a date. Out of range components are normalized the way
// time.Date does (Feb 30 becomes Mar 2).
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf strips the time-of-day of t, keeping its wall-clock date in t's location.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses YYYY-MM-DD. Zero padding is optional ("2024-3-7" is
// accepted) and years past 9999 are written out in full, the way String
// formats them. Returns false for empty input, malformed input, components
// that are not plain digits and dates that do not exist on the calendar.
func ParseDate(text string) (Date, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Date{}, false
	}
	parts := strings.Split(text, "-")
	if len(parts) != 3 {
		return Date{}, false
	}

	var nums [3]int
	for i, p := range parts {
		if !isDigits(p) {
			return Date{}, false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return Date{}, false
		}
		nums[i] = n
	}
	year, month, day := nums[0], nums[1], nums[2]
	if month > 12 || day > 31 {
		return Date{}, false
	}

	d := NewDate(year, time.Month(month), day)
	// Reject rollover: 2021-02-30 would otherwise become 2021-03-02. Years
	// too large for time.Time fail here too.
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return Date{}, false
	}
	return d, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParseDate is ParseDate for literals known to be valid. Panics otherwise.
func MustParseDate(text string) Date {
	d, ok := ParseDate(text)
	if !ok {
		panic("schedule: invalid date literal " + strconv.Quote(text))
	}
	return d
}

// FormatDate returns the canonical YYYY-MM-DD form, or "" for the absent date.
func FormatDate(d Date) string {
	return d.String()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(layout)
}

// Properties
func (d Date) IsZero() bool      { return d.t.IsZero() }
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// AddYears adds n calendar years. Month and day are preserved when valid; a
// Feb 29 anchor landing in a non-leap year rolls over to Mar 1. The absent
// date stays absent.
func (d Date) AddYears(n int) Date {
	if d.IsZero() {
		return d
	}
	return Date{t: d.t.AddDate(n, 0, 0)}
}

// AddDays adds n calendar days.
func (d Date) AddDays(n int) Date {
	if d.IsZero() {
		return d
	}
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysBetween returns the number of calendar days from -> to. Negative when
// to is before from. Counted on Unix seconds, so spans of any length are exact.
func DaysBetween(from, to Date) int {
	return int((to.t.Unix() - from.t.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// =============================================================================
// JSON - Dates travel as "YYYY-MM-DD" or ""
// =============================================================================

// MarshalJSON writes the canonical text form, "" when absent.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a string or null. Text that does not parse degrades
// to the absent date; only non-string JSON values are rejected.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, _ := ParseDate(s)
	*d = parsed
	return nil
}

// =============================================================================
// CLOCK - Injected "now"
// =============================================================================

// Clock provides the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the process wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

// Today returns the clock's current date in the clock's local timezone.
func Today(clock Clock) Date {
	if clock == nil {
		clock = SystemClock{}
	}
	return DateOf(clock.Now().Local())
}
