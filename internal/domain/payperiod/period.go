package payperiod

import (
	"errors"
	"fmt"
	"time"
)

// Length is the number of calendar days in one pay period.
const Length = 14

const dateLayout = "2006-01-02"

// ReferenceStart anchors the bi-weekly calendar: 12/22/2025-01/04/2026 is one
// period and 01/05/2026-01/18/2026 is the next.
var ReferenceStart = time.Date(2025, time.December, 22, 0, 0, 0, 0, time.UTC)

var (
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidRange = errors.New("end date must not be before start date")
)

// Period is an inclusive range of calendar dates. Start and End are held as
// midnight UTC so they compare and format as plain dates.
type Period struct {
	Start time.Time
	End   time.Time
}

// Date strips the clock from t, keeping the calendar date as seen in t's location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Bounds returns the first and last day (both inclusive) of the pay period
// containing date.
func Bounds(date time.Time) (time.Time, time.Time) {
	offset := daysBetween(ReferenceStart, Date(date))
	index := floorDiv(offset, Length)
	start := ReferenceStart.AddDate(0, 0, index*Length)
	return start, start.AddDate(0, 0, Length-1)
}

// For returns the pay period containing date.
func For(date time.Time) Period {
	start, end := Bounds(date)
	return Period{Start: start, End: end}
}

// NewRange builds an arbitrary inclusive date range, used by custom reports.
func NewRange(start, end time.Time) (Period, error) {
	p := Period{Start: Date(start), End: Date(end)}
	if p.End.Before(p.Start) {
		return Period{}, ErrInvalidRange
	}
	return p, nil
}

// Range converts the inclusive dates into the half-open timestamp range
// [Start 00:00, End+1day 00:00) in loc. Shift queries filter clock_in on it.
func (p Period) Range(loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	from := time.Date(p.Start.Year(), p.Start.Month(), p.Start.Day(), 0, 0, 0, 0, loc)
	to := time.Date(p.End.Year(), p.End.Month(), p.End.Day()+1, 0, 0, 0, 0, loc)
	return from, to
}

// Contains reports whether the calendar date of t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	d := Date(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) Next() Period {
	return For(p.Start.AddDate(0, 0, Length))
}

func (p Period) Previous() Period {
	return For(p.Start.AddDate(0, 0, -Length))
}

// Days is the inclusive number of calendar days covered.
func (p Period) Days() int {
	return daysBetween(p.Start, p.End) + 1
}

// Label renders the period the way the admin screens show it, e.g.
// "Jan 05, 2026 - Jan 18, 2026".
func (p Period) Label() string {
	return fmt.Sprintf("%s - %s", p.Start.Format("Jan 02, 2006"), p.End.Format("Jan 02, 2006"))
}

func (p Period) StartString() string { return p.Start.Format(dateLayout) }
func (p Period) EndString() string   { return p.End.Format(dateLayout) }

func (p Period) String() string {
	return p.StartString() + ".." + p.EndString()
}

func daysBetween(from, to time.Time) int {
	return int((Date(to).Unix() - Date(from).Unix()) / 86400)
}

// floorDiv rounds toward negative infinity so dates before ReferenceStart
// still land in a consistent period.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
