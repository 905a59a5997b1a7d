package payperiod

import (
	"math"
	"time"
)

// DefaultIncrement is the rounding step, in hours, used when none is given.
const DefaultIncrement = 0.5

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

func (d Direction) Valid() bool {
	return d == DirectionUp || d == DirectionDown
}

// Interval is one clock-in/clock-out pair. A nil End is a shift in progress.
type Interval struct {
	Start time.Time
	End   *time.Time
}

// Hours is the elapsed time of a completed interval. Open intervals count as zero.
func (i Interval) Hours() float64 {
	if i.End == nil {
		return 0
	}
	return i.End.Sub(i.Start).Hours()
}

// TotalHours sums completed intervals.
func TotalHours(intervals []Interval) float64 {
	var total float64
	for _, i := range intervals {
		total += i.Hours()
	}
	return total
}

// ElapsedHours reports how long an open shift has been running at now.
func ElapsedHours(start, now time.Time) float64 {
	if now.Before(start) {
		return 0
	}
	return now.Sub(start).Hours()
}

// Round moves hours to a multiple of increment in the given direction.
// A non-positive increment passes the value through at 2 decimals.
func Round(hours float64, direction Direction, increment float64) float64 {
	if increment <= 0 {
		return Round2(hours)
	}
	units := steps(hours, increment)
	switch direction {
	case DirectionUp:
		return Round2(math.Ceil(units) * increment)
	case DirectionDown:
		return Round2(math.Floor(units) * increment)
	default:
		return Round2(hours)
	}
}

// RoundNearest rounds half-up to the nearest multiple of increment. It is
// applied to resolved hours when payroll is exported.
func RoundNearest(hours float64, increment float64) float64 {
	if increment <= 0 {
		return Round2(hours)
	}
	return Round2(math.Floor(steps(hours, increment)+0.5) * increment)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// steps divides by increment and drops float noise below 1e-9, so 7.0/0.5
// stays 14 and never ceils to 15.
func steps(hours, increment float64) float64 {
	return math.Round(hours/increment*1e9) / 1e9
}
