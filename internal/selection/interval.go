package selection

import (
	"fmt"
	"strconv"
)

// Interval is a closed interval of natural numbers [Min, Max]. When
// Unbounded is true the interval has no upper end and Max is ignored.
type Interval struct {
	Min       int
	Max       int
	Unbounded bool
}

// Single returns the interval holding only n.
func Single(n int) Interval {
	return Interval{Min: n, Max: n}
}

// Between returns the interval [min, max].
func Between(min, max int) Interval {
	return Interval{Min: min, Max: max}
}

// AtLeast returns the interval [min, +inf).
func AtLeast(min int) Interval {
	return Interval{Min: min, Unbounded: true}
}

// AtMost returns the interval [0, max].
func AtMost(max int) Interval {
	return Interval{Min: 0, Max: max}
}

// IsEmpty reports whether the interval contains no natural number.
func (r Interval) IsEmpty() bool {
	if r.Unbounded {
		return false
	}
	return r.Max < r.Min || r.Max < 0
}

// Contains reports whether n lies in the interval.
func (r Interval) Contains(n int) bool {
	if n < 0 || n < r.Min {
		return false
	}
	return r.Unbounded || n <= r.Max
}

func (r Interval) String() string {
	switch {
	case r.Unbounded:
		return fmt.Sprintf("%d-", r.Min)
	case r.Min == r.Max:
		return strconv.Itoa(r.Min)
	default:
		return fmt.Sprintf("%d-%d", r.Min, r.Max)
	}
}
