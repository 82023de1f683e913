// Package selection picks items by their position.
package selection

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Filter accepts a natural number when any of its intervals contains it.
// A filter without intervals accepts nothing.
type Filter struct {
	Intervals []Interval
}

var _ pflag.Value = (*Filter)(nil)

// All returns the filter accepting every natural number.
func All() Filter {
	return Filter{Intervals: []Interval{AtLeast(0)}}
}

// ParseFilter parses v and returns a Filter or an error.
//
// Syntax (tokens are separated by underscore '_' characters):
//
//	"all"    -> every natural number
//	"N"      -> a single natural number
//	"N-M"    -> closed interval [N, M]
//	"N-"     -> >= N
//	"-M"     -> <= M
//
// All numbers must be non-decreasing when read left to right, so "1_3-5_7"
// is valid while "3_1-4" is not.
func ParseFilter(v string) (Filter, error) {
	var f Filter
	v = strings.TrimSpace(v)
	if v == "" {
		return f, nil
	}
	if v == "all" {
		return All(), nil
	}

	prev := 0
	checkOrder := func(n int) error {
		if n < prev {
			return fmt.Errorf("numbers must be non-decreasing: %d < %d", n, prev)
		}
		prev = n
		return nil
	}

	for i, tok := range strings.Split(v, "_") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return Filter{}, fmt.Errorf("empty token at position %d", i)
		}

		if strings.Count(tok, "-") > 1 {
			// "-N-" is unbounded on both sides.
			if tok != "--" && strings.HasPrefix(tok, "-") && strings.HasSuffix(tok, "-") {
				if _, err := parseNatural(tok[1 : len(tok)-1]); err != nil {
					return Filter{}, fmt.Errorf("invalid token %q: %w", tok, err)
				}
				return All(), nil
			}
			return Filter{}, fmt.Errorf("invalid token %q", tok)
		}

		left, right, isRange := strings.Cut(tok, "-")
		if !isRange {
			n, err := parseNatural(tok)
			if err != nil {
				return Filter{}, fmt.Errorf("invalid token %q: %w", tok, err)
			}
			if err := checkOrder(n); err != nil {
				return Filter{}, err
			}
			f.Intervals = append(f.Intervals, Single(n))
			continue
		}

		switch {
		case left == "" && right == "":
			return Filter{}, fmt.Errorf("invalid token %q", tok)
		case left != "" && right != "":
			n1, err := parseNatural(left)
			if err != nil {
				return Filter{}, fmt.Errorf("invalid left bound in %q: %w", tok, err)
			}
			n2, err := parseNatural(right)
			if err != nil {
				return Filter{}, fmt.Errorf("invalid right bound in %q: %w", tok, err)
			}
			if n1 > n2 {
				return Filter{}, fmt.Errorf("invalid range %q: min > max", tok)
			}
			if err := checkOrder(n1); err != nil {
				return Filter{}, err
			}
			if err := checkOrder(n2); err != nil {
				return Filter{}, err
			}
			f.Intervals = append(f.Intervals, Between(n1, n2))
		case left != "": // "N-"
			n, err := parseNatural(left)
			if err != nil {
				return Filter{}, fmt.Errorf("invalid bound in %q: %w", tok, err)
			}
			if err := checkOrder(n); err != nil {
				return Filter{}, err
			}
			f.Intervals = append(f.Intervals, AtLeast(n))
		default: // "-M"
			n, err := parseNatural(right)
			if err != nil {
				return Filter{}, fmt.Errorf("invalid bound in %q: %w", tok, err)
			}
			if err := checkOrder(n); err != nil {
				return Filter{}, err
			}
			f.Intervals = append(f.Intervals, AtMost(n))
		}
	}
	return f, nil
}

func parseNatural(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("not natural number: %q", s)
	}
	return n, nil
}

// Test reports whether n is accepted by the filter.
func (f Filter) Test(n int) bool {
	for _, r := range f.Intervals {
		if r.Contains(n) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the filter accepts no natural number.
func (f Filter) IsEmpty() bool {
	return len(f.Normalize()) == 0
}

// IsAll reports whether the filter accepts every natural number.
func (f Filter) IsAll() bool {
	norm := f.Normalize()
	return len(norm) == 1 && norm[0].Unbounded && norm[0].Min == 0
}

// Normalize returns the intervals of f sorted, with empty ones dropped and
// overlapping or adjacent ones merged.
func (f Filter) Normalize() []Interval {
	var valid []Interval
	for _, r := range f.Intervals {
		if r.IsEmpty() {
			continue
		}
		r.Min = max(r.Min, 0)
		valid = append(valid, r)
	}
	if len(valid) == 0 {
		return nil
	}

	slices.SortFunc(valid, func(a, b Interval) int {
		if a.Min != b.Min {
			return a.Min - b.Min
		}
		switch {
		case a.Unbounded == b.Unbounded:
			return a.Max - b.Max
		case a.Unbounded:
			return 1
		default:
			return -1
		}
	})

	merged := make([]Interval, 0, len(valid))
	for _, cur := range valid {
		if len(merged) == 0 {
			merged = append(merged, cur)
			continue
		}
		last := &merged[len(merged)-1]
		if last.Unbounded {
			break
		}
		if last.Max+1 >= cur.Min {
			if cur.Unbounded {
				last.Unbounded = true
			} else {
				last.Max = max(last.Max, cur.Max)
			}
			continue
		}
		merged = append(merged, cur)
	}
	for i := range merged {
		if merged[i].Unbounded {
			merged[i].Max = 0
		}
	}
	return merged
}

// String normalizes the filter and formats it so that ParseFilter accepts
// the result.
func (f Filter) String() string {
	norm := f.Normalize()
	if len(norm) == 0 {
		return ""
	}
	if len(norm) == 1 && norm[0].Unbounded && norm[0].Min == 0 {
		return "all"
	}
	parts := make([]string, len(norm))
	for i, r := range norm {
		parts[i] = r.String()
	}
	return strings.Join(parts, "_")
}

// Set implements pflag.Value.
func (f *Filter) Set(v string) error {
	parsed, err := ParseFilter(v)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Filter) Type() string {
	return "selection"
}
