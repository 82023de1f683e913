package relative

import (
	"math"
	"unicode/utf8"
)

// Sequence is the capability set a container must expose so that bounds can
// be resolved against it.
//
// Indices are absolute: a view returned by Slice keeps the indices of the
// sequence it was taken from, so a bound resolved against a view yields an
// index that is valid in the original sequence as well.
type Sequence[E comparable] interface {
	// StartIndex returns the first position of the region.
	StartIndex() int
	// EndIndex returns the position just past the last element of the region.
	EndIndex() int
	// Index offsets i by n positions, backwards when n is negative. When
	// limit lies in the direction of travel the result saturates at limit.
	Index(i, n, limit int) int
	// At returns the element at i, StartIndex() <= i < EndIndex().
	At(i int) E
	// Slice returns a view over [lo, hi) sharing the indices of the receiver.
	Slice(lo, hi int) Sequence[E]
}

// Elements is a Sequence over a Go slice, one index per element.
type Elements[E comparable] struct {
	s          []E
	start, end int
}

// Of returns a Sequence covering all of s.
func Of[E comparable](s []E) Elements[E] {
	return Elements[E]{s: s, start: 0, end: len(s)}
}

func (e Elements[E]) StartIndex() int { return e.start }

func (e Elements[E]) EndIndex() int { return e.end }

func (e Elements[E]) At(i int) E { return e.s[i] }

func (e Elements[E]) Index(i, n, limit int) int {
	j := addSat(i, n)
	switch {
	case n > 0 && i <= limit && j > limit:
		j = limit
	case n < 0 && i >= limit && j < limit:
		j = limit
	}
	return clamp(j, 0, len(e.s))
}

func (e Elements[E]) Slice(lo, hi int) Sequence[E] {
	return e.Window(lo, hi)
}

// Window is Slice with a concrete result type.
func (e Elements[E]) Window(lo, hi int) Elements[E] {
	lo = clamp(lo, 0, len(e.s))
	hi = clamp(hi, lo, len(e.s))
	return Elements[E]{s: e.s, start: lo, end: hi}
}

// Values returns the elements of the region.
func (e Elements[E]) Values() []E {
	return e.s[e.start:e.end]
}

// Text is a Sequence over a string. Indices are byte offsets, but stepping
// moves by whole runes, so offsets count characters rather than bytes. An
// index falling inside a multi-byte rune is moved back to the start of that
// rune.
type Text struct {
	s          string
	start, end int
}

// OfString returns a Sequence covering all of s.
func OfString(s string) Text {
	return Text{s: s, start: 0, end: len(s)}
}

func (t Text) StartIndex() int { return t.start }

func (t Text) EndIndex() int { return t.end }

func (t Text) At(i int) rune {
	r, _ := utf8.DecodeRuneInString(t.s[i:])
	return r
}

func (t Text) Index(i, n, limit int) int {
	i = t.Align(clamp(i, 0, len(t.s)))
	for ; n > 0; n-- {
		if i == limit || i >= len(t.s) {
			break
		}
		_, size := utf8.DecodeRuneInString(t.s[i:])
		i += size
	}
	for ; n < 0; n++ {
		if i == limit || i <= 0 {
			break
		}
		_, size := utf8.DecodeLastRuneInString(t.s[:i])
		i -= size
	}
	return i
}

// Align returns i moved back to the first byte of the rune it falls in.
// Indices outside the string are returned unchanged.
func (t Text) Align(i int) int {
	if i <= 0 || i >= len(t.s) {
		return i
	}
	for i > 0 && !utf8.RuneStart(t.s[i]) {
		i--
	}
	return i
}

func (t Text) Slice(lo, hi int) Sequence[rune] {
	return t.Window(lo, hi)
}

// Window is Slice with a concrete result type.
func (t Text) Window(lo, hi int) Text {
	lo = clamp(lo, 0, len(t.s))
	hi = clamp(hi, lo, len(t.s))
	return Text{s: t.s, start: lo, end: hi}
}

// String returns the text of the region.
func (t Text) String() string {
	return t.s[t.start:t.end]
}

// addSat returns a+b saturated to the int range.
func addSat(a, b int) int {
	s := a + b
	switch {
	case b > 0 && s < a:
		return math.MaxInt
	case b < 0 && s > a:
		return math.MinInt
	}
	return s
}

// subSat returns a-b saturated to the int range.
func subSat(a, b int) int {
	s := a - b
	switch {
	case b < 0 && s < a:
		return math.MaxInt
	case b > 0 && s > a:
		return math.MinInt
	}
	return s
}

func clamp(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}
