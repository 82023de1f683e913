// Package relative describes positions and regions of a sequence relative to
// anchors (the start, the end, an explicit index, a search match) and resolves
// those descriptions against a concrete sequence only when they are applied.
//
// A Bound or an Expr never holds a reference to a sequence. The same value may
// be resolved against any number of sequences, or against successive views of
// one sequence, and yields an independent answer each time.
package relative

import (
	"fmt"
	"slices"
)

// Anchor is the reference point a Bound is defined relative to.
type Anchor uint8

const (
	AnchorStart Anchor = iota
	AnchorIndex
	AnchorEnd
	AnchorElement
	AnchorSequence
)

func (a Anchor) String() string {
	switch a {
	case AnchorStart:
		return "start"
	case AnchorIndex:
		return "index"
	case AnchorEnd:
		return "end"
	case AnchorElement:
		return "element"
	case AnchorSequence:
		return "sequence"
	default:
		return fmt.Sprintf("Anchor(%d)", uint8(a))
	}
}

// Missing decides what a search bound resolves to when nothing matches.
type Missing uint8

const (
	// MissingAtEnd substitutes the end of the searched region.
	MissingAtEnd Missing = iota
	// MissingFails makes the resolution fail.
	MissingFails
)

// aligner is implemented by sequences whose index space has positions that
// are not element boundaries, such as the bytes inside a multi-byte rune.
type aligner interface {
	Align(i int) int
}

// Bound is a recipe for one position of a sequence not yet known.
//
// The zero value is FromStart(0).
type Bound[E comparable] struct {
	anchor  Anchor
	index   int
	offset  int
	elem    E
	pattern []E
	missing Missing
}

// FromStart returns a bound n positions after the start of the region.
func FromStart[E comparable](n int) Bound[E] {
	return Bound[E]{anchor: AnchorStart, offset: n}
}

// FromEnd returns a bound n positions before the end of the region.
func FromEnd[E comparable](n int) Bound[E] {
	return Bound[E]{anchor: AnchorEnd, offset: subSat(0, n)}
}

// Exactly returns a bound at the absolute index i.
func Exactly[E comparable](i int) Bound[E] {
	return Bound[E]{anchor: AnchorIndex, index: i}
}

// From returns a bound n positions away from the absolute index i.
func From[E comparable](i, n int) Bound[E] {
	return Bound[E]{anchor: AnchorIndex, index: i, offset: n}
}

// Find returns a bound at the first occurrence of e in the region. When e
// does not occur the bound resolves to the end of the region; use Required
// to make it fail instead.
func Find[E comparable](e E) Bound[E] {
	return Bound[E]{anchor: AnchorElement, elem: e, missing: MissingAtEnd}
}

// FindSeq returns a bound just past the first full occurrence of pattern in
// the region. When pattern does not occur the resolution fails; use OrEnd to
// substitute the end of the region instead.
func FindSeq[E comparable](pattern []E) Bound[E] {
	return Bound[E]{anchor: AnchorSequence, pattern: slices.Clone(pattern), missing: MissingFails}
}

// FindString is FindSeq over the runes of s.
func FindString(s string) Bound[rune] {
	return FindSeq([]rune(s))
}

// Anchor reports what the bound is relative to.
func (b Bound[E]) Anchor() Anchor { return b.anchor }

// Offset reports the signed number of positions applied after the anchor is
// located. Bounds built with FromEnd(n) report -n.
func (b Bound[E]) Offset() int { return b.offset }

// AnchorIndex reports the absolute index of an AnchorIndex bound.
func (b Bound[E]) AnchorIndex() int { return b.index }

// Element reports the element searched by an AnchorElement bound.
func (b Bound[E]) Element() E { return b.elem }

// Pattern reports the subsequence searched by an AnchorSequence bound.
func (b Bound[E]) Pattern() []E { return slices.Clone(b.pattern) }

// Missing reports the not-found policy of a search bound.
func (b Bound[E]) Missing() Missing { return b.missing }

// IsSearch reports whether the bound locates its anchor by scanning.
func (b Bound[E]) IsSearch() bool {
	return b.anchor == AnchorElement || b.anchor == AnchorSequence
}

// Plus moves the bound n positions forward. Offsets saturate instead of
// overflowing.
func (b Bound[E]) Plus(n int) Bound[E] {
	b.offset = addSat(b.offset, n)
	return b
}

// Minus moves the bound n positions backward.
func (b Bound[E]) Minus(n int) Bound[E] {
	b.offset = subSat(b.offset, n)
	return b
}

// OrEnd makes a search bound resolve to the end of the region when nothing
// matches.
func (b Bound[E]) OrEnd() Bound[E] {
	b.missing = MissingAtEnd
	return b
}

// Required makes a search bound fail when nothing matches.
func (b Bound[E]) Required() Bound[E] {
	b.missing = MissingFails
	return b
}

// Resolve evaluates the bound against seq. Offsets that run past either end
// of the region are clamped to it. The result is false only for a search
// bound with the MissingFails policy that finds nothing.
func (b Bound[E]) Resolve(seq Sequence[E]) (int, bool) {
	start, end := seq.StartIndex(), seq.EndIndex()
	var i int
	switch b.anchor {
	case AnchorStart:
		i = start
	case AnchorEnd:
		i = end
	case AnchorIndex:
		i = b.index
		if a, ok := seq.(aligner); ok {
			i = a.Align(i)
		}
	case AnchorElement, AnchorSequence:
		var found bool
		if b.anchor == AnchorElement {
			i, found = indexOf(seq, b.elem)
		} else {
			i, found = indexAfter(seq, b.pattern)
		}
		if !found {
			if b.missing == MissingFails {
				return 0, false
			}
			i = end
		}
	default:
		return 0, false
	}
	switch {
	case b.offset > 0:
		i = seq.Index(i, b.offset, end)
	case b.offset < 0:
		i = seq.Index(i, b.offset, start)
	}
	return i, true
}

func (b Bound[E]) String() string {
	var s string
	switch b.anchor {
	case AnchorStart:
		s = "start"
	case AnchorEnd:
		s = "end"
	case AnchorIndex:
		s = fmt.Sprint(b.index)
	case AnchorElement:
		if r, ok := any(b.elem).(rune); ok {
			s = fmt.Sprintf("find(%q)", r)
		} else {
			s = fmt.Sprintf("find(%v)", b.elem)
		}
	case AnchorSequence:
		if p, ok := any(b.pattern).([]rune); ok {
			s = fmt.Sprintf("findSeq(%q)", string(p))
		} else {
			s = fmt.Sprintf("findSeq(%v)", b.pattern)
		}
	default:
		s = b.anchor.String()
	}
	if b.offset != 0 {
		s += fmt.Sprintf("%+d", b.offset)
	}
	return s
}

// To returns the half-open range [b, upper).
func (b Bound[E]) To(upper Bound[E]) HalfOpen[E] {
	return HalfOpen[E]{Lower: b, Upper: upper}
}

// Through returns the closed range [b, upper].
func (b Bound[E]) Through(upper Bound[E]) Closed[E] {
	return Closed[E]{Lower: b, Upper: upper}
}

// Take returns the half-open range of n positions starting at b.
func (b Bound[E]) Take(n int) HalfOpen[E] {
	return b.To(FromStart[E](n))
}

func indexOf[E comparable](seq Sequence[E], e E) (int, bool) {
	end := seq.EndIndex()
	for i := seq.StartIndex(); i < end; i = seq.Index(i, 1, end) {
		if seq.At(i) == e {
			return i, true
		}
	}
	return end, false
}

// indexAfter returns the index just past the first full match of pattern.
// On a mismatch the candidate start moves one position and matching
// restarts from the beginning of pattern.
func indexAfter[E comparable](seq Sequence[E], pattern []E) (int, bool) {
	start, end := seq.StartIndex(), seq.EndIndex()
	for cand := start; ; cand = seq.Index(cand, 1, end) {
		i, j := cand, 0
		for j < len(pattern) && i < end && seq.At(i) == pattern[j] {
			i = seq.Index(i, 1, end)
			j++
		}
		if j == len(pattern) {
			return i, true
		}
		if cand >= end {
			return 0, false
		}
	}
}
