package relative

import "fmt"

// Span is an absolute half-open region [Lower, Upper) of a sequence.
type Span struct {
	Lower int
	Upper int
}

func (s Span) Len() int { return s.Upper - s.Lower }

func (s Span) IsEmpty() bool { return s.Upper <= s.Lower }

// Contains reports whether index i lies in the span.
func (s Span) Contains(i int) bool {
	return i >= s.Lower && i < s.Upper
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Lower, s.Upper)
}

// Expr is a region of a sequence described relative to anchors.
type Expr[E comparable] interface {
	// Resolve evaluates the expression against seq. The result is false when
	// no region applies, in which case the Span must not be used.
	Resolve(seq Sequence[E]) (Span, bool)
	// Contains reports whether the absolute index i is ordered inside the
	// expression, using the convention documented on Compare.
	Contains(i int) bool
	String() string
}

var (
	_ Expr[int] = HalfOpen[int]{}
	_ Expr[int] = Closed[int]{}
	_ Expr[int] = UpTo[int]{}
	_ Expr[int] = Thru[int]{}
	_ Expr[int] = Suffix[int]{}
)

// HalfOpen is the region [Lower, Upper).
//
// Upper is resolved against the part of the sequence starting at the resolved
// Lower, so offsets and searches in Upper count from Lower rather than from
// the start of the sequence.
type HalfOpen[E comparable] struct {
	Lower Bound[E]
	Upper Bound[E]
}

func (r HalfOpen[E]) Resolve(seq Sequence[E]) (Span, bool) {
	lo, hi, _, ok := narrow(seq, r.Lower, r.Upper)
	if !ok {
		return Span{}, false
	}
	return Span{Lower: lo, Upper: hi}, true
}

func (r HalfOpen[E]) Contains(i int) bool {
	x := Exactly[E](i)
	return LessEqual(r.Lower, x) && Less(x, r.Upper)
}

func (r HalfOpen[E]) String() string {
	return r.Lower.String() + "..<" + r.Upper.String()
}

// Closed is the region [Lower, Upper]. Upper is narrowed like in HalfOpen and
// then moved one position forward, saturating at the end of the sequence.
type Closed[E comparable] struct {
	Lower Bound[E]
	Upper Bound[E]
}

func (r Closed[E]) Resolve(seq Sequence[E]) (Span, bool) {
	lo, hi, tail, ok := narrow(seq, r.Lower, r.Upper)
	if !ok {
		return Span{}, false
	}
	return Span{Lower: lo, Upper: tail.Index(hi, 1, tail.EndIndex())}, true
}

func (r Closed[E]) Contains(i int) bool {
	x := Exactly[E](i)
	return LessEqual(r.Lower, x) && LessEqual(x, r.Upper)
}

func (r Closed[E]) String() string {
	return r.Lower.String() + "..." + r.Upper.String()
}

// UpTo is the region from the start of the sequence up to, not including,
// Upper.
type UpTo[E comparable] struct {
	Upper Bound[E]
}

// Prefix returns the region [start, upper).
func Prefix[E comparable](upper Bound[E]) UpTo[E] {
	return UpTo[E]{Upper: upper}
}

func (r UpTo[E]) Resolve(seq Sequence[E]) (Span, bool) {
	hi, ok := resolveWithin(seq, r.Upper)
	if !ok {
		return Span{}, false
	}
	return Span{Lower: seq.StartIndex(), Upper: hi}, true
}

func (r UpTo[E]) Contains(i int) bool {
	return Less(Exactly[E](i), r.Upper)
}

func (r UpTo[E]) String() string {
	return "..<" + r.Upper.String()
}

// Thru is the region from the start of the sequence through Upper.
type Thru[E comparable] struct {
	Upper Bound[E]
}

// PrefixThrough returns the region [start, upper].
func PrefixThrough[E comparable](upper Bound[E]) Thru[E] {
	return Thru[E]{Upper: upper}
}

func (r Thru[E]) Resolve(seq Sequence[E]) (Span, bool) {
	hi, ok := resolveWithin(seq, r.Upper)
	if !ok {
		return Span{}, false
	}
	return Span{Lower: seq.StartIndex(), Upper: seq.Index(hi, 1, seq.EndIndex())}, true
}

func (r Thru[E]) Contains(i int) bool {
	return LessEqual(Exactly[E](i), r.Upper)
}

func (r Thru[E]) String() string {
	return "..." + r.Upper.String()
}

// Suffix is the region from Lower to the end of the sequence.
type Suffix[E comparable] struct {
	Lower Bound[E]
}

// SuffixFrom returns the region [lower, end).
func SuffixFrom[E comparable](lower Bound[E]) Suffix[E] {
	return Suffix[E]{Lower: lower}
}

func (r Suffix[E]) Resolve(seq Sequence[E]) (Span, bool) {
	lo, ok := resolveWithin(seq, r.Lower)
	if !ok {
		return Span{}, false
	}
	return Span{Lower: lo, Upper: seq.EndIndex()}, true
}

func (r Suffix[E]) Contains(i int) bool {
	return LessEqual(r.Lower, Exactly[E](i))
}

func (r Suffix[E]) String() string {
	return r.Lower.String() + "..."
}

// narrow resolves lower against seq and upper against the tail of seq that
// starts at the resolved lower.
func narrow[E comparable](seq Sequence[E], lower, upper Bound[E]) (lo, hi int, tail Sequence[E], ok bool) {
	lo, ok = resolveWithin(seq, lower)
	if !ok {
		return 0, 0, nil, false
	}
	tail = seq.Slice(lo, seq.EndIndex())
	hi, ok = resolveWithin(tail, upper)
	if !ok || hi < lo {
		return 0, 0, nil, false
	}
	return lo, hi, tail, true
}

// resolveWithin resolves b and rejects indices outside [start, end].
func resolveWithin[E comparable](seq Sequence[E], b Bound[E]) (int, bool) {
	i, ok := b.Resolve(seq)
	if !ok || i < seq.StartIndex() || i > seq.EndIndex() {
		return 0, false
	}
	return i, true
}
