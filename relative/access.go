package relative

import "slices"

// Get resolves b against seq and returns the element there. It reports false
// when b does not resolve to a position holding an element, which includes
// the end of the region.
func Get[E comparable](seq Sequence[E], b Bound[E]) (E, bool) {
	var zero E
	i, ok := b.Resolve(seq)
	if !ok || i < seq.StartIndex() || i >= seq.EndIndex() {
		return zero, false
	}
	return seq.At(i), true
}

// Sub resolves expr against seq and returns the view over the result.
func Sub[E comparable](seq Sequence[E], expr Expr[E]) (Sequence[E], bool) {
	span, ok := expr.Resolve(seq)
	if !ok {
		return nil, false
	}
	return seq.Slice(span.Lower, span.Upper), true
}

// Element is Get over a slice.
func Element[E comparable](s []E, b Bound[E]) (E, bool) {
	return Get[E](Of(s), b)
}

// RuneAt is Get over the runes of a string.
func RuneAt(s string, b Bound[rune]) (rune, bool) {
	return Get[rune](OfString(s), b)
}

// SubSlice returns the part of s selected by expr. The result shares the
// backing array of s.
func SubSlice[E comparable](s []E, expr Expr[E]) ([]E, bool) {
	span, ok := expr.Resolve(Of(s))
	if !ok {
		return nil, false
	}
	return s[span.Lower:span.Upper], true
}

// Substring returns the part of s selected by expr.
func Substring(s string, expr Expr[rune]) (string, bool) {
	span, ok := expr.Resolve(OfString(s))
	if !ok {
		return "", false
	}
	return s[span.Lower:span.Upper], true
}

// writable resolves expr for a write. Writes need a resolved region whose
// lower index lies strictly inside the sequence.
func writable[E comparable](seq Sequence[E], expr Expr[E]) (Span, bool) {
	span, ok := expr.Resolve(seq)
	if !ok || span.Lower >= seq.EndIndex() {
		return Span{}, false
	}
	return span, true
}

// Replace replaces the part of s selected by expr with the elements of with
// and returns the modified slice, like slices.Replace. When expr does not
// resolve, or resolves to a region starting at the end of s, s is returned
// unchanged.
func Replace[E comparable](s []E, expr Expr[E], with []E) []E {
	span, ok := writable[E](Of(s), expr)
	if !ok {
		return s
	}
	return slices.Replace(s, span.Lower, span.Upper, with...)
}

// Remove deletes the part of s selected by expr, under the same conditions
// as Replace.
func Remove[E comparable](s []E, expr Expr[E]) []E {
	span, ok := writable[E](Of(s), expr)
	if !ok {
		return s
	}
	return slices.Delete(s, span.Lower, span.Upper)
}

// ReplaceString is Replace over the runes of a string.
func ReplaceString(s string, expr Expr[rune], with string) string {
	span, ok := writable[rune](OfString(s), expr)
	if !ok {
		return s
	}
	return s[:span.Lower] + with + s[span.Upper:]
}

// RemoveString is Remove over the runes of a string.
func RemoveString(s string, expr Expr[rune]) string {
	return ReplaceString(s, expr, "")
}

// Set stores v at the position b resolves to and reports whether it did.
func Set[E comparable](s []E, b Bound[E], v E) bool {
	i, ok := b.Resolve(Of(s))
	if !ok || i < 0 || i >= len(s) {
		return false
	}
	s[i] = v
	return true
}
