package relative

import "cmp"

// Compare orders two bounds without resolving them.
//
// The order is a convention, not a total order over positions: start-anchored
// bounds come before index-anchored ones, which come before end-anchored ones,
// whatever the length of the sequence they are later applied to. Within one
// anchor class bounds compare by offset, and index-anchored bounds compare by
// index first. Search bounds have no position until resolved, so any
// comparison involving one reports ok == false.
func Compare[E comparable](a, b Bound[E]) (c int, ok bool) {
	if a.IsSearch() || b.IsSearch() {
		return 0, false
	}
	ra, rb := rank(a.anchor), rank(b.anchor)
	if ra != rb {
		return cmp.Compare(ra, rb), true
	}
	if a.anchor == AnchorIndex && a.index != b.index {
		return cmp.Compare(a.index, b.index), true
	}
	return cmp.Compare(a.offset, b.offset), true
}

// Less reports whether a is ordered before b. Incomparable bounds are never
// less than each other.
func Less[E comparable](a, b Bound[E]) bool {
	c, ok := Compare(a, b)
	return ok && c < 0
}

// LessEqual reports whether a is ordered before or at b. Incomparable bounds
// report false.
func LessEqual[E comparable](a, b Bound[E]) bool {
	c, ok := Compare(a, b)
	return ok && c <= 0
}

func rank(a Anchor) int {
	switch a {
	case AnchorIndex:
		return 1
	case AnchorEnd:
		return 2
	}
	return 0
}
