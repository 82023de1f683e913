package relative

// Marker is a caller-owned cell remembering the index produced by the last
// resolution it was passed to. The resolver only writes to a marker, it never
// reads it; a loop that wants to continue from the stored position builds the
// next bound from Index explicitly.
//
// A Marker must not be shared between goroutines without synchronization.
type Marker struct {
	index int
	set   bool
}

// NewMarker returns a marker holding i.
func NewMarker(i int) *Marker {
	return &Marker{index: i, set: true}
}

// Index returns the stored index and whether one is stored.
func (m *Marker) Index() (int, bool) {
	return m.index, m.set
}

func (m *Marker) Set(i int) {
	m.index = i
	m.set = true
}

func (m *Marker) Reset() {
	m.index = 0
	m.set = false
}

// ResolveInto resolves expr against seq and stores the upper index of the
// result in m. On failure m is reset.
func ResolveInto[E comparable](seq Sequence[E], expr Expr[E], m *Marker) (Span, bool) {
	span, ok := expr.Resolve(seq)
	if !ok {
		m.Reset()
		return Span{}, false
	}
	m.Set(span.Upper)
	return span, true
}
