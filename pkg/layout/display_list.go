package layout

import (
	"noddy/pkg/html"
)

// EntryKind discriminates display list entries.
type EntryKind int

const (
	// Marker is a positioned element without text, e.g. a horizontal rule.
	Marker EntryKind = iota
	// TokenEntry is a word-level run of text.
	TokenEntry
)

// Entry is one positioned draw instruction.
type Entry struct {
	Kind  EntryKind
	X     float64
	Y     float64
	Node  *html.Node
	Token string
}

// DisplayList is the ordered output of a layout pass. Entries appear in
// insertion order, which is also paint order.
type DisplayList struct {
	entries []Entry
}

// NewDisplayList returns an empty display list.
func NewDisplayList() *DisplayList {
	return &DisplayList{}
}

// Add appends an entry for node at (x, y). An empty token adds a plain
// marker, anything else a token entry.
func (l *DisplayList) Add(x, y float64, node *html.Node, token string) {
	kind := TokenEntry
	if token == "" {
		kind = Marker
	}
	l.entries = append(l.entries, Entry{Kind: kind, X: x, Y: y, Node: node, Token: token})
}

// Clear empties the list.
func (l *DisplayList) Clear() {
	l.entries = l.entries[:0]
}

// Len returns the number of entries in the list.
func (l *DisplayList) Len() int {
	return len(l.entries)
}

// At returns the i-th entry.
func (l *DisplayList) At(i int) Entry {
	return l.entries[i]
}

// Entries returns a copy of the entries in order.
func (l *DisplayList) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Each calls fn for every entry in order.
func (l *DisplayList) Each(fn func(Entry)) {
	for _, e := range l.entries {
		fn(e)
	}
}
