package css

import (
	"strings"
)

// Property names a recognized style property.
type Property string

const (
	Color          Property = "color"
	Display        Property = "display"
	Height         Property = "height"
	FontFamily     Property = "font-family"
	FontSize       Property = "font-size"
	FontStyle      Property = "font-style"
	FontWeight     Property = "font-weight"
	TextDecoration Property = "text-decoration"
)

// Properties lists every recognized property. The root defaults define
// a value for each of them.
var Properties = []Property{
	Color, Display, Height, FontFamily, FontSize, FontStyle, FontWeight, TextDecoration,
}

// Style is the resolved style of one element: its own property map plus a
// reference to the style of the parent element. A Style is never mutated
// after construction; properties it does not define are looked up along
// the parent chain at read time.
type Style struct {
	props  map[Property]string
	parent *Style
}

// NewStyle resolves the style for an element with the given tag name whose
// parent element has style parent (nil for a document root).
//
// A tag with registered defaults gets exactly that map, replacing rather
// than merging with the root defaults. Without tag defaults a root element
// gets the root defaults and any other element gets an empty map that
// defers everything to its parent. A parentless style that does not carry
// the root defaults is chained to the shared root style, so every chain
// terminates at a fully populated map.
func NewStyle(tag string, parent *Style) *Style {
	if props, ok := tagDefaults[strings.ToLower(tag)]; ok {
		if parent == nil {
			parent = rootStyle
		}
		return &Style{props: props, parent: parent}
	}
	if parent == nil {
		return &Style{props: rootDefaults}
	}
	return &Style{props: map[Property]string{}, parent: parent}
}

// Root returns the shared style holding the root defaults.
func Root() *Style {
	return rootStyle
}

// Parent returns the style this one defers to, or nil for a root style.
func (s *Style) Parent() *Style {
	return s.parent
}

// Own returns the value this style itself defines for p, without
// consulting the parent chain.
func (s *Style) Own(p Property) (string, bool) {
	v, ok := s.props[p]
	return v, ok
}

// Lookup resolves p through the parent chain.
func (s *Style) Lookup(p Property) (string, bool) {
	for st := s; st != nil; st = st.parent {
		if v, ok := st.props[p]; ok {
			return v, true
		}
	}
	return "", false
}

// Property resolves p through the parent chain. Every recognized property
// resolves at the root; anything else is a caller error and yields "".
func (s *Style) Property(p Property) string {
	v, ok := s.Lookup(p)
	if !ok {
		tracer().Errorf("style property %q did not resolve at the root", p)
	}
	return v
}

// FontString is the font specification handed to text measurement:
// font-style, font-weight, font-size and font-family, space separated.
func (s *Style) FontString() string {
	return s.Property(FontStyle) + " " +
		s.Property(FontWeight) + " " +
		s.Property(FontSize) + " " +
		s.Property(FontFamily)
}

// IsBlock reports whether the resolved display value contains "block".
func (s *Style) IsBlock() bool {
	return strings.Contains(s.Property(Display), "block")
}

// IsHidden reports whether the style resolves to display: none.
func (s *Style) IsHidden() bool {
	return s.Property(Display) == "none"
}
