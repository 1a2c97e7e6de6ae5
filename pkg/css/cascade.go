package css

import (
	"golang.org/x/net/html/atom"
)

// rootDefaults is the style every other style derives from.
var rootDefaults = map[Property]string{
	Color:          "#000000",
	Display:        "inline",
	Height:         "auto",
	FontFamily:     "serif",
	FontSize:       "16px",
	FontStyle:      "normal",
	FontWeight:     "normal",
	TextDecoration: "none",
}

var rootStyle = &Style{props: rootDefaults}

// tagDefaults holds the user agent defaults for specific tags, e.g. the
// font size of headings.
var tagDefaults = map[string]map[Property]string{
	// Headings
	atom.H1.String(): {FontSize: "22px", Display: "block"},
	atom.H2.String(): {FontSize: "21px", Display: "block"},
	atom.H3.String(): {FontSize: "20px", Display: "block"},
	atom.H4.String(): {FontSize: "19px", Display: "block"},
	atom.H5.String(): {FontSize: "18px", Display: "block"},
	atom.H6.String(): {FontSize: "17px", Display: "block"},

	// Text & formatting
	atom.P.String():      {Display: "block"},
	atom.B.String():      {FontWeight: "bold", Display: "inline"},
	atom.Strong.String(): {FontWeight: "bold", Display: "inline"},
	atom.I.String():      {FontStyle: "italic", Display: "inline"},
	atom.Em.String():     {FontStyle: "italic", Display: "inline"},

	// Links
	atom.A.String(): {Color: "blue", TextDecoration: "underline", Display: "inline"},

	// Misc
	atom.Hr.String(): {Display: "block", Height: "1px"},

	// Code, not content
	atom.Script.String(): {Display: "none"},
	atom.Style.String():  {Display: "none"},
}

// TagDefaults returns a copy of the defaults registered for tag, if any.
func TagDefaults(tag string) (map[Property]string, bool) {
	props, ok := tagDefaults[tag]
	if !ok {
		return nil, false
	}
	out := make(map[Property]string, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out, true
}
