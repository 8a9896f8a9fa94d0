package slideshow

import "fmt"

// Style is the display mode used by the OS when rendering the wallpaper.
type Style string

// Supported wallpaper styles. These map 1:1 to OS-level display-mode
// constants; no other values are valid.
const (
	StyleFill    Style = "fill"
	StyleFit     Style = "fit"
	StyleStretch Style = "stretch"
	StyleTile    Style = "tile"
	StyleCenter  Style = "center"
	StyleSpan    Style = "span"
)

// AllStyles is the fixed list of supported styles, in menu order.
var AllStyles = []Style{StyleFill, StyleFit, StyleStretch, StyleTile, StyleCenter, StyleSpan}

// Valid reports whether s is a supported style.
func (s Style) Valid() bool {
	switch s {
	case StyleFill, StyleFit, StyleStretch, StyleTile, StyleCenter, StyleSpan:
		return true
	}
	return false
}

// Label returns the human readable name of the style.
func (s Style) Label() string {
	switch s {
	case StyleFill:
		return "Fill"
	case StyleFit:
		return "Fit"
	case StyleStretch:
		return "Stretch"
	case StyleTile:
		return "Tile"
	case StyleCenter:
		return "Center"
	case StyleSpan:
		return "Span"
	}
	return string(s)
}

// ParseStyle converts a persisted style value back to a Style.
func ParseStyle(s string) (Style, error) {
	st := Style(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown wallpaper style %q", s)
	}
	return st, nil
}

// Policy selects the rotation algorithm.
type Policy string

// Supported rotation policies.
const (
	PolicyRandom     Policy = "random"
	PolicySequential Policy = "sequential"
)

// Valid reports whether p is a supported policy.
func (p Policy) Valid() bool {
	return p == PolicyRandom || p == PolicySequential
}

// ParsePolicy converts a persisted policy value back to a Policy.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown rotation policy %q", s)
	}
	return p, nil
}
