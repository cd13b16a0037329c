package checkbox

// Glyph is one of the two characters recognized as a checkbox.
type Glyph rune

const (
	Unchecked Glyph = '\u2610' // ☐
	Checked   Glyph = '\u2611' // ☑
)

// ParseGlyph reports whether r is a checkbox glyph.
func ParseGlyph(r rune) (Glyph, bool) {
	switch Glyph(r) {
	case Unchecked, Checked:
		return Glyph(r), true
	}
	return 0, false
}

// GlyphFor returns the glyph representing the given state.
func GlyphFor(checked bool) Glyph {
	if checked {
		return Checked
	}
	return Unchecked
}

func (g Glyph) IsChecked() bool {
	return g == Checked
}

// Toggle returns the opposite glyph.
func (g Glyph) Toggle() Glyph {
	if g == Checked {
		return Unchecked
	}
	return Checked
}

func (g Glyph) String() string {
	return string(rune(g))
}
