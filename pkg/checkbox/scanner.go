package checkbox

import "docedit-be/pkg/editor"

// Occurrence is a checkbox glyph found at a document position. It is
// recomputed on every scan and never stored.
type Occurrence struct {
	Position int
	Glyph    Glyph
}

// ScanText reports every glyph in text, offsetting positions by base. Offsets
// count code points. Both the editor scanner and the structural document
// scanner number ordinals through this function.
func ScanText(text string, base int, emit func(Occurrence)) {
	offset := 0
	for _, r := range text {
		if g, ok := ParseGlyph(r); ok {
			emit(Occurrence{Position: base + offset, Glyph: g})
		}
		offset++
	}
}

// Scan lists the checkbox occurrences of doc in render order. The index of an
// occurrence in the returned slice is its ordinal.
func Scan(doc editor.Node) []Occurrence {
	var occurrences []Occurrence
	editor.Walk(doc, func(node editor.Node, pos int) bool {
		if t, ok := node.(*editor.Text); ok {
			ScanText(t.Text, pos, func(o Occurrence) {
				occurrences = append(occurrences, o)
			})
		}
		return true
	})
	return occurrences
}

// Ordinal returns the ordinal of the occurrence at pos, or -1.
func Ordinal(occurrences []Occurrence, pos int) int {
	for i, o := range occurrences {
		if o.Position == pos {
			return i
		}
	}
	return -1
}
