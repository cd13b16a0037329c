package checkbox

import "docedit-be/pkg/editor"

// MetaToggle is the transaction meta key carrying the Toggle of a checkbox edit.
const MetaToggle = "checkboxToggle"

// Toggle is the modification emitted after a checkbox glyph was flipped.
type Toggle struct {
	Index      int  `json:"checkbox_index"`
	Position   int  `json:"position"`
	NewChecked bool `json:"new_checked"`
}

// BuildToggle prepares the single-character replacement that flips the glyph
// of resolved. ok is false when the position no longer holds the resolved
// glyph; nothing is built in that case.
func BuildToggle(state editor.State, resolved Resolved) (*editor.Transaction, Toggle, bool) {
	pos := resolved.Occurrence.Position
	r, found := editor.RuneAt(state.Doc, pos)
	if !found {
		return nil, Toggle{}, false
	}
	current, isGlyph := ParseGlyph(r)
	if !isGlyph || current != resolved.Occurrence.Glyph {
		return nil, Toggle{}, false
	}

	next := current.Toggle()
	tr := state.Tr()
	if err := tr.ReplaceText(pos, pos+1, next.String()); err != nil {
		return nil, Toggle{}, false
	}
	toggle := Toggle{Index: resolved.Index, Position: pos, NewChecked: next.IsChecked()}
	tr.SetMeta(MetaToggle, toggle)
	return tr, toggle, true
}

// ApplyToggle flips the resolved glyph and returns the resulting state. The
// input state is returned unchanged when the guard in BuildToggle fails.
func ApplyToggle(state editor.State, resolved Resolved) (editor.State, Toggle, bool) {
	tr, toggle, ok := BuildToggle(state, resolved)
	if !ok {
		return state, Toggle{}, false
	}
	next, err := state.Apply(tr)
	if err != nil {
		return state, Toggle{}, false
	}
	return next, toggle, true
}
