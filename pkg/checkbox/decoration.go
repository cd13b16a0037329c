package checkbox

import (
	"fmt"
	"sort"
	"sync"

	"docedit-be/pkg/editor"
)

// CSS classes attached to rendered checkboxes.
const (
	ClassChecked   = "doc-checkbox doc-checkbox--checked"
	ClassUnchecked = "doc-checkbox doc-checkbox--unchecked"
)

// Marker is display metadata for one checkbox. The glyph in the document
// stays the source of truth for the checked state.
type Marker struct {
	Position int    `json:"position"`
	Index    int    `json:"index"`
	Checked  bool   `json:"checked"`
	Class    string `json:"class"`
	Label    string `json:"label"`
}

// DecorationSet holds the markers of one document state, ordered by position.
type DecorationSet struct {
	markers []Marker
}

// Decorate builds one marker per checkbox occurrence.
func Decorate(doc editor.Node) DecorationSet {
	occurrences := Scan(doc)
	markers := make([]Marker, len(occurrences))
	for i, o := range occurrences {
		markers[i] = newMarker(i, o)
	}
	return DecorationSet{markers: markers}
}

func newMarker(index int, o Occurrence) Marker {
	m := Marker{Position: o.Position, Index: index, Checked: o.Glyph.IsChecked()}
	if m.Checked {
		m.Class = ClassChecked
		m.Label = fmt.Sprintf("Checkbox %d, checked", index+1)
	} else {
		m.Class = ClassUnchecked
		m.Label = fmt.Sprintf("Checkbox %d, not checked", index+1)
	}
	return m
}

func (s DecorationSet) Len() int {
	return len(s.markers)
}

// Markers returns a copy of the markers.
func (s DecorationSet) Markers() []Marker {
	out := make([]Marker, len(s.markers))
	copy(out, s.markers)
	return out
}

// At returns the marker whose checkbox starts at pos.
func (s DecorationSet) At(pos int) (Marker, bool) {
	i := sort.Search(len(s.markers), func(i int) bool {
		return s.markers[i].Position >= pos
	})
	if i < len(s.markers) && s.markers[i].Position == pos {
		return s.markers[i], true
	}
	return Marker{}, false
}

func (s DecorationSet) Equal(other DecorationSet) bool {
	if len(s.markers) != len(other.markers) {
		return false
	}
	for i := range s.markers {
		if s.markers[i] != other.markers[i] {
			return false
		}
	}
	return true
}

// Decorator keeps a DecorationSet in sync with a view.
type Decorator struct {
	mu      sync.RWMutex
	current DecorationSet
}

// NewDecorator subscribes to view and computes the initial markers.
func NewDecorator(view *editor.View) *Decorator {
	d := &Decorator{}
	view.OnChange(func(state editor.State, _ *editor.Transaction) {
		set := Decorate(state.Doc)
		d.mu.Lock()
		d.current = set
		d.mu.Unlock()
	})
	return d
}

func (d *Decorator) Current() DecorationSet {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}
