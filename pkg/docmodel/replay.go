package docmodel

import (
	"sort"

	"docedit-be/pkg/checkbox"
)

// ReplayReport describes how a modification set was applied.
type ReplayReport struct {
	Applied   []int `json:"applied"`   // glyph changed
	Unchanged []int `json:"unchanged"` // already in the recorded state
	Missing   []int `json:"missing"`   // no checkbox with that ordinal
}

// Replay sets the glyph of every ordinal in modifications to the recorded
// state and returns the resulting copy of doc. The input is not modified.
// Ordinals are computed with Scan, so they agree with the editor's numbering
// as long as the bridge preserved glyph order.
func Replay(doc Document, modifications map[int]bool) (Document, ReplayReport) {
	out := doc.Clone()
	report := ReplayReport{}
	if len(modifications) == 0 {
		return out, report
	}

	occurrences := Scan(doc)
	// group edits per run so each run text is rebuilt once
	type runKey struct{ paragraph, run int }
	edits := make(map[runKey]map[int]checkbox.Glyph)

	indices := make([]int, 0, len(modifications))
	for index := range modifications {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	for _, index := range indices {
		if index < 0 || index >= len(occurrences) {
			report.Missing = append(report.Missing, index)
			continue
		}
		o := occurrences[index]
		want := checkbox.GlyphFor(modifications[index])
		if o.Glyph == want {
			report.Unchanged = append(report.Unchanged, index)
			continue
		}
		key := runKey{o.Paragraph, o.Run}
		if edits[key] == nil {
			edits[key] = make(map[int]checkbox.Glyph)
		}
		edits[key][o.Offset] = want
		report.Applied = append(report.Applied, index)
	}

	for key, offsets := range edits {
		run := &out.Paragraphs[key.paragraph].Runs[key.run]
		runes := []rune(run.Text)
		for offset, glyph := range offsets {
			runes[offset] = rune(glyph)
		}
		run.Text = string(runes)
	}
	return out, report
}
