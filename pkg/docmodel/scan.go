package docmodel

import "docedit-be/pkg/checkbox"

// Occurrence locates a checkbox glyph inside the structural document.
type Occurrence struct {
	Ordinal   int
	Paragraph int
	Run       int
	Offset    int // code points into the run text
	Glyph     checkbox.Glyph
}

// Scan numbers checkbox glyphs in paragraph, run and character order, using
// the same glyph matcher as the editor scanner.
func Scan(doc Document) []Occurrence {
	var occurrences []Occurrence
	for pi, p := range doc.Paragraphs {
		for ri, r := range p.Runs {
			checkbox.ScanText(r.Text, 0, func(o checkbox.Occurrence) {
				occurrences = append(occurrences, Occurrence{
					Ordinal:   len(occurrences),
					Paragraph: pi,
					Run:       ri,
					Offset:    o.Position,
					Glyph:     o.Glyph,
				})
			})
		}
	}
	return occurrences
}

// Stats summarizes the checkbox states of a document.
type Stats struct {
	Total     int     `json:"total"`
	Checked   int     `json:"checked"`
	Unchecked int     `json:"unchecked"`
	Progress  float64 `json:"progress"` // percentage of checked boxes
}

func StatsOf(doc Document) Stats {
	var s Stats
	for _, o := range Scan(doc) {
		s.Total++
		if o.Glyph.IsChecked() {
			s.Checked++
		}
	}
	s.Unchecked = s.Total - s.Checked
	if s.Total > 0 {
		s.Progress = float64(s.Checked) / float64(s.Total) * 100
	}
	return s
}
