package docmodel

import (
	"errors"
	"fmt"
)

var ErrEmptyDocument = errors.New("document has no paragraphs")

// Alignment values carried from the Word paragraph properties.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Document is the structural representation produced by the DOCX parser:
// ordered paragraphs of style-annotated runs.
type Document struct {
	Paragraphs []Paragraph `json:"paragraphs"`
}

type Paragraph struct {
	Alignment string `json:"alignment,omitempty"`
	Runs      []Run  `json:"runs"`
}

type Run struct {
	Text      string  `json:"text"`
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty"`
	Color     string  `json:"color,omitempty"`
	FontSize  float64 `json:"font_size,omitempty"`
}

// Validate checks the minimal shape expected from the parser.
func Validate(doc Document) error {
	if len(doc.Paragraphs) == 0 {
		return ErrEmptyDocument
	}
	for i, p := range doc.Paragraphs {
		switch p.Alignment {
		case "", AlignLeft, AlignCenter, AlignRight, AlignJustify:
		default:
			return fmt.Errorf("paragraph %d: unknown alignment %q", i, p.Alignment)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (d Document) Clone() Document {
	out := Document{Paragraphs: make([]Paragraph, len(d.Paragraphs))}
	for i, p := range d.Paragraphs {
		cp := p
		cp.Runs = make([]Run, len(p.Runs))
		copy(cp.Runs, p.Runs)
		out.Paragraphs[i] = cp
	}
	return out
}

// PlainText joins run texts, one line per paragraph.
func (d Document) PlainText() string {
	var out []rune
	for i, p := range d.Paragraphs {
		if i > 0 {
			out = append(out, '\n')
		}
		for _, r := range p.Runs {
			out = append(out, []rune(r.Text)...)
		}
	}
	return string(out)
}
