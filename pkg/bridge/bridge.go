package bridge

import (
	"strconv"
	"strings"

	"docedit-be/pkg/docmodel"
	"docedit-be/pkg/editor"
	"docedit-be/pkg/lexical"
)

// ToEditor converts the structural document into an editing-surface tree.
// Each paragraph becomes a paragraph element and each non-empty run one text
// leaf, in order, so checkbox glyphs keep their relative order.
func ToEditor(doc docmodel.Document) *editor.Element {
	root := editor.NewDoc()
	root.Children = make([]editor.Node, 0, len(doc.Paragraphs))
	for _, p := range doc.Paragraphs {
		para := editor.NewParagraph()
		if p.Alignment != docmodel.AlignLeft {
			para.Format = p.Alignment
		}
		for _, r := range p.Runs {
			if r.Text == "" {
				continue
			}
			para.Children = append(para.Children, runToText(r))
		}
		root.Children = append(root.Children, para)
	}
	return root
}

func runToText(r docmodel.Run) *editor.Text {
	t := &editor.Text{Text: r.Text}
	if r.Bold {
		t.Format |= editor.FormatBold
	}
	if r.Italic {
		t.Format |= editor.FormatItalic
	}
	if r.Underline {
		t.Format |= editor.FormatUnderline
	}

	style := lexical.StyleMap{}
	if r.Color != "" {
		style["color"] = "#" + strings.TrimPrefix(r.Color, "#")
	}
	if r.FontSize > 0 {
		style["font-size"] = strconv.FormatFloat(r.FontSize, 'f', -1, 64) + "pt"
	}
	t.Style = style.String()
	return t
}

// FromEditor converts an editor tree back into paragraphs and runs. Every
// top-level block becomes one paragraph; nested inline content is flattened
// in render order and line breaks become newline characters.
func FromEditor(doc *editor.Element) docmodel.Document {
	out := docmodel.Document{Paragraphs: make([]docmodel.Paragraph, 0, len(doc.Children))}
	for _, block := range doc.Children {
		p := docmodel.Paragraph{Runs: []docmodel.Run{}}
		if el, ok := block.(*editor.Element); ok {
			p.Alignment = el.Format
		}
		editor.Walk(block, func(node editor.Node, _ int) bool {
			switch n := node.(type) {
			case *editor.Text:
				p.Runs = append(p.Runs, textToRun(n))
			case *editor.LineBreak:
				if len(p.Runs) == 0 {
					p.Runs = append(p.Runs, docmodel.Run{})
				}
				p.Runs[len(p.Runs)-1].Text += "\n"
			}
			return true
		})
		out.Paragraphs = append(out.Paragraphs, p)
	}
	return out
}

func textToRun(t *editor.Text) docmodel.Run {
	r := docmodel.Run{
		Text:      t.Text,
		Bold:      t.HasFormat(editor.FormatBold),
		Italic:    t.HasFormat(editor.FormatItalic),
		Underline: t.HasFormat(editor.FormatUnderline),
	}
	style := lexical.ParseStyle(t.Style)
	if c, ok := style["color"]; ok {
		r.Color = strings.TrimPrefix(c, "#")
	}
	if fs, ok := style["font-size"]; ok {
		if v, err := strconv.ParseFloat(strings.TrimSuffix(fs, "pt"), 64); err == nil {
			r.FontSize = v
		}
	}
	return r
}
