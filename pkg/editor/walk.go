package editor

import (
	"strings"
	"unicode/utf8"
)

// Visitor is called for every node in depth-first pre-order with the absolute
// position at which the node starts. Returning false skips the node's children.
type Visitor func(node Node, pos int) bool

// Walk traverses the tree below doc in render order. The root's content
// starts at position 0; a non-root element's content starts one position after
// its opening token.
func Walk(doc Node, visit Visitor) {
	walk(doc, 0, visit)
}

func walk(node Node, pos int, visit Visitor) {
	if !visit(node, pos) {
		return
	}
	el, ok := node.(*Element)
	if !ok {
		return
	}
	childPos := pos
	if el.Type != TypeRoot {
		childPos++
	}
	for _, child := range el.Children {
		walk(child, childPos, visit)
		childPos += child.Size()
	}
}

// TextContent concatenates all text leaves, separating blocks with newlines.
func TextContent(doc *Element) string {
	var sb strings.Builder
	for i, block := range doc.Children {
		if i > 0 {
			sb.WriteString("\n")
		}
		Walk(block, func(node Node, _ int) bool {
			switch n := node.(type) {
			case *Text:
				sb.WriteString(n.Text)
			case *LineBreak:
				sb.WriteString("\n")
			}
			return true
		})
	}
	return sb.String()
}

// RuneAt returns the character that starts at pos, if pos falls inside a text leaf.
func RuneAt(doc Node, pos int) (rune, bool) {
	var (
		found rune
		ok    bool
	)
	Walk(doc, func(node Node, start int) bool {
		if ok {
			return false
		}
		switch n := node.(type) {
		case *Text:
			if pos >= start && pos < start+n.Size() {
				found = []rune(n.Text)[pos-start]
				ok = true
			}
			return false
		case *Element:
			return pos >= start && pos < start+n.Size()
		}
		return false
	})
	return found, ok
}

// TextSpan locates a text leaf and its absolute start position.
type TextSpan struct {
	Node  *Text
	Start int
}

// End is the position just after the leaf's last character.
func (s TextSpan) End() int {
	return s.Start + s.Node.Size()
}

// TextSpans lists every text leaf in document order.
func TextSpans(doc Node) []TextSpan {
	var spans []TextSpan
	Walk(doc, func(node Node, start int) bool {
		if t, ok := node.(*Text); ok {
			spans = append(spans, TextSpan{Node: t, Start: start})
		}
		return true
	})
	return spans
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
