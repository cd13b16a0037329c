package editor

import "unicode/utf8"

// Node is one of the closed set of tree variants: *Element, *Text or *LineBreak.
type Node interface {
	// Size is the number of positions the node occupies inside its parent.
	Size() int
	isNode()
}

// Element types produced by the bridge and the Lexical codec.
const (
	TypeRoot      = "root"
	TypeParagraph = "paragraph"
	TypeHeading   = "heading"
	TypeList      = "list"
	TypeListItem  = "listitem"
	TypeQuote     = "quote"
	TypeLink      = "link"
)

// Text format bitmask, compatible with the Lexical editor.
const (
	FormatBold          = 1
	FormatItalic        = 2
	FormatStrikethrough = 4
	FormatUnderline     = 8
	FormatCode          = 16
	FormatSubscript     = 32
	FormatSuperscript   = 64
)

// Element is a container node. The root element is the document itself and
// does not contribute opening/closing tokens.
type Element struct {
	Type     string
	Format   string // block alignment ("left", "center", "right", "justify")
	Indent   int
	Children []Node
}

// Text is a text-bearing leaf.
type Text struct {
	Text   string
	Format int
	Style  string
}

// LineBreak is an inline leaf with no text.
type LineBreak struct{}

func (*Element) isNode()   {}
func (*Text) isNode()      {}
func (*LineBreak) isNode() {}

// ContentSize is the number of positions occupied by the element's children.
func (e *Element) ContentSize() int {
	size := 0
	for _, child := range e.Children {
		size += child.Size()
	}
	return size
}

func (e *Element) Size() int {
	if e.Type == TypeRoot {
		return e.ContentSize()
	}
	return e.ContentSize() + 2
}

func (t *Text) Size() int {
	return utf8.RuneCountInString(t.Text)
}

func (*LineBreak) Size() int {
	return 1
}

// HasFormat reports whether the given bit is set on the text leaf.
func (t *Text) HasFormat(bit int) bool {
	return t.Format&bit != 0
}

// NewDoc returns a root element holding the given blocks.
func NewDoc(blocks ...Node) *Element {
	return &Element{Type: TypeRoot, Children: blocks}
}

// NewParagraph returns a paragraph element holding the given inline nodes.
func NewParagraph(inline ...Node) *Element {
	return &Element{Type: TypeParagraph, Children: inline}
}

// NewText returns an unformatted text leaf.
func NewText(s string) *Text {
	return &Text{Text: s}
}

// copyElement returns a shallow copy with its own children slice.
func copyElement(e *Element) *Element {
	cp := *e
	cp.Children = make([]Node, len(e.Children))
	copy(cp.Children, e.Children)
	return &cp
}
