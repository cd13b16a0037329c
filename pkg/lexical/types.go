package lexical

// LexicalRoot is the serialized editor state exchanged with the client.
type LexicalRoot struct {
	Root Node `json:"root"`
}

// Node represents any node in the Lexical tree.
type Node struct {
	Type     string `json:"type"`
	Version  int    `json:"version"`
	Children []Node `json:"children,omitempty"`

	// Text specific
	Text   string      `json:"text,omitempty"`
	Format interface{} `json:"format,omitempty"` // int bitmask on text, alignment string on blocks
	Style  string      `json:"style,omitempty"`
	Mode   string      `json:"mode,omitempty"`
	Detail int         `json:"detail,omitempty"`

	// Block specific
	Direction string `json:"direction,omitempty"`
	Indent    int    `json:"indent,omitempty"`

	// Link specific
	URL string `json:"url,omitempty"`

	// List specific
	ListType string `json:"listType,omitempty"`
	Start    int    `json:"start,omitempty"`
	Tag      string `json:"tag,omitempty"`
}

// Node types understood by the codec.
const (
	NodeRoot      = "root"
	NodeParagraph = "paragraph"
	NodeText      = "text"
	NodeLineBreak = "linebreak"
	NodeHeading   = "heading"
	NodeList      = "list"
	NodeListItem  = "listitem"
	NodeQuote     = "quote"
	NodeLink      = "link"
)
