package lexical

import (
	"encoding/json"
	"errors"
	"fmt"

	"docedit-be/pkg/editor"
)

var ErrNotRoot = errors.New("lexical state must start with a root node")

const nodeVersion = 1

// Encode converts an editor tree into the Lexical JSON structure.
func Encode(doc *editor.Element) LexicalRoot {
	return LexicalRoot{Root: encodeNode(doc)}
}

func encodeNode(n editor.Node) Node {
	switch v := n.(type) {
	case *editor.Text:
		out := Node{Type: NodeText, Version: nodeVersion, Text: v.Text, Style: v.Style, Mode: "normal"}
		if v.Format != 0 {
			out.Format = v.Format
		}
		return out
	case *editor.LineBreak:
		return Node{Type: NodeLineBreak, Version: nodeVersion}
	case *editor.Element:
		out := Node{Type: v.Type, Version: nodeVersion, Indent: v.Indent, Direction: "ltr"}
		if v.Format != "" {
			out.Format = v.Format
		}
		out.Children = make([]Node, len(v.Children))
		for i, child := range v.Children {
			out.Children[i] = encodeNode(child)
		}
		return out
	}
	return Node{}
}

// Decode converts a Lexical tree into an editor tree. Unknown element types
// are kept as generic containers so no text is dropped.
func Decode(root LexicalRoot) (*editor.Element, error) {
	if root.Root.Type != NodeRoot {
		return nil, ErrNotRoot
	}
	n, err := decodeNode(root.Root)
	if err != nil {
		return nil, err
	}
	return n.(*editor.Element), nil
}

func decodeNode(n Node) (editor.Node, error) {
	switch n.Type {
	case NodeText:
		return &editor.Text{Text: n.Text, Format: textFormat(n.Format), Style: n.Style}, nil
	case NodeLineBreak:
		return &editor.LineBreak{}, nil
	case "":
		return nil, fmt.Errorf("lexical node without type")
	}

	el := &editor.Element{Type: n.Type, Indent: n.Indent}
	if align, ok := n.Format.(string); ok {
		el.Format = align
	}
	for _, child := range n.Children {
		c, err := decodeNode(child)
		if err != nil {
			return nil, err
		}
		el.Children = append(el.Children, c)
	}
	return el, nil
}

// textFormat reads the bitmask, which is a float64 after JSON decoding.
func textFormat(format interface{}) int {
	switch f := format.(type) {
	case float64:
		return int(f)
	case int:
		return f
	}
	return 0
}

// Marshal encodes the tree as a Lexical JSON string.
func Marshal(doc *editor.Element) (string, error) {
	data, err := json.Marshal(Encode(doc))
	if err != nil {
		return "", fmt.Errorf("failed to marshal lexical state: %w", err)
	}
	return string(data), nil
}

// Unmarshal decodes a Lexical JSON string into an editor tree.
func Unmarshal(jsonContent string) (*editor.Element, error) {
	var root LexicalRoot
	if err := json.Unmarshal([]byte(jsonContent), &root); err != nil {
		return nil, fmt.Errorf("failed to parse lexical json: %w", err)
	}
	return Decode(root)
}
