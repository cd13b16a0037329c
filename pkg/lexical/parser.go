package lexical

import (
	"encoding/json"
	"fmt"
	"strings"

	"docedit-be/pkg/editor"
)

// Parser handles Lexical JSON to Markdown conversion for document previews.
// Checkbox glyphs are plain characters and pass through unchanged.
type Parser struct{}

// NewParser creates a new parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts a Lexical JSON string to Markdown
func (p *Parser) Parse(jsonContent string) (string, error) {
	var root LexicalRoot
	if err := json.Unmarshal([]byte(jsonContent), &root); err != nil {
		return "", fmt.Errorf("failed to parse lexical json: %w", err)
	}
	return p.Render(root), nil
}

// Render converts an already decoded Lexical tree to Markdown.
func (p *Parser) Render(root LexicalRoot) string {
	var sb strings.Builder
	p.walkNode(root.Root, &sb, 0)
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// RenderDocument renders an editor tree.
func (p *Parser) RenderDocument(doc *editor.Element) string {
	return p.Render(Encode(doc))
}

func (p *Parser) walkNode(node Node, sb *strings.Builder, depth int) {
	switch node.Type {
	case NodeRoot:
		for _, child := range node.Children {
			p.walkNode(child, sb, depth)
			sb.WriteString("\n")
		}

	case NodeParagraph:
		p.handleParagraph(node, sb, depth)

	case NodeHeading:
		level := 1
		if len(node.Tag) == 2 && node.Tag[0] == 'h' {
			level = int(node.Tag[1] - '0')
		}
		sb.WriteString(strings.Repeat("#", level) + " ")
		p.handleParagraph(node, sb, depth)

	case NodeText:
		p.handleText(node, sb)

	case NodeLineBreak:
		// two trailing spaces keep the break inside the paragraph
		sb.WriteString("  \n")

	case NodeList:
		p.handleList(node, sb, depth)

	case NodeLink:
		sb.WriteString("[")
		for _, child := range node.Children {
			p.walkNode(child, sb, 0)
		}
		sb.WriteString(fmt.Sprintf("](%s)", node.URL))

	default:
		for _, child := range node.Children {
			p.walkNode(child, sb, depth)
		}
	}
}

func (p *Parser) handleParagraph(node Node, sb *strings.Builder, depth int) {
	align := ""
	if fmtStr, ok := node.Format.(string); ok && fmtStr != "" && fmtStr != "left" {
		align = fmtStr
	}

	if align != "" {
		sb.WriteString(fmt.Sprintf("<div align=\"%s\">", align))
	}

	for _, child := range node.Children {
		p.walkNode(child, sb, depth)
	}

	if align != "" {
		sb.WriteString("</div>")
	}
	sb.WriteString("\n")
}

func (p *Parser) handleText(node Node, sb *strings.Builder) {
	openTag := ParseStyle(node.Style).BuildAnnotatedOpenTag()
	if openTag != "" {
		sb.WriteString(openTag)
	}

	format := textFormat(node.Format)
	isBold := format&editor.FormatBold != 0
	isItalic := format&editor.FormatItalic != 0
	isUnderline := format&editor.FormatUnderline != 0
	isCode := format&editor.FormatCode != 0
	isStrike := format&editor.FormatStrikethrough != 0

	// Code > Bold > Italic > Underline > Strike
	if isCode {
		sb.WriteString("`")
	}
	if isBold {
		sb.WriteString("**")
	}
	if isItalic {
		sb.WriteString("_")
	}
	if isUnderline {
		sb.WriteString("<u>")
	}
	if isStrike {
		sb.WriteString("~~")
	}

	sb.WriteString(node.Text)

	if isStrike {
		sb.WriteString("~~")
	}
	if isUnderline {
		sb.WriteString("</u>")
	}
	if isItalic {
		sb.WriteString("_")
	}
	if isBold {
		sb.WriteString("**")
	}
	if isCode {
		sb.WriteString("`")
	}

	if openTag != "" {
		sb.WriteString("</span>")
	}
}

func (p *Parser) handleList(node Node, sb *strings.Builder, depth int) {
	index := 1
	if node.Start > 0 {
		index = node.Start
	}

	for _, child := range node.Children {
		if child.Type != NodeListItem {
			continue
		}

		sb.WriteString(strings.Repeat("  ", depth))
		if node.ListType == "number" {
			sb.WriteString(fmt.Sprintf("%d. ", index))
			index++
		} else {
			sb.WriteString("- ")
		}

		for _, grandChild := range child.Children {
			if grandChild.Type == NodeList {
				sb.WriteString("\n")
				p.handleList(grandChild, sb, depth+1)
			} else {
				p.walkNode(grandChild, sb, depth)
			}
		}
		sb.WriteString("\n")
	}
}
