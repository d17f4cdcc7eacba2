package cms

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Node is one element of a rich-text block tree.
type Node struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Format   string `json:"format,omitempty"`
	Level    int    `json:"level,omitempty"`
	URL      string `json:"url,omitempty"`
	Bold     bool   `json:"bold,omitempty"`
	Italic   bool   `json:"italic,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// RichText holds either a plain string or a block tree. A plain string is
// stored as a single paragraph. Unexpected shapes decode to an empty value.
type RichText []Node

// Plain wraps s as a single paragraph.
func Plain(s string) RichText {
	if s == "" {
		return nil
	}
	return RichText{{Type: "paragraph", Children: []Node{{Type: "text", Text: s}}}}
}

func (r *RichText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = nil
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*r = Plain(s)
	case '[':
		var nodes []Node
		if err := json.Unmarshal(data, &nodes); err != nil {
			return nil
		}
		*r = nodes
	case '{':
		var n Node
		if err := json.Unmarshal(data, &n); err != nil {
			return nil
		}
		*r = RichText{n}
	}
	return nil
}

// IsEmpty reports whether the value has no text.
func (r RichText) IsEmpty() bool { return strings.TrimSpace(ExtractText(r)) == "" }

// String flattens the value to text.
func (r RichText) String() string { return ExtractText(r) }

// FindBlock returns the first block whose component tag equals tag. A tag
// without a category ("hero") also matches a categorised one ("sections.hero").
func FindBlock(blocks []Block, tag string) (Block, bool) {
	for _, b := range blocks {
		if matchComponent(b.Component, tag) {
			return b, true
		}
	}
	return Block{}, false
}

// FindBlocks returns every block matching tag, in order.
func FindBlocks(blocks []Block, tag string) []Block {
	var out []Block
	for _, b := range blocks {
		if matchComponent(b.Component, tag) {
			out = append(out, b)
		}
	}
	return out
}

func matchComponent(component, tag string) bool {
	if component == tag {
		return true
	}
	if strings.Contains(tag, ".") {
		return false
	}
	if i := strings.LastIndex(component, "."); i >= 0 {
		return component[i+1:] == tag
	}
	return false
}

// ExtractText flattens nodes to text. Paragraph-like nodes and list items
// each become one line; lines are joined with "\n".
func ExtractText(nodes []Node) string {
	var lines []string
	for _, n := range nodes {
		switch n.Type {
		case "text":
			if n.Text != "" {
				lines = append(lines, n.Text)
			}
		case "list":
			lines = append(lines, listItems(n)...)
		default:
			if s := inlineText(n.Children); s != "" {
				lines = append(lines, s)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// ExtractParagraphs returns the text of each non-list top-level node.
func ExtractParagraphs(nodes []Node) []string {
	var out []string
	for _, n := range nodes {
		if n.Type == "list" {
			continue
		}
		text := n.Text
		if n.Type != "text" {
			text = inlineText(n.Children)
		}
		if strings.TrimSpace(text) != "" {
			out = append(out, text)
		}
	}
	return out
}

// ExtractListItems returns the text of every list item in nodes.
func ExtractListItems(nodes []Node) []string {
	var out []string
	for _, n := range nodes {
		if n.Type == "list" {
			out = append(out, listItems(n)...)
		}
	}
	return out
}

func listItems(list Node) []string {
	var out []string
	for _, item := range list.Children {
		text := item.Text
		if item.Type != "text" {
			text = inlineText(item.Children)
		}
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

// inlineText concatenates leaf text, descending into inline links.
func inlineText(children []Node) string {
	var b strings.Builder
	for _, c := range children {
		switch c.Type {
		case "link":
			for _, gc := range c.Children {
				b.WriteString(gc.Text)
			}
		default:
			b.WriteString(c.Text)
		}
	}
	return b.String()
}
