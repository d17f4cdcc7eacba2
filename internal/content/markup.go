package content

import (
	"bytes"
	"encoding/json"
	"html"
	"html/template"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	xhtml "golang.org/x/net/html"

	"github.com/Project-Narvex/narvex-web/internal/cms"
)

const wordsPerMinute = 200

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)
	bodyPolicy = newBodyPolicy()
)

func newBodyPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "code")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// SanitizeHTML strips everything outside the body policy.
func SanitizeHTML(s string) template.HTML {
	return template.HTML(bodyPolicy.Sanitize(s))
}

// RenderMarkdown converts markdown to sanitised HTML.
func RenderMarkdown(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML("<p>" + html.EscapeString(src) + "</p>")
	}
	return template.HTML(bodyPolicy.SanitizeBytes(buf.Bytes()))
}

// RenderRichText converts a rich-text tree to sanitised HTML.
func RenderRichText(nodes []cms.Node) template.HTML {
	var b strings.Builder
	for _, n := range nodes {
		writeNode(&b, n)
	}
	return template.HTML(bodyPolicy.Sanitize(b.String()))
}

func writeNode(b *strings.Builder, n cms.Node) {
	switch n.Type {
	case "text":
		t := strings.ReplaceAll(html.EscapeString(n.Text), "\n", "<br>")
		if n.Bold {
			t = "<strong>" + t + "</strong>"
		}
		if n.Italic {
			t = "<em>" + t + "</em>"
		}
		b.WriteString(t)
		return
	case "link":
		b.WriteString(`<a href="` + html.EscapeString(n.URL) + `">`)
		writeChildren(b, n.Children)
		b.WriteString("</a>")
		return
	}
	tag := "p"
	switch n.Type {
	case "heading":
		level := n.Level
		if level < 1 || level > 6 {
			level = 2
		}
		tag = "h" + strconv.Itoa(level)
	case "list":
		tag = "ul"
		if n.Format == "ordered" {
			tag = "ol"
		}
	case "list-item":
		tag = "li"
	case "quote":
		tag = "blockquote"
	case "code":
		b.WriteString("<pre><code>")
		writeChildren(b, n.Children)
		b.WriteString("</code></pre>")
		return
	}
	b.WriteString("<" + tag + ">")
	writeChildren(b, n.Children)
	b.WriteString("</" + tag + ">")
}

func writeChildren(b *strings.Builder, children []cms.Node) {
	for _, c := range children {
		writeNode(b, c)
	}
}

// renderBody renders a body field that is either markdown text or a rich-text tree.
func renderBody(raw json.RawMessage) template.HTML {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return RenderMarkdown(s)
	}
	var rt cms.RichText
	if err := json.Unmarshal(raw, &rt); err != nil {
		return ""
	}
	return RenderRichText(rt)
}

// PlainText returns the visible text of an HTML fragment with whitespace collapsed.
func PlainText(h template.HTML) string {
	z := xhtml.NewTokenizer(strings.NewReader(string(h)))
	var b strings.Builder
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case xhtml.TextToken:
			b.Write(z.Text())
		case xhtml.StartTagToken, xhtml.EndTagToken, xhtml.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockElements[string(name)] {
				b.WriteByte(' ')
			}
		}
	}
}

var blockElements = map[string]bool{
	"p": true, "br": true, "li": true, "ul": true, "ol": true, "div": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "figure": true, "figcaption": true,
	"table": true, "tr": true, "td": true, "th": true, "hr": true,
}

// Excerpt truncates s at a word boundary to at most max runes, appending an ellipsis.
func Excerpt(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// ReadingMinutes estimates reading time at 200 words per minute. Any text
// takes at least one minute.
func ReadingMinutes(s string) int {
	words := len(strings.Fields(s))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}
