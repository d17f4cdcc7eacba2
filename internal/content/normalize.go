package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/Project-Narvex/narvex-web/internal/cms"
	"github.com/Project-Narvex/narvex-web/internal/widgets"
)

// ErrEmptyDocument is returned by page normalisers when the envelope carries
// no document or the document cannot be decoded.
var ErrEmptyDocument = errors.New("content: empty document")

// Image variant names generated by the CMS upload plugin.
const (
	VariantThumbnail = "thumbnail"
	VariantSmall     = "small"
	VariantMedium    = "medium"
	VariantLarge     = "large"
)

// Normalizer turns CMS documents into view models. Upload paths are made
// absolute against assetBase.
type Normalizer struct {
	assetBase string
}

// NewNormalizer returns a Normalizer resolving media against assetBase.
func NewNormalizer(assetBase string) Normalizer {
	return Normalizer{assetBase: strings.TrimRight(strings.TrimSpace(assetBase), "/")}
}

func (n Normalizer) asset(path string) string {
	return cms.ResolveAssetURL(n.assetBase, path)
}

// Image converts a media reference to an image using variant as the src.
// Every available variant is listed in the srcset.
func (n Normalizer) Image(m *cms.Media, variant, alt string) widgets.Image {
	if m.IsZero() {
		return widgets.Image{}
	}
	variants := m.Variants()
	sources := make([]widgets.Source, 0, len(variants))
	for _, v := range variants {
		sources = append(sources, widgets.Source{URL: n.asset(v.URL), Width: v.Width})
	}
	chosen := m.Variant(variant)
	return widgets.NewImage(
		n.asset(chosen.URL),
		firstNonEmpty(m.AlternativeText, m.Caption, alt),
		chosen.Width, chosen.Height,
		sources,
	)
}

func (n Normalizer) images(list []cms.Media, variant, alt string) []widgets.Image {
	out := make([]widgets.Image, 0, len(list))
	for i := range list {
		if img := n.Image(&list[i], variant, alt); !img.IsZero() {
			out = append(out, img)
		}
	}
	return out
}

// decodeDocument decodes a single-type envelope. Absent or undecodable data
// yields ErrEmptyDocument.
func decodeDocument(env cms.Envelope, v any) error {
	if env.IsEmpty() {
		return ErrEmptyDocument
	}
	if err := env.Decode(v); err != nil {
		return errors.Join(ErrEmptyDocument, err)
	}
	return nil
}

func (n Normalizer) seo(s *cms.SEO, title string) SEO {
	out := SEO{Title: strings.TrimSpace(title)}
	if s == nil {
		return out
	}
	out.Title = firstNonEmpty(s.MetaTitle, title)
	out.Description = strings.TrimSpace(s.MetaDescription)
	out.Keywords = strings.TrimSpace(s.Keywords)
	out.Canonical = strings.TrimSpace(s.CanonicalURL)
	if !s.ShareImage.IsZero() {
		out.Image = n.asset(s.ShareImage.URL)
	}
	return out
}

type rawLink struct {
	Label string `json:"label"`
	Text  string `json:"text"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Href  string `json:"href"`
}

func (l *rawLink) link() Link {
	if l == nil {
		return Link{}
	}
	return Link{
		Label: firstNonEmpty(l.Label, l.Text, l.Title),
		URL:   firstNonEmpty(l.URL, l.Href),
	}
}

// textList accepts a string, an array of strings, an array of objects with
// a text-like field, or a rich-text tree, and yields the list of lines.
type textList []string

func (l *textList) UnmarshalJSON(data []byte) error {
	*l = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*l = splitLines(s)
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		for _, raw := range items {
			*l = append(*l, listEntry(raw)...)
		}
	}
	return nil
}

func listEntry(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
			return []string{strings.TrimSpace(s)}
		}
	case '{':
		var item struct {
			cms.Node
			Title string `json:"title"`
			Name  string `json:"name"`
			Label string `json:"label"`
			Value string `json:"value"`
		}
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil
		}
		switch item.Type {
		case "list":
			return cms.ExtractListItems([]cms.Node{item.Node})
		case "":
			if s := firstNonEmpty(item.Text, item.Title, item.Name, item.Label, item.Value); s != "" {
				return []string{s}
			}
		default:
			if s := strings.TrimSpace(cms.ExtractText([]cms.Node{item.Node})); s != "" {
				return []string{s}
			}
		}
	}
	return nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func (l textList) strings() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}

// parseStat splits "150+" or "$2.5M" into prefix, number and suffix.
// Explicit prefix/suffix fields win over what is found in the value.
func parseStat(value cms.FlexString, prefix, suffix string) (float64, string, string) {
	s := strings.TrimSpace(value.String())
	start := strings.IndexFunc(s, unicode.IsDigit)
	if start < 0 {
		return 0, firstNonEmpty(prefix), firstNonEmpty(suffix)
	}
	end := start
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || s[end] == ',') {
		end++
	}
	number := strings.ReplaceAll(s[start:end], ",", "")
	v, err := strconv.ParseFloat(strings.TrimRight(number, "."), 64)
	if err != nil {
		v = 0
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = s[:start]
	}
	if strings.TrimSpace(suffix) == "" {
		suffix = s[end:]
	}
	return v, strings.TrimSpace(prefix), strings.TrimSpace(suffix)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func pick[T any](primary, alt []T) []T {
	if len(primary) > 0 {
		return primary
	}
	return alt
}

func text(rt cms.RichText) string { return strings.TrimSpace(cms.ExtractText(rt)) }

func parseFloat(v cms.FlexString) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
	if err != nil {
		return 0
	}
	return f
}

// slugify lower-cases s and joins alphanumeric runs with hyphens.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
