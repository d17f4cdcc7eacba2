package cms

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyData is returned when an envelope carries no document.
var ErrEmptyData = errors.New("cms: empty data")

// Envelope is the {data, meta} wrapper every content endpoint responds with.
type Envelope struct {
	Data json.RawMessage `json:"data"`
	Meta Meta            `json:"meta"`
}

// Meta carries collection metadata.
type Meta struct {
	Pagination Pagination `json:"pagination"`
}

// Pagination mirrors the server's pagination block. Any field may be absent.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// IsEmpty reports whether the envelope has no data document.
func (e Envelope) IsEmpty() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) == 0 || bytes.Equal(d, []byte("null")) || bytes.Equal(d, []byte("[]"))
}

// Decode unmarshals the data document into v.
func (e Envelope) Decode(v any) error {
	if e.IsEmpty() {
		return ErrEmptyData
	}
	return json.Unmarshal(e.Data, v)
}

// Items splits a collection envelope into its raw documents. A single
// document is returned as a one-element slice.
func (e Envelope) Items() ([]json.RawMessage, error) {
	if e.IsEmpty() {
		return nil, nil
	}
	d := bytes.TrimSpace(e.Data)
	if d[0] != '[' {
		return []json.RawMessage{d}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(d, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Block is one entry of a dynamic zone, discriminated by its component tag.
// The remaining fields stay raw until Decode is called.
type Block struct {
	Component string
	ID        FlexString
	raw       json.RawMessage
}

// NewBlock builds a block from a component tag and its props. It is used by
// fallback fixtures and tests.
func NewBlock(component string, props any) Block {
	raw, err := json.Marshal(props)
	if err != nil {
		raw = nil
	}
	return Block{Component: component, raw: raw}
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var head struct {
		Component string     `json:"__component"`
		ID        FlexString `json:"id"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	b.Component = strings.TrimSpace(head.Component)
	b.ID = head.ID
	b.raw = append(b.raw[:0], data...)
	return nil
}

func (b Block) MarshalJSON() ([]byte, error) {
	props := map[string]json.RawMessage{}
	if len(b.raw) > 0 {
		if err := json.Unmarshal(b.raw, &props); err != nil {
			return nil, err
		}
	}
	tag, err := json.Marshal(b.Component)
	if err != nil {
		return nil, err
	}
	props["__component"] = tag
	return json.Marshal(props)
}

// Decode unmarshals the block's props into v.
func (b Block) Decode(v any) error {
	if len(b.raw) == 0 {
		return ErrEmptyData
	}
	return json.Unmarshal(b.raw, v)
}

// Document is the common shape of page single-types and collection entries.
type Document struct {
	ID          FlexString `json:"id"`
	DocumentID  string     `json:"documentId"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Blocks      []Block    `json:"-"`
	SEO         *SEO       `json:"seo"`
	PublishedAt *time.Time `json:"publishedAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	var aux struct {
		alias
		Blocks   []Block `json:"blocks"`
		Sections []Block `json:"sections"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = Document(aux.alias)
	d.Blocks = aux.Blocks
	if len(d.Blocks) == 0 {
		d.Blocks = aux.Sections
	}
	return nil
}

// SEO is the shared seo component.
type SEO struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	Keywords        string `json:"keywords"`
	CanonicalURL    string `json:"canonicalURL"`
	ShareImage      *Media `json:"shareImage"`
}

// Media is an uploaded asset with optional size variants.
type Media struct {
	ID              FlexString             `json:"id"`
	Name            string                 `json:"name"`
	URL             string                 `json:"url"`
	AlternativeText string                 `json:"alternativeText"`
	Caption         string                 `json:"caption"`
	Width           int                    `json:"width"`
	Height          int                    `json:"height"`
	Mime            string                 `json:"mime"`
	Formats         map[string]MediaFormat `json:"formats"`
}

// MediaFormat is one generated size of a Media asset.
type MediaFormat struct {
	Name   string  `json:"name"`
	URL    string  `json:"url"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Mime   string  `json:"mime"`
	Size   float64 `json:"size"`
}

// IsZero reports whether the media has no usable URL.
func (m *Media) IsZero() bool {
	return m == nil || strings.TrimSpace(m.URL) == ""
}

// Variant returns the named format, or the original when it does not exist.
func (m *Media) Variant(name string) MediaFormat {
	if m == nil {
		return MediaFormat{}
	}
	if f, ok := m.Formats[name]; ok && f.URL != "" {
		return f
	}
	return MediaFormat{Name: "original", URL: m.URL, Width: m.Width, Height: m.Height, Mime: m.Mime}
}

// Variants returns every format plus the original, narrowest first.
func (m *Media) Variants() []MediaFormat {
	if m.IsZero() {
		return nil
	}
	out := make([]MediaFormat, 0, len(m.Formats)+1)
	for name, f := range m.Formats {
		if f.URL == "" {
			continue
		}
		if f.Name == "" {
			f.Name = name
		}
		out = append(out, f)
	}
	out = append(out, MediaFormat{Name: "original", URL: m.URL, Width: m.Width, Height: m.Height, Mime: m.Mime})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Width == out[j].Width {
			return out[i].Name < out[j].Name
		}
		return out[i].Width < out[j].Width
	})
	return out
}

// FlexString decodes a JSON string, number or boolean into a string. Null
// and other shapes decode to "".
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*f = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case 't', 'f':
		*f = FlexString(string(data))
	case 'n', '{', '[':
		*f = ""
	default:
		if _, err := strconv.ParseFloat(string(data), 64); err != nil {
			return err
		}
		*f = FlexString(string(data))
	}
	return nil
}

func (f FlexString) String() string { return string(f) }

// Int returns the value as an integer, or 0.
func (f FlexString) Int() int {
	n, err := strconv.Atoi(strings.TrimSpace(string(f)))
	if err != nil {
		if fl, ferr := strconv.ParseFloat(strings.TrimSpace(string(f)), 64); ferr == nil {
			return int(fl)
		}
		return 0
	}
	return n
}
