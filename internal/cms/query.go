package cms

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Filter operators understood by the content source.
const (
	OpEq        = "$eq"
	OpNe        = "$ne"
	OpContains  = "$contains"
	OpContainsi = "$containsi"
	OpIn        = "$in"
	OpNull      = "$null"
	OpNotNull   = "$notNull"
)

// Filter is one field predicate. Field paths are dotted ("category.slug").
type Filter struct {
	Field string
	Op    string
	Value any
}

// Eq matches field == value.
func Eq(field string, value any) Filter { return Filter{Field: field, Op: OpEq, Value: value} }

// Ne matches field != value.
func Ne(field string, value any) Filter { return Filter{Field: field, Op: OpNe, Value: value} }

// Containsi matches a case-insensitive substring.
func Containsi(field, value string) Filter {
	return Filter{Field: field, Op: OpContainsi, Value: value}
}

// In matches any of values.
func In(field string, values ...string) Filter { return Filter{Field: field, Op: OpIn, Value: values} }

// IsNull matches fields that are (or are not) null.
func IsNull(field string, null bool) Filter { return Filter{Field: field, Op: OpNull, Value: null} }

// Query carries population, filter, sort and pagination options for one request.
type Query struct {
	// Populate lists relations to expand. Dotted entries populate nested
	// relations ("blocks.*" → populate[blocks][populate]=*).
	Populate    []string
	PopulateAll bool
	Filters     []Filter
	Sort        []string
	Page        int
	PageSize    int
	Limit       int
	Locale      string
	Status      string
}

// Values serialises the query into the content source's bracket syntax.
func (q Query) Values() url.Values {
	v := url.Values{}
	switch {
	case q.PopulateAll:
		v.Set("populate", "*")
	default:
		for _, p := range q.Populate {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if p == "*" {
				v.Set("populate", "*")
				continue
			}
			key, value := populateKey(strings.Split(p, "."))
			v.Set(key, value)
		}
	}
	for _, f := range q.Filters {
		addFilter(v, f)
	}
	n := 0
	for _, s := range q.Sort {
		if s = strings.TrimSpace(s); s != "" {
			v.Set(fmt.Sprintf("sort[%d]", n), s)
			n++
		}
	}
	if q.Limit > 0 {
		v.Set("pagination[limit]", strconv.Itoa(q.Limit))
	} else {
		if q.Page > 0 {
			v.Set("pagination[page]", strconv.Itoa(q.Page))
		}
		if q.PageSize > 0 {
			v.Set("pagination[pageSize]", strconv.Itoa(q.PageSize))
		}
	}
	if q.Locale != "" {
		v.Set("locale", q.Locale)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

// Encode returns the URL-encoded query string.
func (q Query) Encode() string { return q.Values().Encode() }

func populateKey(segments []string) (string, string) {
	var b strings.Builder
	b.WriteString("populate")
	for i, seg := range segments {
		if i > 0 {
			b.WriteString("[populate]")
		}
		if seg == "*" {
			return b.String(), "*"
		}
		b.WriteString("[" + seg + "]")
	}
	return b.String(), "true"
}

func addFilter(v url.Values, f Filter) {
	field := strings.TrimSpace(f.Field)
	if field == "" {
		return
	}
	op := f.Op
	if op == "" {
		op = OpEq
	}
	var b strings.Builder
	b.WriteString("filters")
	for _, seg := range strings.Split(field, ".") {
		b.WriteString("[" + seg + "]")
	}
	b.WriteString("[" + op + "]")
	key := b.String()

	switch val := f.Value.(type) {
	case []string:
		for i, s := range val {
			v.Set(fmt.Sprintf("%s[%d]", key, i), s)
		}
	case bool:
		v.Set(key, strconv.FormatBool(val))
	case int:
		v.Set(key, strconv.Itoa(val))
	case string:
		v.Set(key, val)
	case nil:
		v.Set(key, "")
	default:
		v.Set(key, fmt.Sprint(val))
	}
}
