package render

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Project-Narvex/narvex-web/internal/content"
	"github.com/Project-Narvex/narvex-web/internal/format"
	"github.com/Project-Narvex/narvex-web/internal/i18n"
	"github.com/Project-Narvex/narvex-web/internal/seo"
)

// Noncer is implemented by view models that carry the request's CSP nonce.
type Noncer interface {
	CSPNonce() string
}

var richPolicy = bluemonday.UGCPolicy()

// Funcs returns the template function map.
func Funcs(bundle *i18n.Bundle) template.FuncMap {
	return template.FuncMap{
		"t": func(lang, key string, args ...any) string {
			s := bundle.T(lang, key)
			if len(args) > 0 {
				return fmt.Sprintf(s, args...)
			}
			return s
		},
		"formatDate": func(lang string, t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return format.FmtDate(t, lang)
		},
		"formatMonth": func(lang string, t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return format.FmtMonth(t, lang)
		},
		"isoDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return format.ISODate(t)
		},
		"formatNumber": func(lang string, v float64) string { return format.FmtNumber(v, lang) },
		"nonce": func(v any) string {
			if n, ok := v.(Noncer); ok {
				return n.CSPNonce()
			}
			return ""
		},
		"richHTML": richHTML,
		"asset":    asset,
		"jsonld":   seo.JSON,
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
		"seq": func(n int) []int {
			out := make([]int, 0, max(n, 0))
			for i := 1; i <= n; i++ {
				out = append(out, i)
			}
			return out
		},
		"dict":     dict,
		"join":     strings.Join,
		"pageHref": pageHref,
		"hasText":  func(s string) bool { return strings.TrimSpace(s) != "" },
	}
}

// richHTML sanitises CMS-supplied markup for direct output.
func richHTML(v any) template.HTML {
	switch s := v.(type) {
	case template.HTML:
		return template.HTML(richPolicy.Sanitize(string(s)))
	case string:
		return template.HTML(richPolicy.Sanitize(s))
	}
	return ""
}

// asset prefixes p with the static mount point.
func asset(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || strings.HasPrefix(p, "/assets/") || strings.Contains(p, "://") {
		return p
	}
	return "/assets/" + strings.TrimLeft(p, "/")
}

func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: odd argument count")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// pageHref links to page n of base keeping the filter parameters.
func pageHref(base string, f content.ListFilter, n int) string {
	q := f.Values()
	if n > 1 {
		q.Set("page", fmt.Sprint(n))
	}
	if enc := q.Encode(); enc != "" {
		return base + "?" + enc
	}
	return base
}
