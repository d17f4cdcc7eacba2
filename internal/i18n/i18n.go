// Package i18n holds the UI string dictionaries and resolves the request
// language.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Bundle is a set of per-language dictionaries.
type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported []string
	tags      []language.Tag
	matcher   language.Matcher
}

// Default loads the embedded dictionaries.
func Default(fallback string, supported []string) (*Bundle, error) {
	return Load(localeFS, "locales", fallback, supported)
}

// Load reads <dir>/<lang>.json from fsys for every supported language. Only
// the fallback dictionary is required.
func Load(fsys fs.FS, dir, fallback string, supported []string) (*Bundle, error) {
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if fallback == "" {
		fallback = "en"
	}
	// The matcher treats the first tag as the default.
	ordered := []string{fallback}
	for _, l := range supported {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" && l != fallback && !contains(ordered, l) {
			ordered = append(ordered, l)
		}
	}
	b := &Bundle{
		dict:      map[string]map[string]string{},
		fallback:  fallback,
		supported: ordered,
	}
	for _, l := range ordered {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("i18n: parse locale %q: %w", l, err)
		}
		b.tags = append(b.tags, tag)

		raw, err := fs.ReadFile(fsys, path.Join(dir, l+".json"))
		if err != nil {
			if l == fallback {
				return nil, fmt.Errorf("i18n: load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("i18n: unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Supported lists the languages with the fallback first.
func (b *Bundle) Supported() []string { return append([]string(nil), b.supported...) }

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether lang is one of the configured languages.
func (b *Bundle) IsSupported(lang string) bool {
	return contains(b.supported, strings.ToLower(strings.TrimSpace(lang)))
}

// T returns the translation for key in lang, falling back to the default
// language and finally to the key itself.
func (b *Bundle) T(lang, key string) string {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}

// Resolve picks the best supported language for an Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) string {
	prefs, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(prefs) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(prefs...)
	if conf == language.No || idx < 0 || idx >= len(b.supported) {
		return b.fallback
	}
	return b.supported[idx]
}

// Tag returns the language tag for lang, or the fallback's tag.
func (b *Bundle) Tag(lang string) language.Tag {
	for i, l := range b.supported {
		if l == lang {
			return b.tags[i]
		}
	}
	return b.tags[0]
}
