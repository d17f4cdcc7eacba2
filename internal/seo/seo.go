// Package seo builds page metadata and schema.org structured data.
package seo

import (
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card  string
	Image string
}

// Meta is everything the layout renders into <head>.
type Meta struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
}

// Input carries the page-level values Build merges with site defaults.
type Input struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	Image       string
	Type        string
	Path        string
	NoIndex     bool
}

// Site carries the site-wide defaults.
type Site struct {
	Name        string
	Description string
	BaseURL     string
	Image       string
	Locale      string
}

// Build fills Meta from in, falling back to site defaults. Relative URLs are
// made absolute against the site base URL.
func Build(site Site, in Input) Meta {
	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		title = site.Name
	case site.Name != "" && !strings.Contains(title, site.Name):
		title = title + " | " + site.Name
	}
	desc := firstNonEmpty(in.Description, site.Description)
	canonical := firstNonEmpty(in.Canonical, Absolute(site.BaseURL, in.Path))
	image := Absolute(site.BaseURL, firstNonEmpty(in.Image, site.Image))
	ogType := firstNonEmpty(in.Type, "website")
	robots := "index, follow"
	if in.NoIndex {
		robots = "noindex, nofollow"
	}
	card := "summary"
	if image != "" {
		card = "summary_large_image"
	}
	return Meta{
		Title:       title,
		Description: desc,
		Keywords:    strings.TrimSpace(in.Keywords),
		Canonical:   canonical,
		Robots:      robots,
		OG: OpenGraph{
			Title:       title,
			Description: desc,
			Image:       image,
			Type:        ogType,
			URL:         canonical,
			SiteName:    site.Name,
			Locale:      ogLocale(site.Locale),
		},
		Twitter: Twitter{Card: card, Image: image},
	}
}

// Absolute resolves p against base. Absolute URLs and empty paths pass through.
func Absolute(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") || strings.HasPrefix(p, "//") {
		return p
	}
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return p
	}
	return base + "/" + strings.TrimLeft(p, "/")
}

func ogLocale(lang string) string {
	switch strings.ToLower(lang) {
	case "id":
		return "id_ID"
	case "", "en":
		return "en_US"
	}
	return lang
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
