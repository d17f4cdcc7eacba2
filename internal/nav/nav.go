// Package nav builds the primary navigation and breadcrumbs.
package nav

import (
	"path"
	"strings"
)

// Item is a top-level navigation entry.
type Item struct {
	Path     string
	LabelKey string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb is a breadcrumb entry. Label is used when LabelKey is empty.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation.
var Main = []Item{
	{Path: "/about", LabelKey: "nav.about"},
	{Path: "/services", LabelKey: "nav.services"},
	{Path: "/portfolio", LabelKey: "nav.portfolio"},
	{Path: "/companies", LabelKey: "nav.companies"},
	{Path: "/blog", LabelKey: "nav.blog"},
	{Path: "/contact", LabelKey: "nav.contact"},
}

// sections maps top-level paths that are not in Main.
var sections = map[string]string{
	"/subsidiaries": "nav.subsidiaries",
}

// Build renders navigation items with the active state for currentPath.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// subsidiaries live under the companies section
	if itemPath == "/companies" && isActive("/subsidiaries", currentPath) {
		return true
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumbs for currentPath. leaf replaces the
// prettified label of the last segment when set, so detail pages show the
// document title rather than the slug.
func Breadcrumbs(currentPath, leaf string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.Trim(clean, "/"), "/")
	href := ""
	for i, seg := range parts {
		if seg == "" {
			continue
		}
		href += "/" + seg
		c := Crumb{Href: href, Label: titleFromSegment(seg), Active: i == len(parts)-1}
		if i == 0 {
			c.LabelKey = labelKey(href)
		}
		if c.Active && strings.TrimSpace(leaf) != "" {
			c.LabelKey = ""
			c.Label = strings.TrimSpace(leaf)
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}

func labelKey(top string) string {
	for _, it := range Main {
		if it.Path == top {
			return it.LabelKey
		}
	}
	return sections[top]
}

func titleFromSegment(seg string) string {
	s := strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(seg))
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
