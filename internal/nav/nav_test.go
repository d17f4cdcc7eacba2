package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMarksActiveSection(t *testing.T) {
	active := func(p string) []string {
		var out []string
		for _, it := range Build(p) {
			if it.Active {
				out = append(out, it.Href)
			}
		}
		return out
	}
	assert.Nil(t, active("/"))
	assert.Equal(t, []string{"/portfolio"}, active("/portfolio/kopi-rimba-rebrand"))
	assert.Equal(t, []string{"/companies"}, active("/subsidiaries/lensa-studio"))
	assert.Nil(t, active("/portfolios"))
	assert.Len(t, Build(""), len(Main))
}

func TestBreadcrumbs(t *testing.T) {
	assert.Equal(t, []Crumb{{Href: "/", LabelKey: "nav.home", Active: true}}, Breadcrumbs("/", ""))

	assert.Equal(t, []Crumb{
		{Href: "/", LabelKey: "nav.home"},
		{Href: "/blog", LabelKey: "nav.blog", Label: "Blog"},
		{Href: "/blog/brand-systems", Label: "Brand systems that scale", Active: true},
	}, Breadcrumbs("/blog/brand-systems/", "Brand systems that scale"))

	assert.Equal(t, []Crumb{
		{Href: "/", LabelKey: "nav.home"},
		{Href: "/subsidiaries", LabelKey: "nav.subsidiaries", Label: "Subsidiaries"},
		{Href: "/subsidiaries/lensa-studio", Label: "Lensa studio", Active: true},
	}, Breadcrumbs("/subsidiaries/lensa-studio", ""))

	crumbs := Breadcrumbs("/about", "")
	assert.Equal(t, Crumb{Href: "/about", LabelKey: "nav.about", Label: "About", Active: true}, crumbs[1])
}
