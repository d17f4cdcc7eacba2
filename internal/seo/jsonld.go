package seo

import (
	"encoding/json"
	"html/template"
)

// JSON marshals v for a ld+json script element. It returns "" on error.
// encoding/json escapes <, > and & so the output cannot close the element.
func JSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.JS(b)
}

// OrganizationInfo describes the publishing organisation.
type OrganizationInfo struct {
	Name        string
	LegalName   string
	URL         string
	Logo        string
	Email       string
	Phone       string
	SameAs      []string
	Description string
}

// Organization returns an Organization schema.
func Organization(o OrganizationInfo) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     o.Name,
	}
	setIf(m, "legalName", o.LegalName)
	setIf(m, "url", o.URL)
	setIf(m, "logo", o.Logo)
	setIf(m, "description", o.Description)
	if len(o.SameAs) > 0 {
		m["sameAs"] = o.SameAs
	}
	if o.Email != "" || o.Phone != "" {
		cp := map[string]any{"@type": "ContactPoint", "contactType": "customer service"}
		setIf(cp, "email", o.Email)
		setIf(cp, "telephone", o.Phone)
		m["contactPoint"] = cp
	}
	return m
}

// WebSite returns a WebSite schema.
func WebSite(name, url, lang string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	setIf(m, "url", url)
	setIf(m, "inLanguage", lang)
	return m
}

// BreadcrumbItem maps a name to an absolute URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds a schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// ArticleInfo describes a blog article.
type ArticleInfo struct {
	Headline      string
	Description   string
	URL           string
	Image         string
	AuthorName    string
	Publisher     string
	PublisherLogo string
	DatePublished string
	DateModified  string
	Keywords      []string
}

// Article returns an Article schema.
func Article(a ArticleInfo) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Article",
		"headline": a.Headline,
	}
	setIf(m, "description", a.Description)
	setIf(m, "url", a.URL)
	setIf(m, "image", a.Image)
	setIf(m, "datePublished", a.DatePublished)
	setIf(m, "dateModified", a.DateModified)
	if a.AuthorName != "" {
		m["author"] = map[string]any{"@type": "Person", "name": a.AuthorName}
	}
	if a.Publisher != "" {
		pub := map[string]any{"@type": "Organization", "name": a.Publisher}
		if a.PublisherLogo != "" {
			pub["logo"] = map[string]any{"@type": "ImageObject", "url": a.PublisherLogo}
		}
		m["publisher"] = pub
	}
	if len(a.Keywords) > 0 {
		m["keywords"] = a.Keywords
	}
	return m
}

// CreativeWork returns a CreativeWork schema for a portfolio entry.
func CreativeWork(name, description, url, image, client, dateCreated, genre string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "CreativeWork",
		"name":     name,
	}
	setIf(m, "description", description)
	setIf(m, "url", url)
	setIf(m, "image", image)
	setIf(m, "dateCreated", dateCreated)
	setIf(m, "genre", genre)
	if client != "" {
		m["sourceOrganization"] = map[string]any{"@type": "Organization", "name": client}
	}
	return m
}

// BusinessInfo describes an office location.
type BusinessInfo struct {
	Name      string
	URL       string
	Image     string
	Phone     string
	Email     string
	Address   string
	Latitude  float64
	Longitude float64
	Hours     []string
}

// LocalBusiness returns a LocalBusiness schema. Coordinates are omitted when
// both are zero.
func LocalBusiness(b BusinessInfo) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "LocalBusiness",
		"name":     b.Name,
	}
	setIf(m, "url", b.URL)
	setIf(m, "image", b.Image)
	setIf(m, "telephone", b.Phone)
	setIf(m, "email", b.Email)
	if b.Address != "" {
		m["address"] = map[string]any{"@type": "PostalAddress", "streetAddress": b.Address}
	}
	if b.Latitude != 0 || b.Longitude != 0 {
		m["geo"] = map[string]any{"@type": "GeoCoordinates", "latitude": b.Latitude, "longitude": b.Longitude}
	}
	if len(b.Hours) > 0 {
		m["openingHours"] = b.Hours
	}
	return m
}

func setIf(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
