package content

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/Project-Narvex/narvex-web/internal/cms"
)

const (
	DefaultPageSize = 9
	MaxPageSize     = 50
)

// ListFilter selects a page of a portfolio or article collection.
type ListFilter struct {
	Category string
	Tag      string
	Featured *bool
	Search   string
	Page     int
	PageSize int
	Sort     string
}

// ParseListFilter reads a filter from URL query parameters. Invalid numbers
// fall back to defaults.
func ParseListFilter(q url.Values) ListFilter {
	f := ListFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Tag:      strings.TrimSpace(q.Get("tag")),
		Search:   strings.TrimSpace(q.Get("search")),
		Sort:     strings.TrimSpace(q.Get("sort")),
	}
	if v, err := strconv.ParseBool(strings.TrimSpace(q.Get("featured"))); err == nil {
		f.Featured = &v
	}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.PageSize, _ = strconv.Atoi(q.Get("pageSize"))
	return f.normalized()
}

func (f ListFilter) normalized() ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	f.Category = strings.ToLower(f.Category)
	return f
}

// Values encodes the filter back to URL parameters for pagination links.
// Page is omitted.
func (f ListFilter) Values() url.Values {
	v := url.Values{}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Tag != "" {
		v.Set("tag", f.Tag)
	}
	if f.Featured != nil {
		v.Set("featured", strconv.FormatBool(*f.Featured))
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.PageSize != 0 && f.PageSize != DefaultPageSize {
		v.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	if f.Sort != "" {
		v.Set("sort", f.Sort)
	}
	return v
}

// Query maps the filter onto a CMS query. dateField is the field sorted on
// by default ("date" for portfolio entries, "publishedAt" for articles).
func (f ListFilter) Query(dateField string) cms.Query {
	f = f.normalized()
	q := cms.Query{Page: f.Page, PageSize: f.PageSize}
	if f.Category != "" {
		q.Filters = append(q.Filters, cms.Eq("category.slug", f.Category))
	}
	if f.Tag != "" {
		q.Filters = append(q.Filters, cms.Containsi("tags.name", f.Tag))
	}
	if f.Featured != nil {
		q.Filters = append(q.Filters, cms.Eq("featured", *f.Featured))
	}
	if f.Search != "" {
		q.Filters = append(q.Filters, cms.Containsi("title", f.Search))
	}
	switch f.Sort {
	case "oldest":
		q.Sort = []string{dateField + ":asc"}
	case "title":
		q.Sort = []string{"title:asc"}
	default:
		q.Sort = []string{dateField + ":desc"}
	}
	return q
}

// FilterPortfolio applies f to items locally and returns the requested page.
func FilterPortfolio(items []PortfolioItem, f ListFilter) ([]PortfolioItem, Pagination) {
	f = f.normalized()
	matched := make([]PortfolioItem, 0, len(items))
	for _, it := range items {
		if f.matches(it.Category, it.Tags, it.Featured, it.Title, it.Summary, it.Client) {
			matched = append(matched, it)
		}
	}
	sortByDate(matched, f.Sort,
		func(i int) string { return matched[i].Title },
		func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })
	return paginate(matched, f)
}

// FilterArticles applies f to articles locally and returns the requested page.
func FilterArticles(items []Article, f ListFilter) ([]Article, Pagination) {
	f = f.normalized()
	matched := make([]Article, 0, len(items))
	for _, a := range items {
		if f.matches(a.Category, a.Tags, a.Featured, a.Title, a.Excerpt, a.Author.Name) {
			matched = append(matched, a)
		}
	}
	sortByDate(matched, f.Sort,
		func(i int) string { return matched[i].Title },
		func(i, j int) bool { return matched[i].PublishedAt.After(matched[j].PublishedAt) })
	return paginate(matched, f)
}

func (f ListFilter) matches(cat Category, tags []string, featured bool, haystack ...string) bool {
	if f.Category != "" && !strings.EqualFold(cat.Slug, f.Category) {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, t := range tags {
			if strings.EqualFold(t, f.Tag) || strings.EqualFold(slugify(t), f.Tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Featured != nil && featured != *f.Featured {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		for _, h := range haystack {
			if strings.Contains(strings.ToLower(h), needle) {
				return true
			}
		}
		return false
	}
	return true
}

func sortByDate[T any](items []T, mode string, title func(int) string, newer func(i, j int) bool) {
	switch mode {
	case "title":
		sort.SliceStable(items, func(i, j int) bool { return strings.ToLower(title(i)) < strings.ToLower(title(j)) })
	case "oldest":
		sort.SliceStable(items, func(i, j int) bool { return newer(j, i) })
	default:
		sort.SliceStable(items, newer)
	}
}

func paginate[T any](items []T, f ListFilter) ([]T, Pagination) {
	p := Pagination{Page: f.Page, PageSize: f.PageSize, Total: len(items)}
	p.PageCount = (p.Total + p.PageSize - 1) / p.PageSize
	if p.PageCount == 0 {
		p.PageCount = 1
	}
	start := (p.Page - 1) * p.PageSize
	if start >= len(items) {
		return []T{}, p
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], p
}

// Categories lists the distinct categories of items in first-seen order.
func Categories(cats []Category) []Category {
	seen := map[string]bool{}
	out := make([]Category, 0, len(cats))
	for _, c := range cats {
		if c.Slug == "" || seen[c.Slug] {
			continue
		}
		seen[c.Slug] = true
		out = append(out, c)
	}
	return out
}
