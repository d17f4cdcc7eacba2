package handlers

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Project-Narvex/narvex-web/internal/content"
)

const (
	sitemapPageSize = content.MaxPageSize
	// sitemapMaxPages bounds how many pages of one collection are listed.
	sitemapMaxPages = 20
)

var staticRoutes = []string{"/", "/about", "/services", "/portfolio", "/blog", "/companies", "/subsidiaries", "/contact"}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// allPages reads a collection page by page. It stops when the source switches
// between the CMS and the static dataset mid-way, since their pages do not line up.
func allPages[T any](ctx context.Context, log *zap.Logger, what string, list func(context.Context, content.ListFilter) ([]T, content.Pagination, bool)) []T {
	var (
		out   []T
		total int
		first bool
	)
	for page := 1; page <= sitemapMaxPages; page++ {
		items, pg, static := list(ctx, content.ListFilter{Page: page, PageSize: sitemapPageSize})
		if page == 1 {
			first = static
		} else if static != first {
			break
		}
		out = append(out, items...)
		total = pg.Total
		if len(items) == 0 || page >= pg.PageCount {
			break
		}
	}
	if total > len(out) {
		log.Warn("sitemap collection truncated",
			zap.String("collection", what),
			zap.Int("listed", len(out)),
			zap.Int("total", total),
		)
	}
	return out
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}

// Sitemap handles GET /sitemap.xml. Collections come from the content source
// or, when it fails, the static dataset.
func (h *Handlers) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.log(ctx)

	var (
		portfolio    []content.PortfolioItem
		articles     []content.Article
		companies    []content.Company
		subsidiaries []content.Company
	)
	var g errgroup.Group
	g.Go(func() error {
		portfolio = allPages(ctx, log, "portfolio", h.pages.PortfolioItems)
		return nil
	})
	g.Go(func() error {
		articles = allPages(ctx, log, "articles", h.pages.Articles)
		return nil
	})
	g.Go(func() error {
		companies = h.pages.Companies(ctx).Page
		return nil
	})
	g.Go(func() error {
		subsidiaries = h.pages.Subsidiaries(ctx).Page
		return nil
	})
	_ = g.Wait()

	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range staticRoutes {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.abs(p)})
	}
	for _, it := range portfolio {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.abs("/portfolio/" + it.Slug), LastMod: lastMod(it.Date)})
	}
	for _, a := range articles {
		mod := a.UpdatedAt
		if mod.IsZero() {
			mod = a.PublishedAt
		}
		set.URLs = append(set.URLs, sitemapURL{Loc: h.abs("/blog/" + a.Slug), LastMod: lastMod(mod)})
	}
	for _, c := range companies {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.abs("/companies/" + c.Slug)})
	}
	for _, c := range subsidiaries {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.abs("/subsidiaries/" + c.Slug)})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}

// Robots handles GET /robots.txt.
func (h *Handlers) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: %s\n", h.abs("/sitemap.xml"))
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
