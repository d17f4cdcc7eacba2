// Package handlers serves the site's HTML pages and JSON endpoints.
package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Project-Narvex/narvex-web/internal/config"
	"github.com/Project-Narvex/narvex-web/internal/contact"
	"github.com/Project-Narvex/narvex-web/internal/content"
	"github.com/Project-Narvex/narvex-web/internal/i18n"
	"github.com/Project-Narvex/narvex-web/internal/instagram"
	"github.com/Project-Narvex/narvex-web/internal/middleware"
	"github.com/Project-Narvex/narvex-web/internal/nav"
	"github.com/Project-Narvex/narvex-web/internal/observability"
	"github.com/Project-Narvex/narvex-web/internal/pages"
	"github.com/Project-Narvex/narvex-web/internal/render"
	"github.com/Project-Narvex/narvex-web/internal/seo"
)

// PageData is the view model for every page rendered in the shared layout.
type PageData struct {
	Lang        string
	Langs       []string
	Nonce       string
	Path        string
	Meta        seo.Meta
	JSONLD      []template.JS
	Site        config.Site
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	// Source is "cms" or "fallback" and is rendered as data-source on <main>.
	Source string
	Year   int

	Page any
}

// CSPNonce exposes the request nonce to the nonce template func.
func (d PageData) CSPNonce() string { return d.Nonce }

// Deps bundles collaborators required to construct Handlers.
type Deps struct {
	Pages             *pages.Service
	Contact           *contact.Service
	Instagram         *instagram.Client
	Renderer          *render.Renderer
	Bundle            *i18n.Bundle
	Site              config.Site
	BaseURL           string
	InstagramUsername string
	Logger            *zap.Logger
	Clock             func() time.Time
}

// Handlers holds the HTTP handlers.
type Handlers struct {
	pages     *pages.Service
	contact   *contact.Service
	instagram *instagram.Client
	renderer  *render.Renderer
	bundle    *i18n.Bundle
	site      config.Site
	baseURL   string
	igUser    string
	logger    *zap.Logger
	clock     func() time.Time
}

// New validates deps and returns Handlers.
func New(deps Deps) (*Handlers, error) {
	switch {
	case deps.Pages == nil:
		return nil, errors.New("handlers: pages service is required")
	case deps.Contact == nil:
		return nil, errors.New("handlers: contact service is required")
	case deps.Instagram == nil:
		return nil, errors.New("handlers: instagram client is required")
	case deps.Renderer == nil:
		return nil, errors.New("handlers: renderer is required")
	case deps.Bundle == nil:
		return nil, errors.New("handlers: i18n bundle is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Handlers{
		pages:     deps.Pages,
		contact:   deps.Contact,
		instagram: deps.Instagram,
		renderer:  deps.Renderer,
		bundle:    deps.Bundle,
		site:      deps.Site,
		baseURL:   strings.TrimRight(deps.BaseURL, "/"),
		igUser:    deps.InstagramUsername,
		logger:    logger,
		clock:     clock,
	}, nil
}

func (h *Handlers) lang(ctx context.Context) string {
	return middleware.Lang(ctx, h.bundle.Fallback())
}

func (h *Handlers) t(ctx context.Context, key string) string {
	return h.bundle.T(h.lang(ctx), key)
}

func (h *Handlers) log(ctx context.Context) *zap.Logger {
	if l := observability.FromContext(ctx); l != observability.NoopLogger() {
		return l
	}
	return h.logger
}

func (h *Handlers) abs(p string) string { return seo.Absolute(h.baseURL, p) }

// pageRequest describes one rendered page.
type pageRequest struct {
	name   string
	status int
	seo    seo.Input
	// leaf names the last breadcrumb on detail pages.
	leaf   string
	source string
	page   any
	ld     []map[string]any
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, pr pageRequest) {
	ctx := r.Context()
	lang := h.lang(ctx)
	path := r.URL.Path

	in := pr.seo
	in.Path = path
	in.Canonical = h.abs(in.Canonical)
	meta := seo.Build(seo.Site{
		Name:        h.site.Name,
		Description: h.site.Description,
		BaseURL:     h.baseURL,
		Image:       h.site.OGImage,
		Locale:      lang,
	}, in)

	crumbs := nav.Breadcrumbs(path, pr.leaf)
	ld := []template.JS{seo.JSON(h.organization())}
	if len(crumbs) > 1 {
		ld = append(ld, seo.JSON(seo.BreadcrumbList(h.breadcrumbItems(lang, crumbs))))
	}
	for _, v := range pr.ld {
		ld = append(ld, seo.JSON(v))
	}

	status := pr.status
	if status == 0 {
		status = http.StatusOK
	}
	source := pr.source
	if source == "" {
		source = "cms"
	}
	h.renderer.HTML(w, r, status, pr.name, PageData{
		Lang:        lang,
		Langs:       h.bundle.Supported(),
		Nonce:       middleware.NonceFromContext(ctx),
		Path:        path,
		Meta:        meta,
		JSONLD:      ld,
		Site:        h.site,
		Nav:         nav.Build(path),
		Breadcrumbs: crumbs,
		Source:      source,
		Year:        h.clock().Year(),
		Page:        pr.page,
	})
}

func (h *Handlers) organization() map[string]any {
	sameAs := make([]string, 0, len(h.site.Social))
	for _, s := range h.site.Social {
		sameAs = append(sameAs, s.URL)
	}
	return seo.Organization(seo.OrganizationInfo{
		Name:        h.site.Name,
		LegalName:   h.site.LegalName,
		URL:         h.abs("/"),
		Logo:        h.abs(h.site.LogoPath),
		Email:       h.site.Email,
		Phone:       h.site.Phone,
		SameAs:      sameAs,
		Description: h.site.Description,
	})
}

func (h *Handlers) breadcrumbItems(lang string, crumbs []nav.Crumb) []seo.BreadcrumbItem {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = h.bundle.T(lang, c.LabelKey)
		}
		items = append(items, seo.BreadcrumbItem{Name: name, Item: h.abs(c.Href)})
	}
	return items
}

// NotFound renders the HTML 404 page.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageRequest{
		name:   "not_found",
		status: http.StatusNotFound,
		seo:    seo.Input{Title: h.t(r.Context(), "notfound.title"), NoIndex: true},
	})
}

// detailError maps a detail lookup error to a response.
func (h *Handlers) detailError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, pages.ErrNotFound) {
		h.NotFound(w, r)
		return
	}
	h.log(r.Context()).Error("detail page failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func seoInput(s content.SEO, fallbackTitle string) seo.Input {
	title := s.Title
	if strings.TrimSpace(title) == "" {
		title = fallbackTitle
	}
	return seo.Input{
		Title:       title,
		Description: s.Description,
		Keywords:    s.Keywords,
		Canonical:   s.Canonical,
		Image:       s.Image,
	}
}
