package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Project-Narvex/narvex-web/internal/content"
	"github.com/Project-Narvex/narvex-web/internal/format"
	"github.com/Project-Narvex/narvex-web/internal/pages"
	"github.com/Project-Narvex/narvex-web/internal/seo"
	"github.com/Project-Narvex/narvex-web/internal/widgets"
)

// HomeView is the home page payload.
type HomeView struct {
	Home    content.HomePage
	Clients widgets.Carousel
	Feed    widgets.SocialFeed
}

type AboutView struct {
	About   content.AboutPage
	Clients widgets.Carousel
}

type ServicesView struct {
	Services content.ServicesPage
	Clients  widgets.Carousel
}

// CompanyListView lists companies or subsidiaries. Base prefixes card links.
type CompanyListView struct {
	TitleKey  string
	Intro     string
	Base      string
	Companies []content.Company
}

type CompanyView struct {
	Detail pages.CompanyDetail
	Map    widgets.Map
}

type ContactView struct {
	Contact content.ContactPage
	Map     widgets.Map
	Feed    widgets.SocialFeed
}

func (h *Handlers) clients(ctx context.Context, title string, logos []content.ClientLogo) widgets.Carousel {
	if title == "" {
		title = h.t(ctx, "section.clients")
	}
	items := make([]widgets.CarouselItem, 0, len(logos))
	for _, c := range logos {
		items = append(items, widgets.CarouselItem{Name: c.Name, URL: c.URL, Logo: c.Logo})
	}
	return widgets.NewCarousel("clients", title, items)
}

func (h *Handlers) feed(ctx context.Context) widgets.SocialFeed {
	return widgets.NewSocialFeed(h.t(ctx, "feed.title"), h.igUser, widgets.DefaultFeedLimit)
}

// Home renders /.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := h.pages.Home(ctx)
	h.render(w, r, pageRequest{
		name:   "home",
		seo:    seoInput(v.Page.SEO, ""),
		source: v.Source(),
		page: HomeView{
			Home:    v.Page,
			Clients: h.clients(ctx, v.Page.ClientsTitle, v.Page.Clients),
			Feed:    h.feed(ctx),
		},
		ld: []map[string]any{seo.WebSite(h.site.Name, h.abs("/"), h.lang(ctx))},
	})
}

// About renders /about.
func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := h.pages.About(ctx)
	h.render(w, r, pageRequest{
		name:   "about",
		seo:    seoInput(v.Page.SEO, h.t(ctx, "nav.about")),
		source: v.Source(),
		page:   AboutView{About: v.Page, Clients: h.clients(ctx, "", v.Page.Clients)},
	})
}

// Services renders /services.
func (h *Handlers) Services(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := h.pages.Services(ctx)
	h.render(w, r, pageRequest{
		name:   "services",
		seo:    seoInput(v.Page.SEO, h.t(ctx, "nav.services")),
		source: v.Source(),
		page:   ServicesView{Services: v.Page, Clients: h.clients(ctx, "", v.Page.Clients)},
	})
}

// Portfolio renders /portfolio with query filters.
func (h *Handlers) Portfolio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.pages.Portfolio(ctx, listFilter(r))
	h.render(w, r, pageRequest{
		name:   "portfolio",
		seo:    seoInput(l.Page.SEO, h.t(ctx, "nav.portfolio")),
		source: l.Source(),
		page:   l,
	})
}

// PortfolioItem renders /portfolio/{slug}.
func (h *Handlers) PortfolioItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v, err := h.pages.PortfolioItem(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		h.detailError(w, r, err)
		return
	}
	item := v.Page.Item
	in := seo.Input{Title: item.Title, Description: item.Summary, Image: item.Cover.Src, Type: "article"}
	var created string
	if !item.Date.IsZero() {
		created = format.ISODate(item.Date)
	}
	h.render(w, r, pageRequest{
		name:   "portfolio_detail",
		seo:    in,
		leaf:   item.Title,
		source: v.Source(),
		page:   v.Page,
		ld: []map[string]any{seo.CreativeWork(
			item.Title, item.Summary, h.abs(r.URL.Path), h.abs(item.Cover.Src), item.Client, created, item.Category.Name,
		)},
	})
}

// Blog renders /blog with query filters.
func (h *Handlers) Blog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.pages.Blog(ctx, listFilter(r))
	h.render(w, r, pageRequest{
		name:   "blog",
		seo:    seoInput(l.Page.SEO, h.t(ctx, "nav.blog")),
		source: l.Source(),
		page:   l,
	})
}

// Article renders /blog/{slug}.
func (h *Handlers) Article(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v, err := h.pages.Article(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		h.detailError(w, r, err)
		return
	}
	a := v.Page.Article
	info := seo.ArticleInfo{
		Headline:      a.Title,
		Description:   a.Excerpt,
		URL:           h.abs(r.URL.Path),
		Image:         h.abs(a.Cover.Src),
		AuthorName:    a.Author.Name,
		Publisher:     h.site.Name,
		PublisherLogo: h.abs(h.site.LogoPath),
		Keywords:      a.Tags,
	}
	if !a.PublishedAt.IsZero() {
		info.DatePublished = format.ISODate(a.PublishedAt)
	}
	if !a.UpdatedAt.IsZero() {
		info.DateModified = format.ISODate(a.UpdatedAt)
	}
	h.render(w, r, pageRequest{
		name:   "article",
		seo:    seo.Input{Title: a.Title, Description: a.Excerpt, Image: a.Cover.Src, Type: "article"},
		leaf:   a.Title,
		source: v.Source(),
		page:   v.Page,
		ld:     []map[string]any{seo.Article(info)},
	})
}

// Companies renders /companies.
func (h *Handlers) Companies(w http.ResponseWriter, r *http.Request) {
	v := h.pages.Companies(r.Context())
	h.companyList(w, r, v, "nav.companies", "/companies")
}

// Subsidiaries renders /subsidiaries.
func (h *Handlers) Subsidiaries(w http.ResponseWriter, r *http.Request) {
	v := h.pages.Subsidiaries(r.Context())
	h.companyList(w, r, v, "nav.subsidiaries", "/subsidiaries")
}

func (h *Handlers) companyList(w http.ResponseWriter, r *http.Request, v pages.View[[]content.Company], titleKey, base string) {
	h.render(w, r, pageRequest{
		name:   "company_list",
		seo:    seo.Input{Title: h.t(r.Context(), titleKey)},
		source: v.Source(),
		page: CompanyListView{
			TitleKey:  titleKey,
			Intro:     h.site.Tagline,
			Base:      base,
			Companies: v.Page,
		},
	})
}

// Company renders /companies/{slug}.
func (h *Handlers) Company(w http.ResponseWriter, r *http.Request) {
	v, err := h.pages.Company(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.detailError(w, r, err)
		return
	}
	h.companyDetail(w, r, v)
}

// Subsidiary renders /subsidiaries/{slug}.
func (h *Handlers) Subsidiary(w http.ResponseWriter, r *http.Request) {
	v, err := h.pages.Subsidiary(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.detailError(w, r, err)
		return
	}
	h.companyDetail(w, r, v)
}

func (h *Handlers) companyDetail(w http.ResponseWriter, r *http.Request, v pages.View[pages.CompanyDetail]) {
	c := v.Page.Company
	loc := c.Location
	h.render(w, r, pageRequest{
		name:   "company",
		seo:    seo.Input{Title: c.Name, Description: firstNonEmpty(c.Description, c.Tagline), Image: c.Cover.Src},
		leaf:   c.Name,
		source: v.Source(),
		page: CompanyView{
			Detail: v.Page,
			Map:    widgets.NewMap(c.Name, loc.Latitude, loc.Longitude, 0),
		},
		ld: []map[string]any{seo.LocalBusiness(seo.BusinessInfo{
			Name:      c.Name,
			URL:       firstNonEmpty(c.Website, h.abs(r.URL.Path)),
			Image:     h.abs(c.Logo.Src),
			Phone:     firstNonEmpty(loc.Phone, c.Phone),
			Email:     firstNonEmpty(loc.Email, c.Email),
			Address:   loc.Address,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Hours:     loc.Hours,
		})},
	})
}

// Contact renders /contact.
func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := h.pages.Contact(ctx)
	loc := v.Page.Location
	lat, lng := loc.Latitude, loc.Longitude
	if lat == 0 && lng == 0 {
		lat, lng = h.site.Latitude, h.site.Longitude
	}
	h.render(w, r, pageRequest{
		name:   "contact",
		seo:    seoInput(v.Page.SEO, h.t(ctx, "nav.contact")),
		source: v.Source(),
		page: ContactView{
			Contact: v.Page,
			Map:     widgets.NewMap(firstNonEmpty(loc.Title, h.site.Name), lat, lng, 0),
			Feed:    h.feed(ctx),
		},
		ld: []map[string]any{seo.LocalBusiness(seo.BusinessInfo{
			Name:      h.site.Name,
			URL:       h.abs("/"),
			Image:     h.abs(h.site.OGImage),
			Phone:     firstNonEmpty(loc.Phone, h.site.Phone),
			Email:     firstNonEmpty(loc.Email, h.site.Email),
			Address:   firstNonEmpty(loc.Address, h.site.Address),
			Latitude:  lat,
			Longitude: lng,
			Hours:     loc.Hours,
		})},
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
