package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Project-Narvex/narvex-web/internal/contact"
	"github.com/Project-Narvex/narvex-web/internal/content"
	"github.com/Project-Narvex/narvex-web/internal/httpx"
	"github.com/Project-Narvex/narvex-web/internal/widgets"
)

// ContactSubmit handles POST /api/contact.
func (h *Handlers) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body contact.Payload
	if err := httpx.DecodeJSON(r, contact.MaxBodyBytes, &body); err != nil {
		if errors.Is(err, httpx.ErrBodyTooLarge) {
			httpx.WriteError(ctx, w, httpx.NewError("body_too_large", "Request body exceeds 64 KiB", http.StatusRequestEntityTooLarge))
			return
		}
		h.log(ctx).Debug("contact: invalid body", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("invalid_json", "Invalid JSON body", http.StatusBadRequest))
		return
	}

	res, err := h.contact.Submit(ctx, body.Submission())
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"success":       false,
			"error":         verr.Error(),
			"missingFields": verr.Fields,
		})
		return
	case err != nil:
		h.log(ctx).Error("contact: submit failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("internal", "Unable to process submission", http.StatusInternalServerError))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "data": res.Data})
}

// InstagramFeed handles GET /api/instagram. It always answers 200.
func (h *Handlers) InstagramFeed(w http.ResponseWriter, r *http.Request) {
	limit := httpx.QueryInt(r, "limit", widgets.DefaultFeedLimit)
	p := h.instagram.Feed(r.Context(), limit, r.URL.Query().Get("username"))
	httpx.WriteJSON(w, http.StatusOK, p)
}

type imageJSON struct {
	Src    string `json:"src"`
	Srcset string `json:"srcset,omitempty"`
	Alt    string `json:"alt"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

func newImageJSON(i widgets.Image) *imageJSON {
	if i.IsZero() {
		return nil
	}
	return &imageJSON{Src: i.Src, Srcset: i.Srcset, Alt: i.Alt, Width: i.Width, Height: i.Height}
}

type categoryJSON struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type portfolioJSON struct {
	Slug     string       `json:"slug"`
	URL      string       `json:"url"`
	Title    string       `json:"title"`
	Client   string       `json:"client,omitempty"`
	Category categoryJSON `json:"category"`
	Summary  string       `json:"summary,omitempty"`
	Date     *time.Time   `json:"date,omitempty"`
	Year     string       `json:"year,omitempty"`
	Cover    *imageJSON   `json:"cover,omitempty"`
	Tags     []string     `json:"tags"`
	Services []string     `json:"services"`
	Featured bool         `json:"featured"`
}

type articleJSON struct {
	Slug           string       `json:"slug"`
	URL            string       `json:"url"`
	Title          string       `json:"title"`
	Excerpt        string       `json:"excerpt,omitempty"`
	Category       categoryJSON `json:"category"`
	Tags           []string     `json:"tags"`
	Author         string       `json:"author,omitempty"`
	Cover          *imageJSON   `json:"cover,omitempty"`
	PublishedAt    *time.Time   `json:"publishedAt,omitempty"`
	ReadingMinutes int          `json:"readingMinutes"`
	Featured       bool         `json:"featured"`
}

type listJSON[T any] struct {
	Items      []T                `json:"items"`
	Pagination content.Pagination `json:"pagination"`
	Source     string             `json:"source"`
}

// listFilter reads collection filters; featured also accepts yes/no and on/off.
func listFilter(r *http.Request) content.ListFilter {
	f := content.ParseListFilter(r.URL.Query())
	if b := httpx.QueryBool(r, "featured"); b != nil {
		f.Featured = b
	}
	return f
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func sourceOf(fromFallback bool) string {
	if fromFallback {
		return "fallback"
	}
	return "cms"
}

// PortfolioAPI handles GET /api/portfolio.
func (h *Handlers) PortfolioAPI(w http.ResponseWriter, r *http.Request) {
	items, pg, fallback := h.pages.PortfolioItems(r.Context(), listFilter(r))
	out := make([]portfolioJSON, 0, len(items))
	for _, it := range items {
		out = append(out, portfolioJSON{
			Slug:     it.Slug,
			URL:      "/portfolio/" + it.Slug,
			Title:    it.Title,
			Client:   it.Client,
			Category: categoryJSON(it.Category),
			Summary:  it.Summary,
			Date:     timePtr(it.Date),
			Year:     it.Year,
			Cover:    newImageJSON(it.Cover),
			Tags:     orEmpty(it.Tags),
			Services: orEmpty(it.Services),
			Featured: it.Featured,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, listJSON[portfolioJSON]{Items: out, Pagination: pg, Source: sourceOf(fallback)})
}

// ArticlesAPI handles GET /api/articles.
func (h *Handlers) ArticlesAPI(w http.ResponseWriter, r *http.Request) {
	items, pg, fallback := h.pages.Articles(r.Context(), listFilter(r))
	out := make([]articleJSON, 0, len(items))
	for _, a := range items {
		out = append(out, articleJSON{
			Slug:           a.Slug,
			URL:            "/blog/" + a.Slug,
			Title:          a.Title,
			Excerpt:        a.Excerpt,
			Category:       categoryJSON(a.Category),
			Tags:           orEmpty(a.Tags),
			Author:         a.Author.Name,
			Cover:          newImageJSON(a.Cover),
			PublishedAt:    timePtr(a.PublishedAt),
			ReadingMinutes: a.ReadingMinutes,
			Featured:       a.Featured,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, listJSON[articleJSON]{Items: out, Pagination: pg, Source: sourceOf(fallback)})
}
