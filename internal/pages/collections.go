package pages

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Project-Narvex/narvex-web/internal/cms"
	"github.com/Project-Narvex/narvex-web/internal/content"
)

const relatedLimit = 3

const (
	pagePortfolioItems = "portfolio_items"
	pageArticles       = "articles"
)

// Listing is a filtered collection page. The page shell and the items fall
// back independently.
type Listing[T any] struct {
	Page              content.ListingPage
	Items             []T
	Pagination        content.Pagination
	Categories        []content.Category
	Filter            content.ListFilter
	PageFromFallback  bool
	ItemsFromFallback bool
}

// FromFallback reports whether any part of the listing is static.
func (l Listing[T]) FromFallback() bool { return l.PageFromFallback || l.ItemsFromFallback }

// Source labels the listing for the data-source attribute.
func (l Listing[T]) Source() string { return sourceLabel(l.FromFallback()) }

// PortfolioDetail is one portfolio entry with entries from the same category.
type PortfolioDetail struct {
	Item    content.PortfolioItem
	Related []content.PortfolioItem
}

// ArticleDetail is one article with articles from the same category.
type ArticleDetail struct {
	Article content.Article
	Related []content.Article
}

// CompanyDetail is a company or subsidiary. Subsidiaries is filled for
// companies only.
type CompanyDetail struct {
	Company      content.Company
	Subsidiaries []content.Company
}

func (s *Service) listingPage(ctx context.Context, page string, fetch func(context.Context) (cms.Envelope, error), static func() content.ListingPage) (content.ListingPage, bool) {
	env, err := fetch(ctx)
	if err == nil {
		var lp content.ListingPage
		if lp, err = s.normalizer.NormalizeListing(env); err == nil {
			return lp, false
		}
	}
	s.fallback(ctx, page, err)
	return static(), true
}

// PortfolioItems returns one filtered page of portfolio entries. When the
// content source fails the static entries are filtered locally.
func (s *Service) PortfolioItems(ctx context.Context, f content.ListFilter) ([]content.PortfolioItem, content.Pagination, bool) {
	env, err := s.source.PortfolioItems(ctx, f.Query("date"))
	if err == nil {
		items, p, nerr := s.normalizer.NormalizePortfolioItems(env)
		if nerr == nil {
			return items, p, false
		}
		err = nerr
	}
	s.fallback(ctx, pagePortfolioItems, err)
	items, p := content.FilterPortfolio(content.Fallback().Portfolio, f)
	return items, p, true
}

// Articles returns one filtered page of articles, filtering the static
// articles locally when the content source fails.
func (s *Service) Articles(ctx context.Context, f content.ListFilter) ([]content.Article, content.Pagination, bool) {
	env, err := s.source.Articles(ctx, f.Query("publishedAt"))
	if err == nil {
		items, p, nerr := s.normalizer.NormalizeArticles(env)
		if nerr == nil {
			return items, p, false
		}
		err = nerr
	}
	s.fallback(ctx, pageArticles, err)
	items, p := content.FilterArticles(content.Fallback().Articles, f)
	return items, p, true
}

// Portfolio returns the portfolio listing for f.
func (s *Service) Portfolio(ctx context.Context, f content.ListFilter) Listing[content.PortfolioItem] {
	out := Listing[content.PortfolioItem]{Filter: f}
	var g errgroup.Group
	g.Go(func() error {
		out.Page, out.PageFromFallback = s.listingPage(ctx, PagePortfolio, s.source.PortfolioPage, content.FallbackPortfolioPage)
		return nil
	})
	g.Go(func() error {
		out.Items, out.Pagination, out.ItemsFromFallback = s.PortfolioItems(ctx, f)
		return nil
	})
	_ = g.Wait()

	cats := make([]content.Category, 0)
	for _, it := range content.Fallback().Portfolio {
		cats = append(cats, it.Category)
	}
	for _, it := range out.Items {
		cats = append(cats, it.Category)
	}
	out.Categories = content.Categories(cats)
	return out
}

// Blog returns the blog listing for f.
func (s *Service) Blog(ctx context.Context, f content.ListFilter) Listing[content.Article] {
	out := Listing[content.Article]{Filter: f}
	var g errgroup.Group
	g.Go(func() error {
		out.Page, out.PageFromFallback = s.listingPage(ctx, PageBlog, s.source.BlogPage, content.FallbackBlogPage)
		return nil
	})
	g.Go(func() error {
		out.Items, out.Pagination, out.ItemsFromFallback = s.Articles(ctx, f)
		return nil
	})
	_ = g.Wait()

	cats := make([]content.Category, 0)
	for _, a := range content.Fallback().Articles {
		cats = append(cats, a.Category)
	}
	for _, a := range out.Items {
		cats = append(cats, a.Category)
	}
	out.Categories = content.Categories(cats)
	return out
}

// lookup fetches one document by slug. A slug the content source does not
// know is ErrNotFound. Any other failure consults the static entries.
func lookup[T any](
	ctx context.Context,
	s *Service,
	page, slug string,
	fetch func(context.Context, string) (cms.Envelope, error),
	normalize func(cms.Envelope) (T, error),
	static func() []T,
	slugOf func(T) string,
) (T, bool, error) {
	var zero T
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return zero, false, ErrNotFound
	}
	env, err := fetch(ctx, slug)
	if errors.Is(err, cms.ErrNotFound) {
		return zero, false, ErrNotFound
	}
	if err == nil {
		v, nerr := normalize(env)
		if nerr == nil {
			return v, false, nil
		}
		err = nerr
	}
	for _, v := range static() {
		if slugOf(v) == slug {
			s.fallback(ctx, page, err)
			return v, true, nil
		}
	}
	s.log(ctx).Debug("slug missing from static content", zap.String("page", page), zap.String("slug", slug))
	return zero, false, ErrNotFound
}

// PortfolioItem returns one portfolio entry.
func (s *Service) PortfolioItem(ctx context.Context, slug string) (View[PortfolioDetail], error) {
	item, fromFallback, err := lookup(ctx, s, PagePortfolioItem, slug,
		s.source.PortfolioItem,
		s.normalizer.NormalizePortfolioItem,
		func() []content.PortfolioItem { return content.Fallback().Portfolio },
		func(p content.PortfolioItem) string { return p.Slug },
	)
	if err != nil {
		return View[PortfolioDetail]{}, err
	}
	f := content.ListFilter{Category: item.Category.Slug, PageSize: relatedLimit + 1}
	var related []content.PortfolioItem
	if fromFallback {
		related, _ = content.FilterPortfolio(content.Fallback().Portfolio, f)
	} else {
		related, _, _ = s.PortfolioItems(ctx, f)
	}
	return View[PortfolioDetail]{
		Page:         PortfolioDetail{Item: item, Related: without(related, item.Slug, func(p content.PortfolioItem) string { return p.Slug })},
		FromFallback: fromFallback,
	}, nil
}

// Article returns one blog article.
func (s *Service) Article(ctx context.Context, slug string) (View[ArticleDetail], error) {
	a, fromFallback, err := lookup(ctx, s, PageArticle, slug,
		s.source.Article,
		s.normalizer.NormalizeArticle,
		func() []content.Article { return content.Fallback().Articles },
		func(a content.Article) string { return a.Slug },
	)
	if err != nil {
		return View[ArticleDetail]{}, err
	}
	f := content.ListFilter{Category: a.Category.Slug, PageSize: relatedLimit + 1}
	var related []content.Article
	if fromFallback {
		related, _ = content.FilterArticles(content.Fallback().Articles, f)
	} else {
		related, _, _ = s.Articles(ctx, f)
	}
	return View[ArticleDetail]{
		Page:         ArticleDetail{Article: a, Related: without(related, a.Slug, func(a content.Article) string { return a.Slug })},
		FromFallback: fromFallback,
	}, nil
}

// Company returns one group company and its subsidiaries.
func (s *Service) Company(ctx context.Context, slug string) (View[CompanyDetail], error) {
	c, fromFallback, err := lookup(ctx, s, PageCompany, slug,
		s.source.Company,
		func(env cms.Envelope) (content.Company, error) {
			return s.normalizer.NormalizeCompany(env, content.KindCompany)
		},
		func() []content.Company { return content.Fallback().Companies },
		func(c content.Company) string { return c.Slug },
	)
	if err != nil {
		return View[CompanyDetail]{}, err
	}
	var subs []content.Company
	if fromFallback {
		subs = content.Fallback().Subsidiaries
	} else {
		subs = s.Subsidiaries(ctx).Page
	}
	children := make([]content.Company, 0, len(subs))
	for _, sub := range subs {
		if sub.Parent.URL == "/companies/"+c.Slug {
			children = append(children, sub)
		}
	}
	return View[CompanyDetail]{
		Page:         CompanyDetail{Company: c, Subsidiaries: children},
		FromFallback: fromFallback,
	}, nil
}

// Subsidiary returns one subsidiary.
func (s *Service) Subsidiary(ctx context.Context, slug string) (View[CompanyDetail], error) {
	c, fromFallback, err := lookup(ctx, s, PageSubsidiary, slug,
		s.source.Subsidiary,
		func(env cms.Envelope) (content.Company, error) {
			return s.normalizer.NormalizeCompany(env, content.KindSubsidiary)
		},
		func() []content.Company { return content.Fallback().Subsidiaries },
		func(c content.Company) string { return c.Slug },
	)
	if err != nil {
		return View[CompanyDetail]{}, err
	}
	return View[CompanyDetail]{
		Page:         CompanyDetail{Company: c, Subsidiaries: []content.Company{}},
		FromFallback: fromFallback,
	}, nil
}

func without[T any](items []T, slug string, slugOf func(T) string) []T {
	out := make([]T, 0, relatedLimit)
	for _, it := range items {
		if slugOf(it) == slug {
			continue
		}
		if len(out) == relatedLimit {
			break
		}
		out = append(out, it)
	}
	return out
}
