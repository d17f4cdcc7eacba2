// Package pages assembles page view models from the content source, falling
// back to the static content when the source is unavailable or returns
// documents that cannot be normalised.
package pages

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Project-Narvex/narvex-web/internal/cms"
	"github.com/Project-Narvex/narvex-web/internal/content"
	"github.com/Project-Narvex/narvex-web/internal/metrics"
	"github.com/Project-Narvex/narvex-web/internal/observability"
)

// ErrNotFound is returned when a slug matches no document.
var ErrNotFound = errors.New("pages: not found")

// Page names used in logs and the fallback counter.
const (
	PageHome          = "home"
	PageAbout         = "about"
	PageServices      = "services"
	PagePortfolio     = "portfolio"
	PageBlog          = "blog"
	PageContact       = "contact"
	PageCompanies     = "companies"
	PageSubsidiaries  = "subsidiaries"
	PageCompany       = "company"
	PageSubsidiary    = "subsidiary"
	PagePortfolioItem = "portfolio_item"
	PageArticle       = "article"
)

// ContentSource is the subset of the CMS client the pages read from.
type ContentSource interface {
	HomePage(ctx context.Context) (cms.Envelope, error)
	AboutPage(ctx context.Context) (cms.Envelope, error)
	ServicesPage(ctx context.Context) (cms.Envelope, error)
	PortfolioPage(ctx context.Context) (cms.Envelope, error)
	BlogPage(ctx context.Context) (cms.Envelope, error)
	ContactPage(ctx context.Context) (cms.Envelope, error)
	Companies(ctx context.Context) (cms.Envelope, error)
	Company(ctx context.Context, slug string) (cms.Envelope, error)
	Subsidiaries(ctx context.Context) (cms.Envelope, error)
	Subsidiary(ctx context.Context, slug string) (cms.Envelope, error)
	Articles(ctx context.Context, q cms.Query) (cms.Envelope, error)
	Article(ctx context.Context, slug string) (cms.Envelope, error)
	PortfolioItems(ctx context.Context, q cms.Query) (cms.Envelope, error)
	PortfolioItem(ctx context.Context, slug string) (cms.Envelope, error)
}

var _ ContentSource = (*cms.Client)(nil)

// View wraps a page model with where it came from.
type View[T any] struct {
	Page         T
	FromFallback bool
}

// Source labels a view for the data-source attribute.
func (v View[T]) Source() string { return sourceLabel(v.FromFallback) }

func sourceLabel(fallback bool) string {
	if fallback {
		return "fallback"
	}
	return "cms"
}

// Service builds page views.
type Service struct {
	source     ContentSource
	normalizer content.Normalizer
	logger     *zap.Logger
	metrics    *metrics.Provider
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used when the request context carries none.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records fallbacks on p.
func WithMetrics(p *metrics.Provider) Option {
	return func(s *Service) { s.metrics = p }
}

// WithAssetBase resolves relative media URLs against base.
func WithAssetBase(base string) Option {
	return func(s *Service) { s.normalizer = content.NewNormalizer(base) }
}

// NewService returns a Service reading from source.
func NewService(source ContentSource, opts ...Option) *Service {
	s := &Service{
		source:     source,
		normalizer: content.NewNormalizer(""),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	if l := observability.FromContext(ctx); l != observability.NoopLogger() {
		return l
	}
	return s.logger
}

// fallback records a substitution for page.
func (s *Service) fallback(ctx context.Context, page string, err error) {
	s.log(ctx).Warn("serving static fallback",
		zap.String("page", page),
		zap.Error(err),
	)
	s.metrics.Fallback(page)
}

// Home returns the home page.
func (s *Service) Home(ctx context.Context) View[content.HomePage] {
	env, err := s.source.HomePage(ctx)
	if err == nil {
		var page content.HomePage
		if page, err = s.normalizer.NormalizeHome(env); err == nil {
			return View[content.HomePage]{Page: page}
		}
	}
	s.fallback(ctx, PageHome, err)
	return View[content.HomePage]{Page: content.FallbackHome(), FromFallback: true}
}

// fetchWithClients loads a page document and the home page concurrently.
// Both must succeed.
func (s *Service) fetchWithClients(ctx context.Context, fetch func(context.Context) (cms.Envelope, error)) (cms.Envelope, []content.ClientLogo, error) {
	var pageEnv, homeEnv cms.Envelope
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		env, err := fetch(gctx)
		if err != nil {
			return fmt.Errorf("page: %w", err)
		}
		pageEnv = env
		return nil
	})
	g.Go(func() error {
		env, err := s.source.HomePage(gctx)
		if err != nil {
			return fmt.Errorf("home page: %w", err)
		}
		homeEnv = env
		return nil
	})
	if err := g.Wait(); err != nil {
		return cms.Envelope{}, nil, err
	}
	clients, err := s.normalizer.HomeClients(homeEnv)
	if err != nil {
		return cms.Envelope{}, nil, fmt.Errorf("home clients: %w", err)
	}
	return pageEnv, clients, nil
}

// About returns the about page with the home page's client logos.
func (s *Service) About(ctx context.Context) View[content.AboutPage] {
	env, clients, err := s.fetchWithClients(ctx, s.source.AboutPage)
	if err == nil {
		var page content.AboutPage
		if page, err = s.normalizer.NormalizeAbout(env, clients); err == nil {
			return View[content.AboutPage]{Page: page}
		}
	}
	s.fallback(ctx, PageAbout, err)
	return View[content.AboutPage]{Page: content.FallbackAbout(), FromFallback: true}
}

// Services returns the services page with the home page's client logos.
func (s *Service) Services(ctx context.Context) View[content.ServicesPage] {
	env, clients, err := s.fetchWithClients(ctx, s.source.ServicesPage)
	if err == nil {
		var page content.ServicesPage
		if page, err = s.normalizer.NormalizeServices(env, clients); err == nil {
			return View[content.ServicesPage]{Page: page}
		}
	}
	s.fallback(ctx, PageServices, err)
	return View[content.ServicesPage]{Page: content.FallbackServices(), FromFallback: true}
}

// Contact returns the contact page.
func (s *Service) Contact(ctx context.Context) View[content.ContactPage] {
	env, err := s.source.ContactPage(ctx)
	if err == nil {
		var page content.ContactPage
		if page, err = s.normalizer.NormalizeContactPage(env); err == nil {
			return View[content.ContactPage]{Page: page}
		}
	}
	s.fallback(ctx, PageContact, err)
	return View[content.ContactPage]{Page: content.FallbackContact(), FromFallback: true}
}

// Companies lists the group companies.
func (s *Service) Companies(ctx context.Context) View[[]content.Company] {
	return s.companyList(ctx, PageCompanies, content.KindCompany, s.source.Companies, content.Fallback().Companies)
}

// Subsidiaries lists the subsidiaries.
func (s *Service) Subsidiaries(ctx context.Context) View[[]content.Company] {
	return s.companyList(ctx, PageSubsidiaries, content.KindSubsidiary, s.source.Subsidiaries, content.Fallback().Subsidiaries)
}

func (s *Service) companyList(ctx context.Context, page, kind string, fetch func(context.Context) (cms.Envelope, error), static []content.Company) View[[]content.Company] {
	env, err := fetch(ctx)
	if err == nil {
		var list []content.Company
		if list, err = s.normalizer.NormalizeCompanies(env, kind); err == nil {
			return View[[]content.Company]{Page: list}
		}
	}
	s.fallback(ctx, page, err)
	return View[[]content.Company]{Page: static, FromFallback: true}
}
