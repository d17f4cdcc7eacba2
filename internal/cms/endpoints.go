package cms

import (
	"context"
	"encoding/json"
	"strings"
)

// Collection and single-type endpoint names.
const (
	EndpointHomePage       = "home-page"
	EndpointAboutPage      = "about-page"
	EndpointServicesPage   = "services-page"
	EndpointPortfolioPage  = "portfolio-page"
	EndpointBlogPage       = "blog-page"
	EndpointContactPage    = "contact-page"
	EndpointCompanies      = "companies"
	EndpointSubsidiaries   = "subsidiaries"
	EndpointArticles       = "articles"
	EndpointPortfolioItems = "portfolios"
	EndpointContactForms   = "contact-submissions"
)

var pagePopulate = []string{"blocks.*", "seo.*"}

func (c *Client) singleType(ctx context.Context, endpoint string) (Envelope, error) {
	return c.Get(ctx, endpoint, Query{Populate: pagePopulate})
}

// HomePage fetches the home page single type with its blocks.
func (c *Client) HomePage(ctx context.Context) (Envelope, error) {
	return c.singleType(ctx, EndpointHomePage)
}

func (c *Client) AboutPage(ctx context.Context) (Envelope, error) {
	return c.singleType(ctx, EndpointAboutPage)
}

func (c *Client) ServicesPage(ctx context.Context) (Envelope, error) {
	return c.singleType(ctx, EndpointServicesPage)
}

func (c *Client) PortfolioPage(ctx context.Context) (Envelope, error) {
	return c.singleType(ctx, EndpointPortfolioPage)
}

func (c *Client) BlogPage(ctx context.Context) (Envelope, error) {
	return c.singleType(ctx, EndpointBlogPage)
}

func (c *Client) ContactPage(ctx context.Context) (Envelope, error) {
	return c.singleType(ctx, EndpointContactPage)
}

// Companies lists the group companies.
func (c *Client) Companies(ctx context.Context) (Envelope, error) {
	return c.Get(ctx, EndpointCompanies, Query{
		Populate: []string{"logo", "cover", "services"},
		Sort:     []string{"order:asc", "name:asc"},
		Limit:    100,
	})
}

// Company fetches one company by slug.
func (c *Client) Company(ctx context.Context, slug string) (Envelope, error) {
	return c.bySlug(ctx, EndpointCompanies, slug, []string{"logo", "cover", "services", "gallery", "blocks.*", "seo.*"})
}

// Subsidiaries lists subsidiaries.
func (c *Client) Subsidiaries(ctx context.Context) (Envelope, error) {
	return c.Get(ctx, EndpointSubsidiaries, Query{
		Populate: []string{"logo", "cover", "parent"},
		Sort:     []string{"order:asc", "name:asc"},
		Limit:    100,
	})
}

// Subsidiary fetches one subsidiary by slug.
func (c *Client) Subsidiary(ctx context.Context, slug string) (Envelope, error) {
	return c.bySlug(ctx, EndpointSubsidiaries, slug, []string{"logo", "cover", "parent", "gallery", "blocks.*", "seo.*"})
}

// Articles lists blog articles. Population and default sort are added to q.
func (c *Client) Articles(ctx context.Context, q Query) (Envelope, error) {
	if len(q.Populate) == 0 && !q.PopulateAll {
		q.Populate = []string{"cover", "category", "author.avatar", "tags"}
	}
	if len(q.Sort) == 0 {
		q.Sort = []string{"publishedAt:desc"}
	}
	return c.Get(ctx, EndpointArticles, q)
}

// Article fetches one article by slug.
func (c *Client) Article(ctx context.Context, slug string) (Envelope, error) {
	return c.bySlug(ctx, EndpointArticles, slug, []string{"cover", "category", "author.avatar", "tags", "seo.*"})
}

// PortfolioItems lists portfolio entries.
func (c *Client) PortfolioItems(ctx context.Context, q Query) (Envelope, error) {
	if len(q.Populate) == 0 && !q.PopulateAll {
		q.Populate = []string{"cover", "category", "gallery", "tags"}
	}
	if len(q.Sort) == 0 {
		q.Sort = []string{"date:desc"}
	}
	return c.Get(ctx, EndpointPortfolioItems, q)
}

// PortfolioItem fetches one portfolio entry by slug.
func (c *Client) PortfolioItem(ctx context.Context, slug string) (Envelope, error) {
	return c.bySlug(ctx, EndpointPortfolioItems, slug, []string{"cover", "category", "gallery", "tags", "blocks.*", "seo.*"})
}

// CreateContactSubmission stores a contact form submission.
func (c *Client) CreateContactSubmission(ctx context.Context, v any) (Envelope, error) {
	return c.Post(ctx, EndpointContactForms, v)
}

// bySlug returns an envelope whose Data is the single matching document.
func (c *Client) bySlug(ctx context.Context, endpoint, slug string, populate []string) (Envelope, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Envelope{}, ErrNotFound
	}
	env, err := c.Get(ctx, endpoint, Query{
		Populate: populate,
		Filters:  []Filter{Eq("slug", slug)},
		Limit:    1,
	})
	if err != nil {
		return Envelope{}, err
	}
	items, err := env.Items()
	if err != nil {
		return Envelope{}, err
	}
	if len(items) == 0 {
		return Envelope{}, ErrNotFound
	}
	return Envelope{Data: json.RawMessage(items[0]), Meta: env.Meta}, nil
}
