package content

import (
	"encoding/json"
	"strings"

	"github.com/Project-Narvex/narvex-web/internal/cms"
)

// pageDocument decodes a single-type page. A document without blocks has
// nothing to render and counts as empty.
func pageDocument(env cms.Envelope) (cms.Document, error) {
	var doc cms.Document
	if err := decodeDocument(env, &doc); err != nil {
		return cms.Document{}, err
	}
	if len(doc.Blocks) == 0 {
		return cms.Document{}, ErrEmptyDocument
	}
	return doc, nil
}

// NormalizeHome maps the home page document.
func (n Normalizer) NormalizeHome(env cms.Envelope) (HomePage, error) {
	doc, err := pageDocument(env)
	if err != nil {
		return HomePage{}, err
	}
	page := HomePage{
		SEO:              n.seo(doc.SEO, doc.Title),
		Services:         []Service{},
		FeaturedProjects: []PortfolioItem{},
		Stats:            []Stat{},
		Testimonials:     []Testimonial{},
		Clients:          []ClientLogo{},
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockHero); ok {
		page.Hero = n.normalizeHero(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockServices); ok {
		page.ServicesSection, page.Services = n.normalizeServicesBlock(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockFeaturedProjects); ok {
		page.FeaturedSection, page.FeaturedProjects = n.normalizeFeaturedProjects(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockStats); ok {
		page.Stats = normalizeStats(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockTestimonials); ok {
		page.TestimonialsTitle, page.Testimonials = n.normalizeTestimonials(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockClients); ok {
		page.ClientsTitle, page.Clients = n.normalizeClients(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockCTA); ok {
		page.CTA = normalizeCTA(b)
	}
	return page, nil
}

// HomeClients extracts only the client logos from the home page. The about
// and services pages reuse them.
func (n Normalizer) HomeClients(env cms.Envelope) ([]ClientLogo, error) {
	doc, err := pageDocument(env)
	if err != nil {
		return nil, err
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockClients); ok {
		_, clients := n.normalizeClients(b)
		return clients, nil
	}
	return []ClientLogo{}, nil
}

// NormalizeAbout maps the about page document. clients come from the home page.
func (n Normalizer) NormalizeAbout(env cms.Envelope, clients []ClientLogo) (AboutPage, error) {
	doc, err := pageDocument(env)
	if err != nil {
		return AboutPage{}, err
	}
	page := AboutPage{
		SEO:     n.seo(doc.SEO, doc.Title),
		Story:   Story{Paragraphs: []string{}},
		Values:  []Value{},
		Team:    []TeamMember{},
		Awards:  []Award{},
		Stats:   []Stat{},
		Clients: orEmpty(clients),
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockHero); ok {
		page.Hero = n.normalizeHero(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockStory); ok {
		page.Story = n.normalizeStory(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockValues); ok {
		page.ValuesTitle, page.Values = normalizeValues(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockTeam); ok {
		page.TeamTitle, page.Team = n.normalizeTeam(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockAwards); ok {
		page.AwardsTitle, page.Awards = n.normalizeAwards(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockStats); ok {
		page.Stats = normalizeStats(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockCTA); ok {
		page.CTA = normalizeCTA(b)
	}
	return page, nil
}

// NormalizeServices maps the services page document. clients come from the home page.
func (n Normalizer) NormalizeServices(env cms.Envelope, clients []ClientLogo) (ServicesPage, error) {
	doc, err := pageDocument(env)
	if err != nil {
		return ServicesPage{}, err
	}
	page := ServicesPage{
		SEO:      n.seo(doc.SEO, doc.Title),
		Services: []Service{},
		Process:  []ProcessStep{},
		FAQ:      []FAQ{},
		Clients:  orEmpty(clients),
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockHero); ok {
		page.Hero = n.normalizeHero(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockServices); ok {
		_, page.Services = n.normalizeServicesBlock(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockProcess); ok {
		page.ProcessTitle, page.Process = normalizeProcess(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockFAQ); ok {
		page.FAQTitle, page.FAQ = normalizeFAQ(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockCTA); ok {
		page.CTA = normalizeCTA(b)
	}
	return page, nil
}

// NormalizeListing maps the portfolio or blog page shell.
func (n Normalizer) NormalizeListing(env cms.Envelope) (ListingPage, error) {
	doc, err := pageDocument(env)
	if err != nil {
		return ListingPage{}, err
	}
	page := ListingPage{SEO: n.seo(doc.SEO, doc.Title)}
	if b, ok := cms.FindBlock(doc.Blocks, BlockHero); ok {
		page.Hero = n.normalizeHero(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockCTA); ok {
		page.CTA = normalizeCTA(b)
	}
	return page, nil
}

type contactFormProps struct {
	Services  textList `json:"services"`
	Budgets   textList `json:"budgets"`
	Timelines textList `json:"timelines"`
}

// NormalizeContactPage maps the contact page document.
func (n Normalizer) NormalizeContactPage(env cms.Envelope) (ContactPage, error) {
	doc, err := pageDocument(env)
	if err != nil {
		return ContactPage{}, err
	}
	page := ContactPage{
		SEO:       n.seo(doc.SEO, doc.Title),
		Location:  Location{Hours: []string{}},
		Services:  []string{},
		Budgets:   []string{},
		Timelines: []string{},
		FAQ:       []FAQ{},
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockHero); ok {
		page.Hero = n.normalizeHero(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockLocation); ok {
		page.Location = normalizeLocation(b)
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockContactForm); ok {
		var p contactFormProps
		if err := b.Decode(&p); err == nil {
			page.Services = p.Services.strings()
			page.Budgets = p.Budgets.strings()
			page.Timelines = p.Timelines.strings()
		}
	}
	if b, ok := cms.FindBlock(doc.Blocks, BlockFAQ); ok {
		_, page.FAQ = normalizeFAQ(b)
	}
	return page, nil
}

type featuredProps struct {
	Title      string            `json:"title"`
	Subtitle   cms.RichText      `json:"subtitle"`
	Portfolios []json.RawMessage `json:"portfolios"`
	Projects   []json.RawMessage `json:"projects"`
}

func (n Normalizer) normalizeFeaturedProjects(b cms.Block) (Section, []PortfolioItem) {
	var p featuredProps
	if err := b.Decode(&p); err != nil {
		return Section{}, []PortfolioItem{}
	}
	items := make([]PortfolioItem, 0)
	for _, raw := range pick(p.Portfolios, p.Projects) {
		if item, err := n.portfolioItem(raw); err == nil {
			items = append(items, item)
		}
	}
	return Section{Title: strings.TrimSpace(p.Title), Subtitle: text(p.Subtitle)}, items
}
