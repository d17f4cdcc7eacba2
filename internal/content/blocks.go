package content

import (
	"strings"

	"github.com/Project-Narvex/narvex-web/internal/cms"
	"github.com/Project-Narvex/narvex-web/internal/widgets"
)

// Component tags of the page dynamic zones.
const (
	BlockHero             = "sections.hero"
	BlockServices         = "sections.services"
	BlockTestimonials     = "sections.testimonials"
	BlockClients          = "sections.clients"
	BlockStats            = "sections.stats"
	BlockTeam             = "sections.team"
	BlockAwards           = "sections.awards"
	BlockValues           = "sections.values"
	BlockProcess          = "sections.process"
	BlockGallery          = "sections.gallery"
	BlockCTA              = "sections.cta"
	BlockFAQ              = "sections.faq"
	BlockLocation         = "sections.location"
	BlockStory            = "sections.story"
	BlockFeaturedProjects = "sections.featured-projects"
	BlockContactForm      = "sections.contact-form"
)

type heroProps struct {
	Eyebrow         string       `json:"eyebrow"`
	Title           string       `json:"title"`
	Subtitle        cms.RichText `json:"subtitle"`
	Description     cms.RichText `json:"description"`
	BackgroundImage *cms.Media   `json:"backgroundImage"`
	Image           *cms.Media   `json:"image"`
	PrimaryButton   *rawLink     `json:"primaryButton"`
	SecondaryButton *rawLink     `json:"secondaryButton"`
}

func (n Normalizer) normalizeHero(b cms.Block) Hero {
	var p heroProps
	if err := b.Decode(&p); err != nil {
		return Hero{}
	}
	bg := p.BackgroundImage
	if bg.IsZero() {
		bg = p.Image
	}
	return Hero{
		Eyebrow:      strings.TrimSpace(p.Eyebrow),
		Title:        strings.TrimSpace(p.Title),
		Subtitle:     firstNonEmpty(text(p.Subtitle), text(p.Description)),
		Background:   n.Image(bg, VariantLarge, p.Title),
		PrimaryCTA:   p.PrimaryButton.link(),
		SecondaryCTA: p.SecondaryButton.link(),
	}
}

type serviceProps struct {
	Title       string       `json:"title"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description cms.RichText `json:"description"`
	Icon        string       `json:"icon"`
	Features    textList     `json:"features"`
	Image       *cms.Media   `json:"image"`
}

type servicesProps struct {
	Title    string         `json:"title"`
	Subtitle cms.RichText   `json:"subtitle"`
	Services []serviceProps `json:"services"`
	Items    []serviceProps `json:"items"`
}

func (n Normalizer) service(p serviceProps) Service {
	title := firstNonEmpty(p.Title, p.Name)
	return Service{
		Title:       title,
		Slug:        firstNonEmpty(p.Slug, slugify(title)),
		Description: text(p.Description),
		Icon:        strings.TrimSpace(p.Icon),
		Features:    p.Features.strings(),
		Image:       n.Image(p.Image, VariantMedium, title),
	}
}

func (n Normalizer) normalizeServicesBlock(b cms.Block) (Section, []Service) {
	var p servicesProps
	if err := b.Decode(&p); err != nil {
		return Section{}, []Service{}
	}
	items := pick(p.Services, p.Items)
	out := make([]Service, 0, len(items))
	for _, s := range items {
		out = append(out, n.service(s))
	}
	return Section{Title: strings.TrimSpace(p.Title), Subtitle: text(p.Subtitle)}, out
}

type testimonialProps struct {
	Quote    cms.RichText   `json:"quote"`
	Content  cms.RichText   `json:"content"`
	Name     string         `json:"name"`
	Author   string         `json:"author"`
	Role     string         `json:"role"`
	Position string         `json:"position"`
	Company  string         `json:"company"`
	Avatar   *cms.Media     `json:"avatar"`
	Rating   cms.FlexString `json:"rating"`
}

type testimonialsProps struct {
	Title        string             `json:"title"`
	Testimonials []testimonialProps `json:"testimonials"`
	Items        []testimonialProps `json:"items"`
}

func (n Normalizer) normalizeTestimonials(b cms.Block) (string, []Testimonial) {
	var p testimonialsProps
	if err := b.Decode(&p); err != nil {
		return "", []Testimonial{}
	}
	items := pick(p.Testimonials, p.Items)
	out := make([]Testimonial, 0, len(items))
	for _, t := range items {
		quote := firstNonEmpty(text(t.Quote), text(t.Content))
		if quote == "" {
			continue
		}
		rating := t.Rating.Int()
		if rating < 0 || rating > 5 {
			rating = 0
		}
		author := firstNonEmpty(t.Name, t.Author)
		out = append(out, Testimonial{
			Quote:   quote,
			Author:  author,
			Role:    firstNonEmpty(t.Role, t.Position),
			Company: strings.TrimSpace(t.Company),
			Avatar:  n.Image(t.Avatar, VariantThumbnail, author),
			Rating:  rating,
		})
	}
	return strings.TrimSpace(p.Title), out
}

type clientProps struct {
	Name    string     `json:"name"`
	URL     string     `json:"url"`
	Website string     `json:"website"`
	Logo    *cms.Media `json:"logo"`
}

type clientsProps struct {
	Title   string        `json:"title"`
	Clients []clientProps `json:"clients"`
	Logos   []clientProps `json:"logos"`
}

func (n Normalizer) normalizeClients(b cms.Block) (string, []ClientLogo) {
	var p clientsProps
	if err := b.Decode(&p); err != nil {
		return "", []ClientLogo{}
	}
	items := pick(p.Clients, p.Logos)
	out := make([]ClientLogo, 0, len(items))
	for _, c := range items {
		logo := n.Image(c.Logo, VariantSmall, c.Name)
		if strings.TrimSpace(c.Name) == "" && logo.IsZero() {
			continue
		}
		out = append(out, ClientLogo{
			Name: strings.TrimSpace(c.Name),
			URL:  firstNonEmpty(c.URL, c.Website),
			Logo: logo,
		})
	}
	return strings.TrimSpace(p.Title), out
}

type statProps struct {
	Label  string         `json:"label"`
	Title  string         `json:"title"`
	Value  cms.FlexString `json:"value"`
	Number cms.FlexString `json:"number"`
	Prefix string         `json:"prefix"`
	Suffix string         `json:"suffix"`
}

type statsProps struct {
	Stats []statProps `json:"stats"`
	Items []statProps `json:"items"`
}

func normalizeStats(b cms.Block) []Stat {
	var p statsProps
	if err := b.Decode(&p); err != nil {
		return []Stat{}
	}
	items := pick(p.Stats, p.Items)
	out := make([]Stat, 0, len(items))
	for _, s := range items {
		raw := s.Value
		if raw == "" {
			raw = s.Number
		}
		v, prefix, suffix := parseStat(raw, s.Prefix, s.Suffix)
		label := firstNonEmpty(s.Label, s.Title)
		if label == "" {
			continue
		}
		out = append(out, Stat{Label: label, Value: v, Prefix: prefix, Suffix: suffix})
	}
	return out
}

type memberProps struct {
	Name      string       `json:"name"`
	Role      string       `json:"role"`
	Position  string       `json:"position"`
	Bio       cms.RichText `json:"bio"`
	Photo     *cms.Media   `json:"photo"`
	Image     *cms.Media   `json:"image"`
	LinkedIn  string       `json:"linkedin"`
	Instagram string       `json:"instagram"`
}

type teamProps struct {
	Title   string        `json:"title"`
	Members []memberProps `json:"members"`
	Team    []memberProps `json:"team"`
}

func (n Normalizer) normalizeTeam(b cms.Block) (string, []TeamMember) {
	var p teamProps
	if err := b.Decode(&p); err != nil {
		return "", []TeamMember{}
	}
	items := pick(p.Members, p.Team)
	out := make([]TeamMember, 0, len(items))
	for _, m := range items {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			continue
		}
		photo := m.Photo
		if photo.IsZero() {
			photo = m.Image
		}
		socials := []Link{}
		if u := strings.TrimSpace(m.LinkedIn); u != "" {
			socials = append(socials, Link{Label: "LinkedIn", URL: u})
		}
		if u := strings.TrimSpace(m.Instagram); u != "" {
			socials = append(socials, Link{Label: "Instagram", URL: u})
		}
		out = append(out, TeamMember{
			Name:    name,
			Role:    firstNonEmpty(m.Role, m.Position),
			Bio:     text(m.Bio),
			Photo:   n.Image(photo, VariantSmall, name),
			Socials: socials,
		})
	}
	return strings.TrimSpace(p.Title), out
}

type awardProps struct {
	Title        string         `json:"title"`
	Issuer       string         `json:"issuer"`
	Organization string         `json:"organization"`
	Year         cms.FlexString `json:"year"`
	Description  cms.RichText   `json:"description"`
	Image        *cms.Media     `json:"image"`
}

type awardsProps struct {
	Title  string       `json:"title"`
	Awards []awardProps `json:"awards"`
	Items  []awardProps `json:"items"`
}

func (n Normalizer) normalizeAwards(b cms.Block) (string, []Award) {
	var p awardsProps
	if err := b.Decode(&p); err != nil {
		return "", []Award{}
	}
	items := pick(p.Awards, p.Items)
	out := make([]Award, 0, len(items))
	for _, a := range items {
		title := strings.TrimSpace(a.Title)
		if title == "" {
			continue
		}
		out = append(out, Award{
			Title:       title,
			Issuer:      firstNonEmpty(a.Issuer, a.Organization),
			Year:        strings.TrimSpace(a.Year.String()),
			Description: text(a.Description),
			Image:       n.Image(a.Image, VariantSmall, title),
		})
	}
	return strings.TrimSpace(p.Title), out
}

type valueProps struct {
	Title       string       `json:"title"`
	Description cms.RichText `json:"description"`
	Icon        string       `json:"icon"`
}

type valuesProps struct {
	Title  string       `json:"title"`
	Values []valueProps `json:"values"`
	Items  []valueProps `json:"items"`
}

func normalizeValues(b cms.Block) (string, []Value) {
	var p valuesProps
	if err := b.Decode(&p); err != nil {
		return "", []Value{}
	}
	items := pick(p.Values, p.Items)
	out := make([]Value, 0, len(items))
	for _, v := range items {
		if strings.TrimSpace(v.Title) == "" {
			continue
		}
		out = append(out, Value{
			Title:       strings.TrimSpace(v.Title),
			Description: text(v.Description),
			Icon:        strings.TrimSpace(v.Icon),
		})
	}
	return strings.TrimSpace(p.Title), out
}

type stepProps struct {
	Number      cms.FlexString `json:"number"`
	Title       string         `json:"title"`
	Description cms.RichText   `json:"description"`
}

type processProps struct {
	Title string      `json:"title"`
	Steps []stepProps `json:"steps"`
	Items []stepProps `json:"items"`
}

func normalizeProcess(b cms.Block) (string, []ProcessStep) {
	var p processProps
	if err := b.Decode(&p); err != nil {
		return "", []ProcessStep{}
	}
	items := pick(p.Steps, p.Items)
	out := make([]ProcessStep, 0, len(items))
	for _, s := range items {
		if strings.TrimSpace(s.Title) == "" {
			continue
		}
		number := s.Number.Int()
		if number <= 0 {
			number = len(out) + 1
		}
		out = append(out, ProcessStep{
			Number:      number,
			Title:       strings.TrimSpace(s.Title),
			Description: text(s.Description),
		})
	}
	return strings.TrimSpace(p.Title), out
}

type galleryProps struct {
	Title  string      `json:"title"`
	Images []cms.Media `json:"images"`
}

func (n Normalizer) normalizeGallery(b cms.Block) (string, []widgets.Image) {
	var p galleryProps
	if err := b.Decode(&p); err != nil {
		return "", []widgets.Image{}
	}
	return strings.TrimSpace(p.Title), n.images(p.Images, VariantMedium, p.Title)
}

type ctaProps struct {
	Title       string       `json:"title"`
	Description cms.RichText `json:"description"`
	ButtonText  string       `json:"buttonText"`
	ButtonURL   string       `json:"buttonUrl"`
	Button      *rawLink     `json:"button"`
}

func normalizeCTA(b cms.Block) CTA {
	var p ctaProps
	if err := b.Decode(&p); err != nil {
		return CTA{}
	}
	button := p.Button.link()
	if button.Label == "" {
		button.Label = strings.TrimSpace(p.ButtonText)
	}
	if button.URL == "" {
		button.URL = strings.TrimSpace(p.ButtonURL)
	}
	return CTA{Title: strings.TrimSpace(p.Title), Description: text(p.Description), Button: button}
}

type faqProps struct {
	Question string       `json:"question"`
	Answer   cms.RichText `json:"answer"`
}

type faqsProps struct {
	Title string     `json:"title"`
	FAQs  []faqProps `json:"faqs"`
	Items []faqProps `json:"items"`
}

func normalizeFAQ(b cms.Block) (string, []FAQ) {
	var p faqsProps
	if err := b.Decode(&p); err != nil {
		return "", []FAQ{}
	}
	items := pick(p.FAQs, p.Items)
	out := make([]FAQ, 0, len(items))
	for _, f := range items {
		q := strings.TrimSpace(f.Question)
		if q == "" {
			continue
		}
		out = append(out, FAQ{Question: q, Answer: text(f.Answer)})
	}
	return strings.TrimSpace(p.Title), out
}

type locationProps struct {
	Title     string         `json:"title"`
	Address   cms.RichText   `json:"address"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email"`
	Hours     textList       `json:"hours"`
	Latitude  cms.FlexString `json:"latitude"`
	Longitude cms.FlexString `json:"longitude"`
}

func (p locationProps) location() Location {
	return Location{
		Title:     strings.TrimSpace(p.Title),
		Address:   text(p.Address),
		Phone:     strings.TrimSpace(p.Phone),
		Email:     strings.TrimSpace(p.Email),
		Hours:     p.Hours.strings(),
		Latitude:  parseFloat(p.Latitude),
		Longitude: parseFloat(p.Longitude),
	}
}

func normalizeLocation(b cms.Block) Location {
	var p locationProps
	if err := b.Decode(&p); err != nil {
		return Location{Hours: []string{}}
	}
	return p.location()
}

type storyProps struct {
	Title string       `json:"title"`
	Body  cms.RichText `json:"body"`
	Image *cms.Media   `json:"image"`
}

func (n Normalizer) normalizeStory(b cms.Block) Story {
	var p storyProps
	if err := b.Decode(&p); err != nil {
		return Story{Paragraphs: []string{}}
	}
	return Story{
		Title:      strings.TrimSpace(p.Title),
		Paragraphs: orEmpty(cms.ExtractParagraphs(p.Body)),
		Image:      n.Image(p.Image, VariantMedium, p.Title),
	}
}
