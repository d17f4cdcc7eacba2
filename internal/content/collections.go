package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Project-Narvex/narvex-web/internal/cms"
)

const excerptLength = 180

// rawCategory accepts either a category name or a {name, slug} relation.
type rawCategory Category

func (c *rawCategory) UnmarshalJSON(data []byte) error {
	*c = rawCategory{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*c = rawCategory{Name: strings.TrimSpace(s), Slug: slugify(s)}
		}
	case '{':
		var obj struct {
			Name  string `json:"name"`
			Title string `json:"title"`
			Slug  string `json:"slug"`
		}
		if err := json.Unmarshal(data, &obj); err == nil {
			name := firstNonEmpty(obj.Name, obj.Title)
			*c = rawCategory{Name: name, Slug: firstNonEmpty(obj.Slug, slugify(name))}
		}
	}
	return nil
}

type portfolioProps struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Client      string          `json:"client"`
	Category    rawCategory     `json:"category"`
	Summary     cms.RichText    `json:"summary"`
	Excerpt     cms.RichText    `json:"excerpt"`
	Description json.RawMessage `json:"description"`
	Content     json.RawMessage `json:"content"`
	Date        cms.FlexString  `json:"date"`
	CompletedAt cms.FlexString  `json:"completedAt"`
	Year        cms.FlexString  `json:"year"`
	Cover       *cms.Media      `json:"cover"`
	CoverImage  *cms.Media      `json:"coverImage"`
	Gallery     []cms.Media     `json:"gallery"`
	Tags        textList        `json:"tags"`
	Services    textList        `json:"services"`
	Featured    bool            `json:"featured"`
	ExternalURL string          `json:"externalUrl"`
	Link        string          `json:"link"`
}

func (n Normalizer) portfolioItem(raw json.RawMessage) (PortfolioItem, error) {
	var p portfolioProps
	if err := json.Unmarshal(raw, &p); err != nil {
		return PortfolioItem{}, err
	}
	title := strings.TrimSpace(p.Title)
	slug := firstNonEmpty(p.Slug, slugify(title))
	if slug == "" {
		return PortfolioItem{}, ErrEmptyDocument
	}
	body := renderBody(p.Content)
	if body == "" {
		body = renderBody(p.Description)
	}
	summary := firstNonEmpty(text(p.Summary), text(p.Excerpt))
	if summary == "" {
		summary = Excerpt(PlainText(body), excerptLength)
	}
	date := parseDate(firstNonEmpty(p.Date.String(), p.CompletedAt.String()))
	year := strings.TrimSpace(p.Year.String())
	if year == "" && !date.IsZero() {
		year = date.Format("2006")
	}
	cover := p.Cover
	if cover.IsZero() {
		cover = p.CoverImage
	}
	return PortfolioItem{
		Slug:        slug,
		Title:       title,
		Client:      strings.TrimSpace(p.Client),
		Category:    Category(p.Category),
		Summary:     summary,
		Body:        body,
		Date:        date,
		Year:        year,
		Cover:       n.Image(cover, VariantMedium, title),
		Gallery:     n.images(p.Gallery, VariantLarge, title),
		Tags:        p.Tags.strings(),
		Services:    p.Services.strings(),
		Featured:    p.Featured,
		ExternalURL: firstNonEmpty(p.ExternalURL, p.Link),
	}, nil
}

// NormalizePortfolioItem maps one portfolio entry.
func (n Normalizer) NormalizePortfolioItem(env cms.Envelope) (PortfolioItem, error) {
	if env.IsEmpty() {
		return PortfolioItem{}, ErrEmptyDocument
	}
	item, err := n.portfolioItem(env.Data)
	if err != nil {
		return PortfolioItem{}, errorsJoinEmpty(err)
	}
	return item, nil
}

// NormalizePortfolioItems maps a portfolio collection, skipping entries that
// cannot be decoded.
func (n Normalizer) NormalizePortfolioItems(env cms.Envelope) ([]PortfolioItem, Pagination, error) {
	items, err := env.Items()
	if err != nil {
		return nil, Pagination{}, errorsJoinEmpty(err)
	}
	out := make([]PortfolioItem, 0, len(items))
	for _, raw := range items {
		if item, err := n.portfolioItem(raw); err == nil {
			out = append(out, item)
		}
	}
	return out, pagination(env.Meta.Pagination, len(out)), nil
}

type authorProps struct {
	Name     string     `json:"name"`
	Role     string     `json:"role"`
	Position string     `json:"position"`
	Avatar   *cms.Media `json:"avatar"`
}

type articleProps struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Excerpt     cms.RichText    `json:"excerpt"`
	Description cms.RichText    `json:"description"`
	Content     json.RawMessage `json:"content"`
	Body        json.RawMessage `json:"body"`
	Category    rawCategory     `json:"category"`
	Tags        textList        `json:"tags"`
	Author      *authorProps    `json:"author"`
	Cover       *cms.Media      `json:"cover"`
	CoverImage  *cms.Media      `json:"coverImage"`
	PublishedAt cms.FlexString  `json:"publishedAt"`
	PublishDate cms.FlexString  `json:"publishDate"`
	UpdatedAt   cms.FlexString  `json:"updatedAt"`
	Featured    bool            `json:"featured"`
	ReadingTime cms.FlexString  `json:"readingTime"`
}

func (n Normalizer) article(raw json.RawMessage) (Article, error) {
	var p articleProps
	if err := json.Unmarshal(raw, &p); err != nil {
		return Article{}, err
	}
	title := strings.TrimSpace(p.Title)
	slug := firstNonEmpty(p.Slug, slugify(title))
	if slug == "" {
		return Article{}, ErrEmptyDocument
	}
	body := renderBody(p.Content)
	if body == "" {
		body = renderBody(p.Body)
	}
	plain := PlainText(body)
	excerpt := firstNonEmpty(text(p.Excerpt), text(p.Description))
	if excerpt == "" {
		excerpt = Excerpt(plain, excerptLength)
	}
	minutes := p.ReadingTime.Int()
	if minutes <= 0 {
		minutes = ReadingMinutes(plain)
	}
	cover := p.Cover
	if cover.IsZero() {
		cover = p.CoverImage
	}
	var author Author
	if p.Author != nil {
		name := strings.TrimSpace(p.Author.Name)
		author = Author{
			Name:   name,
			Role:   firstNonEmpty(p.Author.Role, p.Author.Position),
			Avatar: n.Image(p.Author.Avatar, VariantThumbnail, name),
		}
	}
	return Article{
		Slug:           slug,
		Title:          title,
		Excerpt:        excerpt,
		Category:       Category(p.Category),
		Tags:           p.Tags.strings(),
		Author:         author,
		Cover:          n.Image(cover, VariantMedium, title),
		PublishedAt:    parseDate(firstNonEmpty(p.PublishDate.String(), p.PublishedAt.String())),
		UpdatedAt:      parseDate(p.UpdatedAt.String()),
		ReadingMinutes: minutes,
		Body:           body,
		Featured:       p.Featured,
	}, nil
}

// NormalizeArticle maps one blog article.
func (n Normalizer) NormalizeArticle(env cms.Envelope) (Article, error) {
	if env.IsEmpty() {
		return Article{}, ErrEmptyDocument
	}
	a, err := n.article(env.Data)
	if err != nil {
		return Article{}, errorsJoinEmpty(err)
	}
	return a, nil
}

// NormalizeArticles maps an article collection, skipping undecodable entries.
func (n Normalizer) NormalizeArticles(env cms.Envelope) ([]Article, Pagination, error) {
	items, err := env.Items()
	if err != nil {
		return nil, Pagination{}, errorsJoinEmpty(err)
	}
	out := make([]Article, 0, len(items))
	for _, raw := range items {
		if a, err := n.article(raw); err == nil {
			out = append(out, a)
		}
	}
	return out, pagination(env.Meta.Pagination, len(out)), nil
}

type statListProps struct {
	Stats []statProps `json:"stats"`
}

type companyProps struct {
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Tagline     string         `json:"tagline"`
	Description cms.RichText   `json:"description"`
	Logo        *cms.Media     `json:"logo"`
	Cover       *cms.Media     `json:"cover"`
	Website     string         `json:"website"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	Founded     cms.FlexString `json:"founded"`
	FoundedYear cms.FlexString `json:"foundedYear"`
	Services    textList       `json:"services"`
	Gallery     []cms.Media    `json:"gallery"`
	Parent      *struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"parent"`
	Address   cms.RichText   `json:"address"`
	Latitude  cms.FlexString `json:"latitude"`
	Longitude cms.FlexString `json:"longitude"`
	Stats     []statProps    `json:"stats"`
	Blocks    []cms.Block    `json:"blocks"`
}

func (n Normalizer) company(raw json.RawMessage, kind string) (Company, error) {
	var p companyProps
	if err := json.Unmarshal(raw, &p); err != nil {
		return Company{}, err
	}
	name := firstNonEmpty(p.Name, p.Title)
	slug := firstNonEmpty(p.Slug, slugify(name))
	if slug == "" {
		return Company{}, ErrEmptyDocument
	}
	c := Company{
		Kind:        kind,
		Slug:        slug,
		Name:        name,
		Tagline:     strings.TrimSpace(p.Tagline),
		Description: text(p.Description),
		Logo:        n.Image(p.Logo, VariantSmall, name),
		Cover:       n.Image(p.Cover, VariantLarge, name),
		Website:     strings.TrimSpace(p.Website),
		Email:       strings.TrimSpace(p.Email),
		Phone:       strings.TrimSpace(p.Phone),
		Founded:     firstNonEmpty(p.Founded.String(), p.FoundedYear.String()),
		Services:    p.Services.strings(),
		Gallery:     n.images(p.Gallery, VariantMedium, name),
		Location: Location{
			Title:     name,
			Address:   text(p.Address),
			Phone:     strings.TrimSpace(p.Phone),
			Email:     strings.TrimSpace(p.Email),
			Hours:     []string{},
			Latitude:  parseFloat(p.Latitude),
			Longitude: parseFloat(p.Longitude),
		},
	}
	if p.Parent != nil {
		parentSlug := firstNonEmpty(p.Parent.Slug, slugify(p.Parent.Name))
		c.Parent = Link{Label: strings.TrimSpace(p.Parent.Name)}
		if parentSlug != "" {
			c.Parent.URL = "/companies/" + parentSlug
		}
	}
	stats := inlineStats(p.Stats)
	if b, ok := cms.FindBlock(p.Blocks, BlockStats); ok && len(stats) == 0 {
		stats = normalizeStats(b)
	}
	c.Stats = stats
	if b, ok := cms.FindBlock(p.Blocks, BlockGallery); ok && len(c.Gallery) == 0 {
		_, c.Gallery = n.normalizeGallery(b)
	}
	if b, ok := cms.FindBlock(p.Blocks, BlockLocation); ok && c.Location.Address == "" {
		c.Location = normalizeLocation(b)
	}
	return c, nil
}

// inlineStats maps stat entries stored on the document itself with the same
// rules as a stats block.
func inlineStats(items []statProps) []Stat {
	b := cms.NewBlock(BlockStats, statListProps{Stats: items})
	return normalizeStats(b)
}

// NormalizeCompany maps one company or subsidiary document.
func (n Normalizer) NormalizeCompany(env cms.Envelope, kind string) (Company, error) {
	if env.IsEmpty() {
		return Company{}, ErrEmptyDocument
	}
	c, err := n.company(env.Data, kind)
	if err != nil {
		return Company{}, errorsJoinEmpty(err)
	}
	return c, nil
}

// NormalizeCompanies maps a company or subsidiary collection. An empty
// collection is an empty document.
func (n Normalizer) NormalizeCompanies(env cms.Envelope, kind string) ([]Company, error) {
	items, err := env.Items()
	if err != nil {
		return nil, errorsJoinEmpty(err)
	}
	out := make([]Company, 0, len(items))
	for _, raw := range items {
		if c, err := n.company(raw, kind); err == nil {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyDocument
	}
	return out, nil
}

func pagination(meta cms.Pagination, count int) Pagination {
	p := Pagination{Page: meta.Page, PageSize: meta.PageSize, PageCount: meta.PageCount, Total: meta.Total}
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = count
	}
	if p.Total <= 0 {
		p.Total = count
	}
	if p.PageCount <= 0 {
		p.PageCount = 1
		if p.PageSize > 0 {
			p.PageCount = (p.Total + p.PageSize - 1) / p.PageSize
		}
		if p.PageCount == 0 {
			p.PageCount = 1
		}
	}
	return p
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02", "2006/01/02", "2006-1-2"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func errorsJoinEmpty(err error) error {
	if err == nil || errors.Is(err, ErrEmptyDocument) {
		return err
	}
	return errors.Join(ErrEmptyDocument, err)
}
