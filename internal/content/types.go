// Package content maps raw CMS documents into the flat view models the
// templates render, and holds the static fallbacks used when the CMS fails.
package content

import (
	"html/template"
	"time"

	"github.com/Project-Narvex/narvex-web/internal/widgets"
)

// SEO is page-level metadata. Empty fields are filled from site defaults at render time.
type SEO struct {
	Title       string
	Description string
	Image       string
	Canonical   string
	Keywords    string
}

// Link is a labelled URL.
type Link struct {
	Label string
	URL   string
}

// Hero is the lead section of a page.
type Hero struct {
	Eyebrow      string
	Title        string
	Subtitle     string
	Background   widgets.Image
	PrimaryCTA   Link
	SecondaryCTA Link
}

// Section is a titled list section header.
type Section struct {
	Title    string
	Subtitle string
}

// Service is one service offering.
type Service struct {
	Title       string
	Slug        string
	Description string
	Icon        string
	Features    []string
	Image       widgets.Image
}

type Testimonial struct {
	Quote   string
	Author  string
	Role    string
	Company string
	Avatar  widgets.Image
	Rating  int
}

// ClientLogo is one client shown in a logo carousel.
type ClientLogo struct {
	Name string
	URL  string
	Logo widgets.Image
}

// Stat is a headline number. Value is formatted with the request locale.
type Stat struct {
	Label  string
	Value  float64
	Prefix string
	Suffix string
}

type TeamMember struct {
	Name    string
	Role    string
	Bio     string
	Photo   widgets.Image
	Socials []Link
}

type Award struct {
	Title       string
	Issuer      string
	Year        string
	Description string
	Image       widgets.Image
}

type Value struct {
	Title       string
	Description string
	Icon        string
}

type ProcessStep struct {
	Number      int
	Title       string
	Description string
}

type FAQ struct {
	Question string
	Answer   string
}

type CTA struct {
	Title       string
	Description string
	Button      Link
}

// Location is an office address with map coordinates.
type Location struct {
	Title     string
	Address   string
	Phone     string
	Email     string
	Hours     []string
	Latitude  float64
	Longitude float64
}

// Story is a block of long-form copy with an optional illustration.
type Story struct {
	Title      string
	Paragraphs []string
	Image      widgets.Image
}

type HomePage struct {
	SEO               SEO
	Hero              Hero
	ServicesSection   Section
	Services          []Service
	FeaturedSection   Section
	FeaturedProjects  []PortfolioItem
	Stats             []Stat
	TestimonialsTitle string
	Testimonials      []Testimonial
	ClientsTitle      string
	Clients           []ClientLogo
	CTA               CTA
}

type AboutPage struct {
	SEO         SEO
	Hero        Hero
	Story       Story
	ValuesTitle string
	Values      []Value
	TeamTitle   string
	Team        []TeamMember
	AwardsTitle string
	Awards      []Award
	Stats       []Stat
	Clients     []ClientLogo
	CTA         CTA
}

type ServicesPage struct {
	SEO          SEO
	Hero         Hero
	Services     []Service
	ProcessTitle string
	Process      []ProcessStep
	FAQTitle     string
	FAQ          []FAQ
	Clients      []ClientLogo
	CTA          CTA
}

// ListingPage is the shell of a collection page (portfolio, blog): hero and metadata.
type ListingPage struct {
	SEO  SEO
	Hero Hero
	CTA  CTA
}

type ContactPage struct {
	SEO       SEO
	Hero      Hero
	Location  Location
	Services  []string
	Budgets   []string
	Timelines []string
	FAQ       []FAQ
}

// Category is a taxonomy term used for filtering.
type Category struct {
	Name string
	Slug string
}

type PortfolioItem struct {
	Slug        string
	Title       string
	Client      string
	Category    Category
	Summary     string
	Body        template.HTML
	Date        time.Time
	Year        string
	Cover       widgets.Image
	Gallery     []widgets.Image
	Tags        []string
	Services    []string
	Featured    bool
	ExternalURL string
}

type Author struct {
	Name   string
	Role   string
	Avatar widgets.Image
}

type Article struct {
	Slug           string
	Title          string
	Excerpt        string
	Category       Category
	Tags           []string
	Author         Author
	Cover          widgets.Image
	PublishedAt    time.Time
	UpdatedAt      time.Time
	ReadingMinutes int
	Body           template.HTML
	Featured       bool
}

// Company kinds.
const (
	KindCompany    = "company"
	KindSubsidiary = "subsidiary"
)

type Company struct {
	Kind        string
	Slug        string
	Name        string
	Tagline     string
	Description string
	Logo        widgets.Image
	Cover       widgets.Image
	Website     string
	Email       string
	Phone       string
	Founded     string
	Services    []string
	Gallery     []widgets.Image
	Parent      Link
	Location    Location
	Stats       []Stat
}

// Pagination describes one page of a collection.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Pagination) HasNext() bool { return p.Page < p.PageCount }
