package content

import "github.com/Project-Narvex/narvex-web/internal/widgets"

// Static pages rendered when the CMS cannot be reached or returns an
// unusable document. Each call returns a fresh value.

func fallbackClients() []ClientLogo {
	return []ClientLogo{
		{Name: "Bank Sentosa", Logo: widgets.StaticImage("/assets/img/clients/bank-sentosa.svg", "Bank Sentosa", 160, 64)},
		{Name: "Kopi Rimba", Logo: widgets.StaticImage("/assets/img/clients/kopi-rimba.svg", "Kopi Rimba", 160, 64)},
		{Name: "Nusantara Air", Logo: widgets.StaticImage("/assets/img/clients/nusantara-air.svg", "Nusantara Air", 160, 64)},
		{Name: "Lumen Telco", Logo: widgets.StaticImage("/assets/img/clients/lumen-telco.svg", "Lumen Telco", 160, 64)},
		{Name: "Sagara Resorts", Logo: widgets.StaticImage("/assets/img/clients/sagara-resorts.svg", "Sagara Resorts", 160, 64)},
		{Name: "Pijar Energi", Logo: widgets.StaticImage("/assets/img/clients/pijar-energi.svg", "Pijar Energi", 160, 64)},
	}
}

func fallbackServices() []Service {
	return []Service{
		{
			Title:       "Brand Strategy & Identity",
			Slug:        "brand-strategy",
			Description: "Positioning, naming and visual identity systems built to scale across every touchpoint.",
			Icon:        "compass",
			Features:    []string{"Brand audits", "Naming & verbal identity", "Logo and identity systems", "Brand guidelines"},
			Image:       widgets.StaticImage("/assets/img/services/brand.svg", "Brand strategy workshop", 640, 480),
		},
		{
			Title:       "Digital Products",
			Slug:        "digital-products",
			Description: "Websites, apps and campaign platforms designed and engineered in-house.",
			Icon:        "monitor",
			Features:    []string{"UX research", "Web and mobile design", "Front-end engineering", "CMS integration"},
			Image:       widgets.StaticImage("/assets/img/services/digital.svg", "Digital product design", 640, 480),
		},
		{
			Title:       "Events & Activations",
			Slug:        "events",
			Description: "Launches, conferences and brand activations produced end to end.",
			Icon:        "calendar",
			Features:    []string{"Concept and scenography", "Production management", "Stage and AV", "On-site operations"},
			Image:       widgets.StaticImage("/assets/img/services/events.svg", "Event stage production", 640, 480),
		},
		{
			Title:       "Content & Media",
			Slug:        "content-media",
			Description: "Photography, film and social content produced by our studio teams.",
			Icon:        "camera",
			Features:    []string{"Campaign photography", "Video production", "Social media management", "Media buying"},
			Image:       widgets.StaticImage("/assets/img/services/media.svg", "Video production set", 640, 480),
		},
	}
}

func fallbackCTA() CTA {
	return CTA{
		Title:       "Have a project in mind?",
		Description: "Tell us about your goals and we will put the right team together.",
		Button:      Link{Label: "Start a project", URL: "/contact"},
	}
}

// FallbackHome is the static home page.
func FallbackHome() HomePage {
	return HomePage{
		SEO: SEO{
			Title:       "Narvex | Creative services group",
			Description: "Branding, digital products, events and media delivered by one creative group.",
		},
		Hero: Hero{
			Eyebrow:      "Creative services group",
			Title:        "Ideas built into brands, products and experiences",
			Subtitle:     "Narvex brings strategy, design, technology and production under one roof.",
			Background:   widgets.StaticImage("/assets/img/hero.svg", "Narvex studio", 1600, 900),
			PrimaryCTA:   Link{Label: "See our work", URL: "/portfolio"},
			SecondaryCTA: Link{Label: "Talk to us", URL: "/contact"},
		},
		ServicesSection: Section{
			Title:    "What we do",
			Subtitle: "Four disciplines, one team.",
		},
		Services:         fallbackServices(),
		FeaturedSection:  Section{Title: "Selected work", Subtitle: "Recent projects from across the group."},
		FeaturedProjects: featuredFallback(3),
		Stats: []Stat{
			{Label: "Projects delivered", Value: 450, Suffix: "+"},
			{Label: "Clients served", Value: 120, Suffix: "+"},
			{Label: "Years of practice", Value: 12},
			{Label: "Group companies", Value: 6},
		},
		TestimonialsTitle: "What clients say",
		Testimonials: []Testimonial{
			{
				Quote:   "Narvex took our brand from a local roaster to a national name without losing what made us special.",
				Author:  "Rina Wibowo",
				Role:    "Founder",
				Company: "Kopi Rimba",
				Rating:  5,
			},
			{
				Quote:   "One partner for the launch event, the campaign film and the website. Everything shipped on time.",
				Author:  "Andre Santoso",
				Role:    "Head of Marketing",
				Company: "Lumen Telco",
				Rating:  5,
			},
		},
		ClientsTitle: "Trusted by",
		Clients:      fallbackClients(),
		CTA:          fallbackCTA(),
	}
}

func featuredFallback(limit int) []PortfolioItem {
	out := []PortfolioItem{}
	for _, item := range Fallback().Portfolio {
		if item.Featured && len(out) < limit {
			out = append(out, item)
		}
	}
	return out
}

// FallbackHomeClients are the client logos shared by the about and services pages.
func FallbackHomeClients() []ClientLogo { return fallbackClients() }

// FallbackAbout is the static about page.
func FallbackAbout() AboutPage {
	return AboutPage{
		SEO: SEO{
			Title:       "About | Narvex",
			Description: "The people and principles behind the Narvex creative group.",
		},
		Hero: Hero{
			Eyebrow:  "About us",
			Title:    "A group of specialists who like working together",
			Subtitle: "Founded in Jakarta in 2013, Narvex has grown into a family of creative companies.",
		},
		Story: Story{
			Title: "Our story",
			Paragraphs: []string{
				"Narvex started as a two-person design studio working out of a shophouse in South Jakarta.",
				"Today the group spans brand strategy, digital products, live events and media production, with each discipline run by its own specialist company.",
			},
			Image: widgets.StaticImage("/assets/img/about/studio.svg", "The Narvex studio", 1200, 800),
		},
		ValuesTitle: "What we value",
		Values: []Value{
			{Title: "Craft", Description: "We sweat the details clients never see.", Icon: "pen"},
			{Title: "Candour", Description: "We say what we think, early and kindly.", Icon: "chat"},
			{Title: "Curiosity", Description: "Every brief is a chance to learn something new.", Icon: "spark"},
		},
		TeamTitle: "Leadership",
		Team: []TeamMember{
			{Name: "Dimas Pratama", Role: "Founder & CEO", Bio: "Leads group strategy and the brand practice.", Photo: widgets.StaticImage("/assets/img/team/dimas.svg", "Dimas Pratama", 400, 400), Socials: []Link{}},
			{Name: "Sari Kusuma", Role: "Chief Creative Officer", Bio: "Oversees creative quality across every company in the group.", Photo: widgets.StaticImage("/assets/img/team/sari.svg", "Sari Kusuma", 400, 400), Socials: []Link{}},
			{Name: "Budi Hartono", Role: "Head of Production", Bio: "Runs events and media production.", Photo: widgets.StaticImage("/assets/img/team/budi.svg", "Budi Hartono", 400, 400), Socials: []Link{}},
		},
		AwardsTitle: "Recognition",
		Awards: []Award{
			{Title: "Best Brand Identity", Issuer: "Citra Pariwara", Year: "2023"},
			{Title: "Event of the Year", Issuer: "Indonesia Event Awards", Year: "2022"},
		},
		Stats: []Stat{
			{Label: "People", Value: 85},
			{Label: "Cities", Value: 3},
			{Label: "Awards", Value: 24},
		},
		Clients: fallbackClients(),
		CTA:     fallbackCTA(),
	}
}

// FallbackServices is the static services page.
func FallbackServices() ServicesPage {
	return ServicesPage{
		SEO: SEO{
			Title:       "Services | Narvex",
			Description: "Brand strategy, digital products, events and media production.",
		},
		Hero: Hero{
			Eyebrow:  "Services",
			Title:    "Everything a brand needs, from first idea to opening night",
			Subtitle: "Pick one discipline or bring us the whole brief.",
		},
		Services:     fallbackServices(),
		ProcessTitle: "How we work",
		Process: []ProcessStep{
			{Number: 1, Title: "Discover", Description: "Workshops and research to understand the problem."},
			{Number: 2, Title: "Define", Description: "A clear brief, scope and plan everyone signs off on."},
			{Number: 3, Title: "Create", Description: "Design, build and produce in short reviewed cycles."},
			{Number: 4, Title: "Deliver", Description: "Launch, measure and hand over with full documentation."},
		},
		FAQTitle: "Questions",
		FAQ: []FAQ{
			{Question: "Do you work with startups?", Answer: "Yes. We scale the team to the size of the brief."},
			{Question: "How long does a brand identity take?", Answer: "Typically eight to twelve weeks from kickoff to guidelines."},
		},
		Clients: fallbackClients(),
		CTA:     fallbackCTA(),
	}
}

// FallbackPortfolioPage is the static portfolio page shell.
func FallbackPortfolioPage() ListingPage {
	return ListingPage{
		SEO: SEO{Title: "Portfolio | Narvex", Description: "Selected brand, digital and event work."},
		Hero: Hero{
			Eyebrow:  "Portfolio",
			Title:    "Work we are proud of",
			Subtitle: "A selection of projects from across the group.",
		},
		CTA: fallbackCTA(),
	}
}

// FallbackBlogPage is the static blog page shell.
func FallbackBlogPage() ListingPage {
	return ListingPage{
		SEO: SEO{Title: "Journal | Narvex", Description: "Notes on brand, design and production from the Narvex team."},
		Hero: Hero{
			Eyebrow:  "Journal",
			Title:    "Notes from the studio",
			Subtitle: "Ideas, process and lessons from our projects.",
		},
		CTA: fallbackCTA(),
	}
}

// FallbackContact is the static contact page.
func FallbackContact() ContactPage {
	return ContactPage{
		SEO: SEO{Title: "Contact | Narvex", Description: "Start a project with Narvex."},
		Hero: Hero{
			Eyebrow:  "Contact",
			Title:    "Let's talk about your project",
			Subtitle: "Fill in the form and we will get back to you within two working days.",
		},
		Location: Location{
			Title:     "Jakarta office",
			Address:   "Jl. Jend. Sudirman Kav. 52-53, Jakarta 12190, Indonesia",
			Phone:     "+62 21 5000 1234",
			Email:     "hello@narvex.id",
			Hours:     []string{"Monday to Friday, 09:00 to 18:00"},
			Latitude:  -6.2241,
			Longitude: 106.8096,
		},
		Services:  []string{"Brand Strategy & Identity", "Digital Products", "Events & Activations", "Content & Media", "Other"},
		Budgets:   []string{"Under IDR 100M", "IDR 100M to 500M", "IDR 500M to 1B", "Above IDR 1B"},
		Timelines: []string{"Less than 1 month", "1 to 3 months", "3 to 6 months", "More than 6 months"},
		FAQ: []FAQ{
			{Question: "How soon can you start?", Answer: "Most projects kick off within two to three weeks of sign-off."},
		},
	}
}
