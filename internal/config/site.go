package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Site describes the company identity rendered in the layout, footer, and structured data.
type Site struct {
	Name        string       `yaml:"name"`
	LegalName   string       `yaml:"legal_name"`
	Tagline     string       `yaml:"tagline"`
	Description string       `yaml:"description"`
	Email       string       `yaml:"email"`
	Phone       string       `yaml:"phone"`
	Address     string       `yaml:"address"`
	Latitude    float64      `yaml:"latitude"`
	Longitude   float64      `yaml:"longitude"`
	LogoPath    string       `yaml:"logo"`
	OGImage     string       `yaml:"og_image"`
	Social      []SocialLink `yaml:"social"`
	Locales     []string     `yaml:"locales"`
}

// SocialLink is a footer/social profile link.
type SocialLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// DefaultSite is used when no site file is present.
func DefaultSite() Site {
	return Site{
		Name:        "Narvex",
		LegalName:   "Narvex Creative Group",
		Tagline:     "Brand, digital and event experiences under one roof",
		Description: "Narvex is a creative-services group delivering branding, digital production, events and media through a family of specialised companies.",
		Email:       "hello@narvex.id",
		Phone:       "+62 21 5000 1234",
		Address:     "Jl. Jend. Sudirman Kav. 52-53, Jakarta 12190, Indonesia",
		Latitude:    -6.2241,
		Longitude:   106.8096,
		LogoPath:    "/assets/img/logo.svg",
		OGImage:     "/assets/img/og-default.png",
		Social: []SocialLink{
			{Name: "Instagram", URL: "https://www.instagram.com/narvex.id"},
			{Name: "LinkedIn", URL: "https://www.linkedin.com/company/narvex"},
			{Name: "YouTube", URL: "https://www.youtube.com/@narvex"},
		},
		Locales: []string{"en", "id"},
	}
}

// LoadSite reads the YAML site file at path and overlays it on DefaultSite.
// A missing file is not an error.
func LoadSite(path string) (Site, error) {
	site := DefaultSite()
	path = strings.TrimSpace(path)
	if path == "" {
		return site, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return site, nil
	}
	if err != nil {
		return Site{}, fmt.Errorf("config: read site file %s: %w", path, err)
	}
	var overlay Site
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return Site{}, fmt.Errorf("config: parse site file %s: %w", path, err)
	}
	return mergeSite(site, overlay), nil
}

func mergeSite(base, overlay Site) Site {
	pick := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	pick(&base.Name, overlay.Name)
	pick(&base.LegalName, overlay.LegalName)
	pick(&base.Tagline, overlay.Tagline)
	pick(&base.Description, overlay.Description)
	pick(&base.Email, overlay.Email)
	pick(&base.Phone, overlay.Phone)
	pick(&base.Address, overlay.Address)
	pick(&base.LogoPath, overlay.LogoPath)
	pick(&base.OGImage, overlay.OGImage)
	if overlay.Latitude != 0 || overlay.Longitude != 0 {
		base.Latitude = overlay.Latitude
		base.Longitude = overlay.Longitude
	}
	if len(overlay.Social) > 0 {
		base.Social = append([]SocialLink(nil), overlay.Social...)
	}
	if len(overlay.Locales) > 0 {
		base.Locales = make([]string, 0, len(overlay.Locales))
		for _, l := range overlay.Locales {
			if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
				base.Locales = append(base.Locales, l)
			}
		}
	}
	return base
}

// InstagramHandle extracts the account name from the Instagram social link, if any.
func (s Site) InstagramHandle() string {
	for _, link := range s.Social {
		if !strings.EqualFold(link.Name, "instagram") {
			continue
		}
		u := strings.TrimRight(link.URL, "/")
		if i := strings.LastIndex(u, "/"); i >= 0 {
			return strings.TrimPrefix(u[i+1:], "@")
		}
	}
	return ""
}

func (s Site) validate() []string {
	var fields []string
	if strings.TrimSpace(s.Name) == "" {
		fields = append(fields, "site.name")
	}
	if s.Latitude < -90 || s.Latitude > 90 {
		fields = append(fields, "site.latitude")
	}
	if s.Longitude < -180 || s.Longitude > 180 {
		fields = append(fields, "site.longitude")
	}
	if len(s.Locales) == 0 {
		fields = append(fields, "site.locales")
	}
	return fields
}
