// Package widgets builds the view models for self-contained presentational
// components: images with fallback, logo carousels, maps and the social feed.
package widgets

import (
	"sort"
	"strconv"
	"strings"
)

// PlaceholderImage is swapped in client side when an image fails to load.
const PlaceholderImage = "/assets/img/placeholder.svg"

// DefaultSizes is the sizes attribute used when a caller does not supply one.
const DefaultSizes = "(min-width: 1024px) 50vw, 100vw"

// Image is an <img> with a srcset and a fallback source.
type Image struct {
	Src      string
	Srcset   string
	Sizes    string
	Alt      string
	Width    int
	Height   int
	Fallback string
}

// Source is one candidate in a srcset.
type Source struct {
	URL   string
	Width int
}

// NewImage builds an image from its preferred src and width candidates.
// Candidates without a width or URL are skipped; duplicates by width keep the
// first. An empty src falls back to the widest candidate.
func NewImage(src, alt string, width, height int, sources []Source) Image {
	img := Image{
		Src:      strings.TrimSpace(src),
		Alt:      strings.TrimSpace(alt),
		Width:    width,
		Height:   height,
		Fallback: PlaceholderImage,
	}
	cands := make([]Source, 0, len(sources))
	seen := map[int]bool{}
	for _, s := range sources {
		s.URL = strings.TrimSpace(s.URL)
		if s.URL == "" || s.Width <= 0 || seen[s.Width] {
			continue
		}
		seen[s.Width] = true
		cands = append(cands, s)
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Width < cands[j].Width })
	if img.Src == "" && len(cands) > 0 {
		img.Src = cands[len(cands)-1].URL
	}
	if len(cands) > 1 {
		parts := make([]string, len(cands))
		for i, c := range cands {
			parts[i] = c.URL + " " + strconv.Itoa(c.Width) + "w"
		}
		img.Srcset = strings.Join(parts, ", ")
		img.Sizes = DefaultSizes
	}
	return img
}

// StaticImage is an image served from the embedded asset bundle.
func StaticImage(src, alt string, width, height int) Image {
	return NewImage(src, alt, width, height, nil)
}

// IsZero reports whether the image has nothing to render.
func (i Image) IsZero() bool { return strings.TrimSpace(i.Src) == "" }

// WithSizes overrides the sizes attribute when a srcset is present.
func (i Image) WithSizes(sizes string) Image {
	if i.Srcset != "" && strings.TrimSpace(sizes) != "" {
		i.Sizes = sizes
	}
	return i
}

// OrPlaceholder returns i, or the placeholder image when i is empty.
func (i Image) OrPlaceholder(alt string) Image {
	if !i.IsZero() {
		return i
	}
	return Image{Src: PlaceholderImage, Alt: alt, Fallback: PlaceholderImage}
}
