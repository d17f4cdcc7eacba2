package widgets

const (
	minCarouselSeconds     = 20
	carouselSecondsPerItem = 4
)

// CarouselItem is one logo in a carousel.
type CarouselItem struct {
	Name string
	URL  string
	Logo Image
}

// Carousel is a continuously scrolling logo strip. Items holds the source
// list twice so the track can loop without a visible seam.
type Carousel struct {
	ID           string
	Title        string
	Items        []CarouselItem
	Count        int
	SpeedSeconds int
}

// NewCarousel duplicates items once and derives the scroll duration from the
// item count.
func NewCarousel(id, title string, items []CarouselItem) Carousel {
	c := Carousel{ID: id, Title: title, Items: []CarouselItem{}, Count: len(items)}
	if len(items) == 0 {
		return c
	}
	c.Items = make([]CarouselItem, 0, len(items)*2)
	c.Items = append(c.Items, items...)
	c.Items = append(c.Items, items...)
	c.SpeedSeconds = len(items) * carouselSecondsPerItem
	if c.SpeedSeconds < minCarouselSeconds {
		c.SpeedSeconds = minCarouselSeconds
	}
	return c
}

// Empty reports whether there is nothing to scroll.
func (c Carousel) Empty() bool { return c.Count == 0 }

// IsClone reports whether the item at index i is the duplicated half; clones
// are hidden from assistive technology.
func (c Carousel) IsClone(i int) bool { return c.Count > 0 && i >= c.Count }
