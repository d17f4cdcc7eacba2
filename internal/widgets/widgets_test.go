package widgets

import (
	"math"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageBuildsSrcset(t *testing.T) {
	img := NewImage("", "Team at work", 1600, 900, []Source{
		{URL: "/u/large.jpg", Width: 1000},
		{URL: "/u/small.jpg", Width: 500},
		{URL: "", Width: 750},
		{URL: "/u/dup.jpg", Width: 500},
		{URL: "/u/orig.jpg", Width: 1600},
	})
	assert.Equal(t, "/u/orig.jpg", img.Src)
	assert.Equal(t, "/u/small.jpg 500w, /u/large.jpg 1000w, /u/orig.jpg 1600w", img.Srcset)
	assert.Equal(t, DefaultSizes, img.Sizes)
	assert.Equal(t, PlaceholderImage, img.Fallback)
	assert.Equal(t, "Team at work", img.Alt)
}

func TestNewImageSingleSourceHasNoSrcset(t *testing.T) {
	img := StaticImage("/assets/img/hero.jpg", "Hero", 0, 0)
	assert.Empty(t, img.Srcset)
	assert.Empty(t, img.Sizes)
	assert.False(t, img.IsZero())

	var zero Image
	assert.True(t, zero.IsZero())
	assert.Equal(t, PlaceholderImage, zero.OrPlaceholder("x").Src)
}

func TestNewCarouselDuplicatesItems(t *testing.T) {
	items := []CarouselItem{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	c := NewCarousel("clients", "Clients", items)
	require.Len(t, c.Items, 6)
	assert.Equal(t, "A", c.Items[3].Name)
	assert.Equal(t, minCarouselSeconds, c.SpeedSeconds)
	assert.False(t, c.IsClone(2))
	assert.True(t, c.IsClone(3))

	many := make([]CarouselItem, 10)
	assert.Equal(t, 40, NewCarousel("x", "", many).SpeedSeconds)

	empty := NewCarousel("x", "", nil)
	assert.True(t, empty.Empty())
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.SpeedSeconds)
}

func TestNewMap(t *testing.T) {
	m := NewMap("Office", -6.2241, 106.8096, 0)
	require.True(t, m.Valid)
	assert.Equal(t, defaultMapZoom, m.Zoom)

	u, err := url.Parse(m.EmbedURL)
	require.NoError(t, err)
	assert.Equal(t, "www.openstreetmap.org", u.Host)
	assert.Equal(t, "-6.22410,106.80960", u.Query().Get("marker"))
	bbox := strings.Split(u.Query().Get("bbox"), ",")
	require.Len(t, bbox, 4)
	assert.Contains(t, m.LinkURL, "#map=15/-6.22410/106.80960")

	for _, tc := range []struct{ lat, lng float64 }{
		{0, 0}, {91, 10}, {10, 181}, {math.NaN(), 1},
	} {
		bad := NewMap("", tc.lat, tc.lng, 12)
		assert.False(t, bad.Valid, "%v,%v", tc.lat, tc.lng)
		assert.Empty(t, bad.EmbedURL)
	}
}

func TestSocialFeed(t *testing.T) {
	f := NewSocialFeed("Follow us", "@narvex.id", 0)
	assert.Equal(t, DefaultFeedLimit, f.Limit)
	assert.Equal(t, "narvex.id", f.Username)
	assert.Equal(t, "https://www.instagram.com/narvex.id", f.ProfileURL)
	assert.Equal(t, "/api/instagram?limit=6&username=narvex.id", f.Endpoint)

	small := NewSocialFeed("", "", 2)
	assert.Equal(t, 2, small.Columns)
	assert.Equal(t, "/api/instagram?limit=2", small.Endpoint)

	assert.Equal(t, MaxFeedLimit, ClampFeedLimit(100))
	assert.Equal(t, 1, ClampFeedLimit(1))
	assert.Equal(t, DefaultFeedLimit, ClampFeedLimit(-3))
}

func TestLoadStateTransitionsOnce(t *testing.T) {
	assert.Equal(t, StateSuccess, StateLoading.Next(true))
	assert.Equal(t, StateError, StateLoading.Next(false))
	assert.Equal(t, StateSuccess, StateSuccess.Next(false))
	assert.Equal(t, StateError, StateError.Next(true))
}
