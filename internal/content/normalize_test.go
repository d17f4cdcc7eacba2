package content

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Project-Narvex/narvex-web/internal/cms"
	"github.com/Project-Narvex/narvex-web/internal/widgets"
)

func envelope(t *testing.T, raw string) cms.Envelope {
	t.Helper()
	var env cms.Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	return env
}

const homeDocument = `{"data":{"id":1,"title":"Home",
  "seo":{"metaTitle":"Narvex","metaDescription":"desc","shareImage":{"url":"/uploads/og.jpg"}},
  "blocks":[
    {"__component":"sections.hero","title":"Hello",
     "subtitle":[{"type":"paragraph","children":[{"type":"text","text":"Sub"}]}],
     "backgroundImage":{"url":"/uploads/hero.jpg","width":1600,"height":900,
       "formats":{"large":{"url":"/uploads/large_hero.jpg","width":1000,"height":563}}},
     "primaryButton":{"label":"Work","url":"/portfolio"}},
    {"__component":"sections.stats","stats":[{"label":"Projects","value":"450+"},{"label":"","value":"1"}]},
    {"__component":"sections.clients","title":"Clients","clients":[{"name":"Acme","logo":null},{"name":""}]}
  ]}}`

func TestNormalizeHomeMapsBlocks(t *testing.T) {
	n := NewNormalizer("https://cms.example/")
	page, err := n.NormalizeHome(envelope(t, homeDocument))
	require.NoError(t, err)

	assert.Equal(t, SEO{Title: "Narvex", Description: "desc", Image: "https://cms.example/uploads/og.jpg"}, page.SEO)
	assert.Equal(t, "Hello", page.Hero.Title)
	assert.Equal(t, "Sub", page.Hero.Subtitle)
	assert.Equal(t, Link{Label: "Work", URL: "/portfolio"}, page.Hero.PrimaryCTA)
	assert.Equal(t, "https://cms.example/uploads/large_hero.jpg", page.Hero.Background.Src)
	assert.Equal(t, "https://cms.example/uploads/large_hero.jpg 1000w, https://cms.example/uploads/hero.jpg 1600w", page.Hero.Background.Srcset)
	assert.Equal(t, "Hello", page.Hero.Background.Alt)

	if diff := cmp.Diff([]Stat{{Label: "Projects", Value: 450, Suffix: "+"}}, page.Stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ClientLogo{{Name: "Acme"}}, page.Clients); diff != "" {
		t.Errorf("clients mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Clients", page.ClientsTitle)
	assert.NotNil(t, page.Services)
	assert.NotNil(t, page.Testimonials)
	assert.Empty(t, page.Services)
}

func TestNormalizeMalformedBlocksDegradeToDefaults(t *testing.T) {
	raw := `{"data":{"title":"About","blocks":[
		{"__component":"sections.hero","title":5},
		{"__component":"sections.team","members":[{"name":"Ayu"},{"role":"No name"}]},
		{"__component":"sections.awards","awards":"oops"},
		{"__component":"sections.values"},
		{"__component":"sections.story","title":"Story","body":"One paragraph"},
		{"__component":"sections.stats","stats":[{"label":"Odd","value":{"nested":true}}]},
		{"__component":"sections.cta","button":{"text":"Go","href":"/contact"}},
		{"__component":"sections.unknown","anything":[1,2,3]}
	]}}`
	n := NewNormalizer("")
	page, err := n.NormalizeAbout(envelope(t, raw), nil)
	require.NoError(t, err)

	assert.Equal(t, Hero{}, page.Hero)
	require.Len(t, page.Team, 1)
	assert.Equal(t, "Ayu", page.Team[0].Name)
	assert.True(t, page.Team[0].Photo.IsZero())
	assert.NotNil(t, page.Team[0].Socials)
	assert.NotNil(t, page.Awards)
	assert.Empty(t, page.Awards)
	assert.NotNil(t, page.Values)
	assert.NotNil(t, page.Clients)
	assert.Equal(t, []string{"One paragraph"}, page.Story.Paragraphs)
	assert.Equal(t, []Stat{{Label: "Odd"}}, page.Stats)
	assert.Equal(t, CTA{Button: Link{Label: "Go", URL: "/contact"}}, page.CTA)
}

func TestNormalizeEmptyDocument(t *testing.T) {
	n := NewNormalizer("")
	cases := map[string]string{
		"null data":    `{"data":null}`,
		"no data":      `{}`,
		"no blocks":    `{"data":{"title":"Home","blocks":[]}}`,
		"wrong shape":  `{"data":"a string"}`,
		"bad document": `{"data":{"blocks":"nope"}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := n.NormalizeHome(envelope(t, raw))
			assert.True(t, errors.Is(err, ErrEmptyDocument), "got %v", err)
			_, err = n.NormalizeServices(envelope(t, raw), nil)
			assert.True(t, errors.Is(err, ErrEmptyDocument), "got %v", err)
		})
	}
	_, err := n.NormalizeArticle(cms.Envelope{})
	assert.ErrorIs(t, err, ErrEmptyDocument)
	_, err = n.NormalizeCompanies(envelope(t, `{"data":[]}`), KindCompany)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestNormalizeArticleMarkdown(t *testing.T) {
	raw := `{"data":{"slug":"hello","title":"Hello",
		"content":"Hello **world**\n\n<script>alert(1)</script>\n\n[link](https://example.com)",
		"category":"Brand Design","tags":[{"name":"Identity"}],
		"author":{"name":"Sari","position":"CCO"},
		"publishedAt":"2024-06-03T08:00:00.000Z"}}`
	a, err := NewNormalizer("").NormalizeArticle(envelope(t, raw))
	require.NoError(t, err)

	body := string(a.Body)
	assert.Contains(t, body, "<strong>world</strong>")
	assert.NotContains(t, body, "<script")
	assert.Contains(t, body, `rel="nofollow`)
	assert.Equal(t, "Hello world link", a.Excerpt)
	assert.Equal(t, 1, a.ReadingMinutes)
	assert.Equal(t, Category{Name: "Brand Design", Slug: "brand-design"}, a.Category)
	assert.Equal(t, []string{"Identity"}, a.Tags)
	assert.Equal(t, Author{Name: "Sari", Role: "CCO"}, a.Author)
	assert.Equal(t, 2024, a.PublishedAt.Year())
}

func TestNormalizeArticleRichTextBody(t *testing.T) {
	raw := `{"data":{"slug":"tree","title":"Tree","excerpt":"Given",
		"content":[{"type":"heading","level":2,"children":[{"type":"text","text":"Title"}]},
		           {"type":"paragraph","children":[{"type":"text","text":"Para <b>"}]}]}}`
	a, err := NewNormalizer("").NormalizeArticle(envelope(t, raw))
	require.NoError(t, err)
	assert.Equal(t, "<h2>Title</h2><p>Para &lt;b&gt;</p>", string(a.Body))
	assert.Equal(t, "Given", a.Excerpt)
}

func TestNormalizePortfolioItemsSkipsBrokenEntries(t *testing.T) {
	raw := `{"data":[
		{"slug":"ok","title":"OK","date":"2024-01-02","gallery":[{"url":"/uploads/1.jpg","width":10},{"url":""}]},
		{"title":42},
		{"title":""}
	],"meta":{"pagination":{"page":1,"pageSize":9,"pageCount":1,"total":3}}}`
	items, p, err := NewNormalizer("https://cms.example").NormalizePortfolioItems(envelope(t, raw))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2024", items[0].Year)
	assert.Len(t, items[0].Gallery, 1)
	assert.Equal(t, "https://cms.example/uploads/1.jpg", items[0].Gallery[0].Src)
	assert.Equal(t, Pagination{Page: 1, PageSize: 9, PageCount: 1, Total: 3}, p)
}

func TestNormalizeCompanyParentAndStats(t *testing.T) {
	raw := `{"data":{"slug":"lensa","name":"Lensa","parent":{"name":"Narvex Live","slug":"narvex-live"},
		"stats":[{"label":"Films","value":"1,200+"}],"latitude":"-6.2","longitude":106.8}}`
	c, err := NewNormalizer("").NormalizeCompany(envelope(t, raw), KindSubsidiary)
	require.NoError(t, err)
	assert.Equal(t, KindSubsidiary, c.Kind)
	assert.Equal(t, Link{Label: "Narvex Live", URL: "/companies/narvex-live"}, c.Parent)
	assert.Equal(t, []Stat{{Label: "Films", Value: 1200, Suffix: "+"}}, c.Stats)
	assert.InDelta(t, -6.2, c.Location.Latitude, 1e-9)
	assert.InDelta(t, 106.8, c.Location.Longitude, 1e-9)
}

func TestTextListShapes(t *testing.T) {
	cases := map[string][]string{
		`"a\n\n b "`:                  {"a", "b"},
		`["a", " ", "b"]`:             {"a", "b"},
		`[{"text":"a"},{"name":"b"}]`: {"a", "b"},
		`[{"type":"list","children":[{"type":"list-item","children":[{"type":"text","text":"x"}]}]}]`: {"x"},
		`[{"type":"paragraph","children":[{"type":"text","text":"p"}]}]`:                             {"p"},
		`null`: {},
		`42`:   {},
	}
	for raw, want := range cases {
		var l textList
		require.NoError(t, json.Unmarshal([]byte(raw), &l), raw)
		if diff := cmp.Diff(want, l.strings()); diff != "" {
			t.Errorf("%s (-want +got):\n%s", raw, diff)
		}
	}
}

func TestParseStat(t *testing.T) {
	cases := []struct {
		in             string
		prefix, suffix string
		want           Stat
	}{
		{in: "150+", want: Stat{Value: 150, Suffix: "+"}},
		{in: "$2.5M", want: Stat{Value: 2.5, Prefix: "$", Suffix: "M"}},
		{in: "98%", suffix: " percent", want: Stat{Value: 98, Suffix: "percent"}},
		{in: "n/a", want: Stat{}},
		{in: "", prefix: "~", want: Stat{Prefix: "~"}},
	}
	for _, tc := range cases {
		v, p, s := parseStat(cms.FlexString(tc.in), tc.prefix, tc.suffix)
		assert.Equal(t, tc.want, Stat{Value: v, Prefix: p, Suffix: s}, tc.in)
	}
}

func TestImageUsesRequestedVariant(t *testing.T) {
	m := &cms.Media{
		URL: "/uploads/o.jpg", Width: 2000, Height: 1000, AlternativeText: "Alt",
		Formats: map[string]cms.MediaFormat{"small": {URL: "/uploads/s.jpg", Width: 500, Height: 250}},
	}
	img := NewNormalizer("https://cms.example").Image(m, VariantSmall, "ignored")
	want := widgets.Image{
		Src:      "https://cms.example/uploads/s.jpg",
		Srcset:   "https://cms.example/uploads/s.jpg 500w, https://cms.example/uploads/o.jpg 2000w",
		Sizes:    widgets.DefaultSizes,
		Alt:      "Alt",
		Width:    500,
		Height:   250,
		Fallback: widgets.PlaceholderImage,
	}
	if diff := cmp.Diff(want, img); diff != "" {
		t.Fatalf("image mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, NewNormalizer("").Image(nil, VariantSmall, "x").IsZero())
}

func TestPlainTextAndExcerpt(t *testing.T) {
	assert.Equal(t, "Title Para one two", PlainText("<h2>Title</h2><p>Para <em>one</em> two</p>"))
	long := strings.Repeat("word ", 60)
	ex := Excerpt(long, 20)
	assert.True(t, strings.HasSuffix(ex, "…"))
	assert.LessOrEqual(t, len([]rune(ex)), 21)
	assert.Equal(t, 0, ReadingMinutes(""))
	assert.Equal(t, 2, ReadingMinutes(strings.Repeat("w ", 201)))
}
