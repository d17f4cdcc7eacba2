package httpserver_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Project-Narvex/narvex-web/internal/testutil"
)

var nonceRe = regexp.MustCompile(`'nonce-([^']+)'`)

func get(t *testing.T, url string, header ...string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestPagesCarryPolicyAndNonce(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	seen := map[string]bool{}
	for _, path := range []string{"/", "/about", "/services", "/portfolio", "/blog", "/companies", "/subsidiaries", "/contact"} {
		resp, body := get(t, ts.URL+path)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)

		csp := resp.Header.Get("Content-Security-Policy")
		m := nonceRe.FindStringSubmatch(csp)
		require.Len(t, m, 2, "%s: %s", path, csp)
		nonce := m[1]
		assert.False(t, seen[nonce], "nonce reused on %s", path)
		seen[nonce] = true
		assert.Contains(t, csp, "upgrade-insecure-requests")
		assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
		assert.NotEmpty(t, resp.Header.Get("Strict-Transport-Security"))

		doc := testutil.ParseHTML(t, body)
		scripts := doc.Find("script")
		require.Greater(t, scripts.Length(), 0, path)
		scripts.Each(func(_ int, s *goquery.Selection) {
			assert.Equal(t, nonce, s.AttrOr("nonce", ""), path)
		})
		assert.Equal(t, "fallback", doc.Find("main").AttrOr("data-source", ""), path)
	}
}

func TestHomeFromCMS(t *testing.T) {
	t.Parallel()
	cmsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/home-page" {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":{"id":1,"blocks":[
			{"__component":"sections.hero","title":"Live from the CMS"},
			{"__component":"sections.clients","title":"Trusted by","clients":[{"name":"Acme"},{"name":"Globex"}]}
		]},"meta":{}}`)
	}))
	t.Cleanup(cmsSrv.Close)
	ts := testutil.NewServer(t, testutil.WithCMS(cmsSrv.URL))

	resp, body := get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Security-Policy"), "connect-src 'self' "+cmsSrv.URL)

	doc := testutil.ParseHTML(t, body)
	assert.Equal(t, "cms", doc.Find("main").AttrOr("data-source", ""))
	assert.Equal(t, "Live from the CMS", strings.TrimSpace(doc.Find("h1").First().Text()))
	assert.Equal(t, 4, doc.Find(".carousel-item").Length())
	assert.Equal(t, 2, doc.Find(`.carousel-item[aria-hidden="true"]`).Length())
	assert.Equal(t, "20", doc.Find("[data-carousel]").AttrOr("data-speed", ""))

	// The portfolio listing degrades on its own.
	_, body = get(t, ts.URL+"/portfolio")
	assert.Equal(t, "fallback", testutil.ParseHTML(t, body).Find("main").AttrOr("data-source", ""))
}

func TestDetailPages(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, body := get(t, ts.URL+"/portfolio/kopi-rimba-rebrand")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := testutil.ParseHTML(t, body)
	assert.Equal(t, "Kopi Rimba Rebrand", strings.TrimSpace(doc.Find("h1").Text()))
	assert.Equal(t, "Kopi Rimba Rebrand", strings.TrimSpace(doc.Find(`.breadcrumbs [aria-current="page"]`).Text()))
	assert.Contains(t, doc.Find(`script[type="application/ld+json"]`).Text(), `"@type":"CreativeWork"`)

	resp, _ = get(t, ts.URL+"/blog/brand-systems-that-scale")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = get(t, ts.URL+"/companies/narvex-live")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Greater(t, testutil.ParseHTML(t, body).Find(".company-card").Length(), 0, "company lists its subsidiaries")

	for _, path := range []string{"/portfolio/no-such-project", "/blog/nope", "/subsidiaries/nope", "/not-a-page"} {
		resp, body := get(t, ts.URL+path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "Page not found", strings.TrimSpace(testutil.ParseHTML(t, body).Find("h1").Text()), path)
		assert.NotEmpty(t, resp.Header.Get("Content-Security-Policy"), path)
	}
}

func TestLocaleSelection(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, body := get(t, ts.URL+"/missing", "Accept-Language", "id-ID,id;q=0.9,en;q=0.5")
	assert.Equal(t, "id", resp.Header.Get("Content-Language"))
	assert.Equal(t, "Halaman tidak ditemukan", strings.TrimSpace(testutil.ParseHTML(t, body).Find("h1").Text()))

	resp, _ = get(t, ts.URL+"/?lang=en", "Accept-Language", "id")
	assert.Equal(t, "en", resp.Header.Get("Content-Language"))
}

func TestContactEndpoint(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, body := postJSON(t, ts.URL+"/api/contact", `{"name":"Rani","email":"rani@example.com","phone":" ","message":"hi"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{
		"success": false,
		"error": "Missing required fields: phone, service, budget, timeline",
		"missingFields": ["phone", "service", "budget", "timeline"]
	}`, string(body))
	assert.Empty(t, resp.Header.Get("Content-Security-Policy"))

	resp, _ = postJSON(t, ts.URL+"/api/contact", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postJSON(t, ts.URL+"/api/contact", `{"name":"`+strings.Repeat("x", 70<<10)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	resp, body = postJSON(t, ts.URL+"/api/contact", `{"name":"Rani","email":"rani@example.com","phone":"0812","service":"Branding","budget":"<50jt","timeline":"ASAP","message":"hi"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Success bool `json:"success"`
		Data    struct {
			ID     string `json:"id"`
			Source string `json:"source"`
			Name   string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.True(t, got.Success)
	assert.Equal(t, "local", got.Data.Source)
	assert.Equal(t, "Rani", got.Data.Name)
	assert.Len(t, got.Data.ID, 26)

	resp, body = postJSON(t, ts.URL+"/api/contact", `{"name":"Rani","email":"rani@example.com","phone":622150001234,"service":"Branding","budget":"<50jt","timeline":"ASAP","message":"hi"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var numeric struct {
		Data struct {
			Phone string `json:"phone"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &numeric))
	assert.Equal(t, "622150001234", numeric.Data.Phone)
}

func TestInstagramEndpointWithoutToken(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, body := get(t, ts.URL+"/api/instagram?limit=3")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"posts":[],"success":false,"source":"no_token"}`, string(body))
}

func TestCollectionEndpoints(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, body := get(t, ts.URL+"/api/portfolio?category=branding&pageSize=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Items []struct {
			Slug string `json:"slug"`
			URL  string `json:"url"`
		} `json:"items"`
		Pagination struct {
			Page      int `json:"page"`
			PageCount int `json:"pageCount"`
			Total     int `json:"total"`
		} `json:"pagination"`
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, "fallback", list.Source)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "/portfolio/"+list.Items[0].Slug, list.Items[0].URL)
	assert.Equal(t, 2, list.Pagination.Total)

	resp, body = get(t, ts.URL+"/api/articles")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Items, 4)
}

func TestAssetsAndCrawlerFiles(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t)

	resp, _ := get(t, ts.URL+"/assets/css/site.css")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("ETag"))
	assert.Empty(t, resp.Header.Get("Content-Security-Policy"))

	resp, body := get(t, ts.URL+"/robots.txt")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Sitemap: https://narvex.test/sitemap.xml")

	resp, body = get(t, ts.URL+"/sitemap.xml")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<loc>https://narvex.test/portfolio/kopi-rimba-rebrand</loc>")
	assert.Contains(t, string(body), "<loc>https://narvex.test/subsidiaries/lensa-studio</loc>")

	resp, body = get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	resp, body = get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "narvex_http_requests_total")
	assert.Contains(t, string(body), "narvex_page_fallback_total")
}

func TestSitemapListsEveryPortfolioPage(t *testing.T) {
	t.Parallel()
	cmsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/portfolios" {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		page := r.URL.Query().Get("pagination[page]")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":[{"id":`+page+`,"slug":"project-`+page+`","title":"Project `+page+`",`+
			`"category":{"name":"Branding","slug":"branding"},"date":"2025-01-10"}],`+
			`"meta":{"pagination":{"page":`+page+`,"pageSize":50,"pageCount":2,"total":51}}}`)
	}))
	t.Cleanup(cmsSrv.Close)
	ts := testutil.NewServer(t, testutil.WithCMS(cmsSrv.URL))

	resp, body := get(t, ts.URL+"/sitemap.xml")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<loc>https://narvex.test/portfolio/project-1</loc>")
	assert.Contains(t, string(body), "<loc>https://narvex.test/portfolio/project-2</loc>")
	assert.Contains(t, string(body), "<loc>https://narvex.test/blog/brand-systems-that-scale</loc>")
}

func TestDevelopmentPolicy(t *testing.T) {
	t.Parallel()
	ts := testutil.NewServer(t, testutil.WithDevelopment())

	resp, _ := get(t, ts.URL+"/")
	csp := resp.Header.Get("Content-Security-Policy")
	assert.Contains(t, csp, "'unsafe-eval'")
	assert.NotContains(t, csp, "upgrade-insecure-requests")
	assert.Empty(t, resp.Header.Get("Strict-Transport-Security"))
}
