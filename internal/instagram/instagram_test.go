package instagram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Project-Narvex/narvex-web/internal/metrics"
)

func graphServer(t *testing.T, status int, body string) (*httptest.Server, <-chan *url.URL) {
	t.Helper()
	seen := make(chan *url.URL, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case seen <- r.URL:
		default:
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestFeedWithoutToken(t *testing.T) {
	m := metrics.NewProvider()
	c := NewClient("https://graph.instagram.com", "", WithMetrics(m))

	p := c.Feed(context.Background(), 6, "")
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"posts":[],"success":false,"source":"no_token"}`, string(raw))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InstagramSources.WithLabelValues("no_token")))
}

func TestFeedFromGraphAPI(t *testing.T) {
	srv, seen := graphServer(t, http.StatusOK, `{"data":[
		{"id":"1","caption":"hello","media_type":"IMAGE","media_url":"https://cdn.example/1.jpg","permalink":"https://instagram.com/p/1","timestamp":"2026-01-02T03:04:05+0000"},
		{"id":"2","media_type":"VIDEO","thumbnail_url":"https://cdn.example/2.jpg","permalink":"https://instagram.com/p/2"},
		{"id":"3","media_type":"IMAGE"}
	]}`)
	c := NewClient(srv.URL, "tok")

	p := c.Feed(context.Background(), 40, "")
	assert.True(t, p.Success)
	assert.Equal(t, SourceInstagram, p.Source)
	require.Len(t, p.Posts, 2)
	assert.Equal(t, "https://cdn.example/2.jpg", p.Posts[1].Thumbnail)

	u := <-seen
	assert.Equal(t, "/me/media", u.Path)
	assert.Equal(t, "25", u.Query().Get("limit"))
	assert.Equal(t, "tok", u.Query().Get("access_token"))
}

func TestFeedEmptyResultUsesFallback(t *testing.T) {
	srv, _ := graphServer(t, http.StatusOK, `{"data":[]}`)
	c := NewClient(srv.URL, "tok", WithUsername("@narvex.id"))

	for _, tc := range []struct {
		limit int
		want  int
	}{
		{limit: 0, want: 4},
		{limit: 6, want: 4},
		{limit: 2, want: 2},
		{limit: 1, want: 1},
	} {
		p := c.Feed(context.Background(), tc.limit, "")
		assert.True(t, p.Success)
		assert.Equal(t, SourceFallback, p.Source)
		assert.Empty(t, p.Error)
		assert.Len(t, p.Posts, tc.want, "limit %d", tc.limit)
		assert.Equal(t, "https://www.instagram.com/narvex.id/", p.Posts[0].Permalink)
	}
}

func TestFeedAPIErrorUsesFallback(t *testing.T) {
	srv, _ := graphServer(t, http.StatusBadRequest, `{"error":{"message":"Invalid OAuth access token.","type":"OAuthException"}}`)
	m := metrics.NewProvider()
	c := NewClient(srv.URL, "expired", WithMetrics(m))

	p := c.Feed(context.Background(), 3, "studio")
	assert.False(t, p.Success)
	assert.Equal(t, SourceFallback, p.Source)
	assert.Equal(t, "instagram: status 400: Invalid OAuth access token.", p.Error)
	require.Len(t, p.Posts, 3)
	assert.Equal(t, "https://www.instagram.com/studio/", p.Posts[2].Permalink)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InstagramSources.WithLabelValues("fallback")))
}

func TestFallbackPostsCycle(t *testing.T) {
	posts := FallbackPosts("", 8)
	require.Len(t, posts, 8)
	assert.Equal(t, "fallback-1-1", posts[6].ID)
	assert.Equal(t, posts[0].MediaURL, posts[6].MediaURL)
	assert.Empty(t, FallbackPosts("x", 0))
}
