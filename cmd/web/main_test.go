package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Project-Narvex/narvex-web/internal/cms"
	"github.com/Project-Narvex/narvex-web/internal/config"
	"github.com/Project-Narvex/narvex-web/internal/content"
)

func newStubCMS(t *testing.T) *httptest.Server {
	t.Helper()
	docs := map[string]string{
		"/api/portfolios":   `[{"id":1,"slug":"atlas","title":"Atlas","category":{"name":"Branding","slug":"branding"},"date":"2025-01-10"}]`,
		"/api/articles":     `[{"id":1,"attributes":{"slug":"hello","title":"Hello","publishedAt":"2025-02-01T00:00:00Z"}}]`,
		"/api/companies":    `[{"id":1,"slug":"narvex-brand","name":"Narvex Brand"}]`,
		"/api/subsidiaries": `[]`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := docs[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":`+data+`,"meta":{}}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestSnapshotCommandWritesLoadableDataset(t *testing.T) {
	srv := newStubCMS(t)
	setEnv(t, map[string]string{"CMS_URL": srv.URL, "WEB_ENV": "test", "WEB_SITE_FILE": ""})
	out := filepath.Join(t.TempDir(), "data", "snapshot.json")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"snapshot", "--env-file", "", "--out", out})
	cmd.SetOut(io.Discard)
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	ds, err := content.ParseSnapshot(raw)
	require.NoError(t, err)
	require.Len(t, ds.Portfolio, 1)
	assert.Equal(t, "atlas", ds.Portfolio[0].Slug)
	require.Len(t, ds.Articles, 1)
	assert.Equal(t, "hello", ds.Articles[0].Slug)
	assert.Len(t, ds.Companies, 1)
	assert.Empty(t, ds.Subsidiaries)

	var snap content.Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.WithinDuration(t, time.Now(), snap.GeneratedAt, time.Minute)
}

func TestFetchSnapshotReadsEveryPage(t *testing.T) {
	var pagesSeen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		page := r.URL.Query().Get("pagination[page]")
		switch r.URL.Path {
		case "/api/portfolios":
			pagesSeen = append(pagesSeen, page)
			_, _ = io.WriteString(w, `{"data":[{"id":`+page+`,"slug":"p`+page+`","title":"P`+page+`","date":"2025-01-10"}],`+
				`"meta":{"pagination":{"page":`+page+`,"pageSize":1,"pageCount":3,"total":3}}}`)
		case "/api/articles":
			// Reports more entries than it ever returns.
			_, _ = io.WriteString(w, `{"data":[{"id":1,"slug":"hello","title":"Hello","publishedAt":"2025-02-01T00:00:00Z"}],`+
				`"meta":{"pagination":{"page":1,"pageSize":100,"pageCount":1,"total":250}}}`)
		default:
			_, _ = io.WriteString(w, `{"data":[],"meta":{}}`)
		}
	}))
	t.Cleanup(srv.Close)

	core, logs := observer.New(zapcore.WarnLevel)
	client := cms.NewClient(srv.URL, cms.WithRevalidate(0))
	snap, err := fetchSnapshot(context.Background(), client, zap.New(core), time.Now())
	require.NoError(t, err)

	slugs := make([]string, 0, len(snap.Portfolios))
	for _, raw := range snap.Portfolios {
		var doc struct {
			Slug string `json:"slug"`
		}
		require.NoError(t, json.Unmarshal(raw, &doc))
		slugs = append(slugs, doc.Slug)
	}
	assert.ElementsMatch(t, []string{"p1", "p2", "p3"}, slugs)
	assert.Equal(t, []string{"1", "2", "3"}, pagesSeen)

	warned := logs.FilterMessage("snapshot collection truncated").All()
	require.Len(t, warned, 1)
	assert.Equal(t, "articles", warned[0].ContextMap()["collection"])
}

func TestSnapshotCommandFailsWithoutCMS(t *testing.T) {
	setEnv(t, map[string]string{"CMS_URL": "", "WEB_ENV": "test", "WEB_SITE_FILE": ""})
	out := filepath.Join(t.TempDir(), "snapshot.json")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"snapshot", "--env-file", "", "--out", out})
	cmd.SetOut(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CMS_URL")
	assert.NoFileExists(t, out)
}

func TestSnapshotKeepsExistingFileOnFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	setEnv(t, map[string]string{"CMS_URL": srv.URL, "WEB_ENV": "test", "WEB_SITE_FILE": ""})
	out := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(out, []byte(`{"keep":true}`), 0o644))

	cmd := newRootCmd()
	cmd.SetArgs([]string{"snapshot", "--env-file", "", "--out", out})
	cmd.SetOut(io.Discard)
	require.Error(t, cmd.ExecuteContext(context.Background()))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"keep":true}`, string(raw))
}

func TestBuildServerServesPages(t *testing.T) {
	cfg, err := config.Load(context.Background(),
		config.WithEnvFile(""),
		config.WithSiteFile(""),
		config.WithoutSystemEnv(),
		config.WithEnvMap(map[string]string{"WEB_ENV": "test"}),
	)
	require.NoError(t, err)

	srv, err := buildServer(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, cfg.Addr(), srv.Addr)

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, bytes.Contains(body, []byte(`data-source="fallback"`)))
}

func TestRunStopsOnCancel(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, srv, zap.NewNop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRootHelpListsCommands(t *testing.T) {
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "serve")
	assert.Contains(t, buf.String(), "snapshot")
}
