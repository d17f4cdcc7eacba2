package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""), WithSiteFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Env != EnvProduction {
		t.Errorf("expected production env, got %s", cfg.Env)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.CMS.URL != "" {
		t.Errorf("expected empty cms url, got %s", cfg.CMS.URL)
	}
	if cfg.CMS.Revalidate != time.Minute {
		t.Errorf("unexpected revalidate window: %s", cfg.CMS.Revalidate)
	}
	if cfg.Instagram.APIURL != defaultInstagramAPIURL {
		t.Errorf("unexpected instagram api url: %s", cfg.Instagram.APIURL)
	}
	if cfg.Instagram.Username != "narvex.id" {
		t.Errorf("expected username derived from site social links, got %q", cfg.Instagram.Username)
	}
	if cfg.Site.Name != "Narvex" {
		t.Errorf("expected default site name, got %q", cfg.Site.Name)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"WEB_ENV":                "dev",
		"PORT":                   "9000",
		"WEB_BASE_URL":           "https://narvex.example/",
		"CMS_URL":                "https://cms.example/",
		"CMS_API_TOKEN":          "token",
		"CMS_TIMEOUT":            "3s",
		"CMS_REVALIDATE":         "0",
		"INSTAGRAM_ACCESS_TOKEN": "ig",
		"INSTAGRAM_USERNAME":     "@studio",
		"LOG_LEVEL":              "debug",
	}
	cfg, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""), WithSiteFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.IsDevelopment() {
		t.Errorf("expected development env, got %s", cfg.Env)
	}
	if cfg.Addr() != ":9000" {
		t.Errorf("expected PORT fallback, got %s", cfg.Addr())
	}
	if cfg.Server.BaseURL != "https://narvex.example" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Server.BaseURL)
	}
	if cfg.CMS.URL != "https://cms.example" || cfg.CMS.Token != "token" {
		t.Errorf("unexpected cms config: %+v", cfg.CMS)
	}
	if cfg.CMS.Timeout != 3*time.Second {
		t.Errorf("unexpected cms timeout: %s", cfg.CMS.Timeout)
	}
	if cfg.CMS.Revalidate != 0 {
		t.Errorf("expected revalidate disabled, got %s", cfg.CMS.Revalidate)
	}
	if cfg.Instagram.Username != "studio" {
		t.Errorf("expected @ stripped from username, got %q", cfg.Instagram.Username)
	}
}

func TestLoadReadsDotEnvAndSiteFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("CMS_URL=https://dotenv.example\nWEB_PORT=7070\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	sitePath := filepath.Join(dir, "site.yaml")
	site := "name: Studio\nemail: team@studio.example\nlatitude: 1.5\nlongitude: 2.5\nlocales: [EN]\n"
	if err := os.WriteFile(sitePath, []byte(site), 0o600); err != nil {
		t.Fatalf("write site: %v", err)
	}

	cfg, err := Load(context.Background(),
		WithEnvMap(map[string]string{"WEB_PORT": "7171"}),
		WithoutSystemEnv(),
		WithEnvFile(envPath),
		WithSiteFile(sitePath),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.CMS.URL != "https://dotenv.example" {
		t.Errorf("expected cms url from .env, got %s", cfg.CMS.URL)
	}
	if cfg.Server.Port != "7171" {
		t.Errorf("expected env map to win over .env, got %s", cfg.Server.Port)
	}
	if cfg.Site.Name != "Studio" || cfg.Site.Email != "team@studio.example" {
		t.Errorf("unexpected site overlay: %+v", cfg.Site)
	}
	if cfg.Site.Phone == "" {
		t.Errorf("expected default phone to survive overlay")
	}
	if len(cfg.Site.Locales) != 1 || cfg.Site.Locales[0] != "en" {
		t.Errorf("expected normalised locales, got %v", cfg.Site.Locales)
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"WEB_ENV":      "staging",
		"WEB_PORT":     "http",
		"CMS_URL":      "cms.local",
		"WEB_BASE_URL": "not a url",
	}
	_, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""), WithSiteFile(""))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := map[string]bool{"WEB_ENV": true, "WEB_PORT": true, "CMS_URL": true, "WEB_BASE_URL": true}
	fields := vErr.Fields()
	if len(fields) != len(want) {
		t.Fatalf("expected %d invalid fields, got %v", len(want), fields)
	}
	for _, f := range fields {
		if !want[f] {
			t.Errorf("unexpected invalid field %s", f)
		}
	}
}

func TestLoadSiteRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte("name: [unterminated"), 0o600); err != nil {
		t.Fatalf("write site: %v", err)
	}
	if _, err := LoadSite(path); err == nil {
		t.Fatal("expected parse error")
	}
	site, err := LoadSite(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing site file should not error: %v", err)
	}
	if site.Name != DefaultSite().Name {
		t.Fatalf("expected defaults for missing file, got %q", site.Name)
	}
}
