package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile         = ".env"
	defaultSiteFile        = "site.yaml"
	defaultEnvironment     = EnvProduction
	defaultPort            = "8080"
	defaultBaseURL         = "http://localhost:8080"
	defaultLocale          = "en"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultCMSTimeout      = 10 * time.Second
	defaultCMSRevalidate   = 60 * time.Second
	defaultInstagramAPIURL = "https://graph.instagram.com"
	defaultLogLevel        = "info"
)

// Environment names understood by the loader.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Env       string
	Server    ServerConfig
	CMS       CMSConfig
	Instagram InstagramConfig
	Log       LogConfig
	Site      Site
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	BaseURL      string
	Locale       string
	TemplatesDir string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// CMSConfig points the content client at the headless CMS.
type CMSConfig struct {
	URL        string
	Token      string
	Timeout    time.Duration
	Revalidate time.Duration
}

// InstagramConfig holds credentials for the social feed endpoint.
type InstagramConfig struct {
	AccessToken string
	Username    string
	APIURL      string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// IsDevelopment reports whether the loader resolved the development environment.
func (c Config) IsDevelopment() bool { return c.Env == EnvDevelopment }

// Addr returns the listen address derived from the configured port.
func (c Config) Addr() string { return ":" + c.Server.Port }

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	siteFile     string
	siteFileSet  bool
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithSiteFile overrides the YAML site identity file. An empty path keeps the built-in defaults.
func WithSiteFile(path string) Option {
	return func(o *loaderOptions) {
		o.siteFile = path
		o.siteFileSet = true
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the application configuration by combining defaults, .env overrides,
// environment variables, and the optional site identity file.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		siteFile:     defaultSiteFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	port := stringWithDefault(lookup, "WEB_PORT", "")
	if port == "" {
		// Cloud Run and most PaaS hosts inject PORT.
		port = stringWithDefault(lookup, "PORT", defaultPort)
	}

	cfg := Config{
		Env: normalizeEnv(stringWithDefault(lookup, "WEB_ENV", defaultEnvironment)),
		Server: ServerConfig{
			Port:         port,
			BaseURL:      strings.TrimRight(stringWithDefault(lookup, "WEB_BASE_URL", defaultBaseURL), "/"),
			Locale:       strings.ToLower(stringWithDefault(lookup, "WEB_LOCALE", defaultLocale)),
			TemplatesDir: stringWithDefault(lookup, "WEB_TEMPLATES_DIR", ""),
			ReadTimeout:  durationWithDefault(lookup, "WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "WEB_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		CMS: CMSConfig{
			URL:        strings.TrimRight(stringWithDefault(lookup, "CMS_URL", ""), "/"),
			Token:      stringWithDefault(lookup, "CMS_API_TOKEN", ""),
			Timeout:    durationWithDefault(lookup, "CMS_TIMEOUT", defaultCMSTimeout),
			Revalidate: durationWithDefault(lookup, "CMS_REVALIDATE", defaultCMSRevalidate),
		},
		Instagram: InstagramConfig{
			AccessToken: stringWithDefault(lookup, "INSTAGRAM_ACCESS_TOKEN", ""),
			Username:    strings.TrimPrefix(stringWithDefault(lookup, "INSTAGRAM_USERNAME", ""), "@"),
			APIURL:      strings.TrimRight(stringWithDefault(lookup, "INSTAGRAM_API_URL", defaultInstagramAPIURL), "/"),
		},
		Log: LogConfig{
			Level: stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel),
		},
	}

	siteFile := options.siteFile
	if !options.siteFileSet {
		siteFile = stringWithDefault(lookup, "WEB_SITE_FILE", siteFile)
	}
	site, err := LoadSite(siteFile)
	if err != nil {
		return Config{}, err
	}
	cfg.Site = site
	if cfg.Instagram.Username == "" {
		cfg.Instagram.Username = site.InstagramHandle()
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var fields []string
	switch cfg.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		fields = append(fields, "WEB_ENV")
	}
	if n, err := strconv.Atoi(cfg.Server.Port); err != nil || n <= 0 || n > 65535 {
		fields = append(fields, "WEB_PORT")
	}
	if !isAbsoluteHTTPURL(cfg.Server.BaseURL) {
		fields = append(fields, "WEB_BASE_URL")
	}
	if cfg.CMS.URL != "" && !isAbsoluteHTTPURL(cfg.CMS.URL) {
		fields = append(fields, "CMS_URL")
	}
	if cfg.CMS.Timeout <= 0 {
		fields = append(fields, "CMS_TIMEOUT")
	}
	if cfg.CMS.Revalidate < 0 {
		fields = append(fields, "CMS_REVALIDATE")
	}
	if !isAbsoluteHTTPURL(cfg.Instagram.APIURL) {
		fields = append(fields, "INSTAGRAM_API_URL")
	}
	if cfg.Server.ReadTimeout <= 0 {
		fields = append(fields, "WEB_READ_TIMEOUT")
	}
	if cfg.Server.WriteTimeout <= 0 {
		fields = append(fields, "WEB_WRITE_TIMEOUT")
	}
	fields = append(fields, cfg.Site.validate()...)
	if len(fields) > 0 {
		return &ValidationError{fields: fields}
	}
	return nil
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func normalizeEnv(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "development", "local":
		return EnvDevelopment
	case "prod", "production":
		return EnvProduction
	case "test":
		return EnvTest
	default:
		return strings.ToLower(strings.TrimSpace(env))
	}
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
		// bare integers are read as seconds
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}
