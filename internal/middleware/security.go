package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
)

// NonceHeader carries the per-request CSP nonce to downstream handlers.
const NonceHeader = "x-nonce"

const instagramGraphOrigin = "https://graph.instagram.com"

// SecurityConfig selects the policy variant.
type SecurityConfig struct {
	Development bool
	// CMSOrigin is added to connect-src. Paths are ignored.
	CMSOrigin string
}

var skipPrefixes = []string{"/assets/", "/api/", "/healthz", "/metrics", "/favicon.ico", "/robots.txt", "/sitemap.xml"}

var staticExtensions = map[string]bool{
	".css": true, ".js": true, ".map": true, ".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".svg": true, ".webp": true, ".avif": true, ".ico": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".txt": true,
	".xml": true, ".json": true, ".pdf": true, ".mp4": true, ".webm": true,
}

// Security sets the baseline security headers on every response and, for
// page requests, generates a nonce and the matching Content-Security-Policy.
func Security(cfg SecurityConfig) func(http.Handler) http.Handler {
	origin := originOf(cfg.CMSOrigin)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(self)")
			if !cfg.Development {
				h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
			}
			if skipSecurity(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			nonce := NewNonce()
			r.Header.Set(NonceHeader, nonce)
			h.Set("Content-Security-Policy", ContentSecurityPolicy(nonce, cfg.Development, origin))
			next.ServeHTTP(w, r.WithContext(WithNonce(r.Context(), nonce)))
		})
	}
}

// NewNonce returns base64 of a random UUIDv4 string.
func NewNonce() string {
	return base64.StdEncoding.EncodeToString([]byte(uuid.NewString()))
}

// ContentSecurityPolicy renders the policy for nonce. cmsOrigin may be empty.
func ContentSecurityPolicy(nonce string, development bool, cmsOrigin string) string {
	n := "'nonce-" + nonce + "'"

	script := []string{"'self'", n, "'strict-dynamic'"}
	style := []string{"'self'"}
	connect := []string{"'self'"}
	if cmsOrigin != "" {
		connect = append(connect, cmsOrigin)
	}
	connect = append(connect, instagramGraphOrigin)
	if development {
		script = append(script, "'unsafe-eval'")
		style = append(style, "'unsafe-inline'")
		connect = append(connect, "ws:")
	} else {
		style = append(style, n)
	}

	directives := []string{
		"default-src 'self'",
		"script-src " + strings.Join(script, " "),
		"style-src " + strings.Join(style, " "),
		"img-src 'self' blob: data: https:",
		"font-src 'self' data:",
		"connect-src " + strings.Join(connect, " "),
		"frame-src https://www.openstreetmap.org",
		"object-src 'none'",
		"base-uri 'self'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}
	if !development {
		directives = append(directives, "upgrade-insecure-requests")
	}
	return strings.Join(directives, "; ")
}

func skipSecurity(p string) bool {
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return staticExtensions[strings.ToLower(path.Ext(p))]
}

func originOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

type nonceKey struct{}

// WithNonce stores the CSP nonce in ctx.
func WithNonce(ctx context.Context, nonce string) context.Context {
	return context.WithValue(ctx, nonceKey{}, nonce)
}

// NonceFromContext returns the request's CSP nonce, or "" outside Security.
func NonceFromContext(ctx context.Context) string {
	v, _ := ctx.Value(nonceKey{}).(string)
	return v
}
