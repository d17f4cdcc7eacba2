package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Project-Narvex/narvex-web/internal/i18n"
)

const (
	// LocaleQuery selects a language explicitly.
	LocaleQuery = "lang"
	// LocaleCookie remembers an explicit language choice.
	LocaleCookie = "hl"
)

type langKey struct{}

// Locale resolves the request language from the lang query parameter, the hl
// cookie, then Accept-Language, and stores it in the request context.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(LocaleQuery))); q != "" && bundle.IsSupported(q) {
				lang = q
				http.SetCookie(w, &http.Cookie{
					Name:     LocaleCookie,
					Value:    q,
					Path:     "/",
					MaxAge:   365 * 24 * 60 * 60,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			} else if c, err := r.Cookie(LocaleCookie); err == nil && bundle.IsSupported(c.Value) {
				lang = strings.ToLower(c.Value)
			} else {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}
			w.Header().Set("Content-Language", lang)
			w.Header().Add("Vary", "Accept-Language")
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

// WithLang stores lang in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// Lang returns the request language, or fallback when none was resolved.
func Lang(ctx context.Context, fallback string) string {
	if v, ok := ctx.Value(langKey{}).(string); ok && v != "" {
		return v
	}
	return fallback
}
