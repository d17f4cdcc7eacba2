package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// ErrBodyTooLarge is returned when a request body exceeds the configured limit.
var ErrBodyTooLarge = errors.New("httpx: request body too large")

// DecodeJSON reads at most limit bytes from the request body into v.
func DecodeJSON(r *http.Request, limit int64, v any) error {
	if r.Body == nil {
		return errors.New("httpx: empty request body")
	}
	if limit <= 0 {
		limit = 1 << 20
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return fmt.Errorf("httpx: read body: %w", err)
	}
	if int64(len(body)) > limit {
		return ErrBodyTooLarge
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return errors.New("httpx: empty request body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("httpx: decode body: %w", err)
	}
	return nil
}

// QueryInt parses a positive integer query parameter, returning fallback when absent or invalid.
func QueryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// QueryBool parses common truthy query values. Absent or unrecognised values yield nil.
func QueryBool(r *http.Request, key string) *bool {
	raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key)))
	var v bool
	switch raw {
	case "1", "true", "yes", "on":
		v = true
	case "0", "false", "no", "off":
		v = false
	default:
		return nil
	}
	return &v
}
