package widgets

import (
	"net/url"
	"strconv"
	"strings"
)

// Feed limits shared by the widget and the feed endpoint.
const (
	DefaultFeedLimit = 6
	MaxFeedLimit     = 25
)

// ClampFeedLimit applies the default for non-positive values and caps at MaxFeedLimit.
func ClampFeedLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultFeedLimit
	case n > MaxFeedLimit:
		return MaxFeedLimit
	default:
		return n
	}
}

// SocialFeed configures the client-side Instagram grid.
type SocialFeed struct {
	Title      string
	Username   string
	Limit      int
	Columns    int
	Endpoint   string
	ProfileURL string
}

// NewSocialFeed builds the grid config. Posts are fetched by the browser from
// the feed endpoint.
func NewSocialFeed(title, username string, limit int) SocialFeed {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	limit = ClampFeedLimit(limit)
	f := SocialFeed{Title: title, Username: username, Limit: limit, Columns: 3}
	if limit < f.Columns {
		f.Columns = limit
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if username != "" {
		q.Set("username", username)
		f.ProfileURL = "https://www.instagram.com/" + url.PathEscape(username)
	}
	f.Endpoint = "/api/instagram?" + q.Encode()
	return f
}

// LoadState is the client-side lifecycle of a widget that fetches data.
type LoadState string

const (
	StateLoading LoadState = "loading"
	StateSuccess LoadState = "success"
	StateError   LoadState = "error"
)

// Next applies the single allowed transition. Terminal states do not change.
func (s LoadState) Next(ok bool) LoadState {
	if s != StateLoading {
		return s
	}
	if ok {
		return StateSuccess
	}
	return StateError
}
