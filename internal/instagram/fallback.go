package instagram

import (
	"net/url"
	"strconv"
)

var fallbackPosts = []Post{
	{ID: "fallback-1", Caption: "Kopi Rimba rebrand: packaging system rollout", MediaType: "IMAGE", MediaURL: "/assets/img/work/kopi-rimba.svg"},
	{ID: "fallback-2", Caption: "Lumen Telco launch night", MediaType: "IMAGE", MediaURL: "/assets/img/work/lumen-launch.svg"},
	{ID: "fallback-3", Caption: "Sagara Resorts booking site is live", MediaType: "IMAGE", MediaURL: "/assets/img/work/sagara-site.svg"},
	{ID: "fallback-4", Caption: "Bank Sentosa annual report design", MediaType: "IMAGE", MediaURL: "/assets/img/work/bank-sentosa.svg"},
	{ID: "fallback-5", Caption: "Nusantara Air inflight campaign", MediaType: "IMAGE", MediaURL: "/assets/img/work/nusantara-air.svg"},
	{ID: "fallback-6", Caption: "Pijar Energi sustainability film", MediaType: "IMAGE", MediaURL: "/assets/img/work/pijar-energi.svg"},
}

// FallbackPosts returns n static posts, cycling through the built-in set.
// Permalinks point at the account profile when username is known.
func FallbackPosts(username string, n int) []Post {
	if n <= 0 {
		return []Post{}
	}
	link := "https://www.instagram.com/"
	if username != "" {
		link += url.PathEscape(username) + "/"
	}
	out := make([]Post, n)
	for i := range out {
		p := fallbackPosts[i%len(fallbackPosts)]
		if i >= len(fallbackPosts) {
			p.ID = p.ID + "-" + strconv.Itoa(i/len(fallbackPosts))
		}
		p.Permalink = link
		out[i] = p
	}
	return out
}
