package cms

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQueryValues(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  url.Values
	}{
		{
			name:  "empty",
			query: Query{},
			want:  url.Values{},
		},
		{
			name:  "populate all",
			query: Query{PopulateAll: true, Populate: []string{"ignored"}},
			want:  url.Values{"populate": {"*"}},
		},
		{
			name:  "nested populate",
			query: Query{Populate: []string{"cover", "blocks.*", "author.avatar"}},
			want: url.Values{
				"populate[cover]":                   {"true"},
				"populate[blocks][populate]":        {"*"},
				"populate[author][populate][avatar]": {"true"},
			},
		},
		{
			name: "filters",
			query: Query{Filters: []Filter{
				Eq("category.slug", "branding"),
				Containsi("title", "launch"),
				In("tags.slug", "a", "b"),
				IsNull("featured", false),
				{Field: "order", Value: 3},
			}},
			want: url.Values{
				"filters[category][slug][$eq]": {"branding"},
				"filters[title][$containsi]":   {"launch"},
				"filters[tags][slug][$in][0]":  {"a"},
				"filters[tags][slug][$in][1]":  {"b"},
				"filters[featured][$null]":     {"false"},
				"filters[order][$eq]":          {"3"},
			},
		},
		{
			name:  "sort and pagination",
			query: Query{Sort: []string{"date:desc", " ", "title"}, Page: 2, PageSize: 9, Locale: "id"},
			want: url.Values{
				"sort[0]":              {"date:desc"},
				"sort[1]":              {"title"},
				"pagination[page]":     {"2"},
				"pagination[pageSize]": {"9"},
				"locale":               {"id"},
			},
		},
		{
			name:  "leading blank sort skipped",
			query: Query{Sort: []string{"", "title:asc"}},
			want:  url.Values{"sort[0]": {"title:asc"}},
		},
		{
			name:  "limit wins over page",
			query: Query{Limit: 5, Page: 3, Status: "published"},
			want:  url.Values{"pagination[limit]": {"5"}, "status": {"published"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.query.Values()); diff != "" {
				t.Fatalf("Values() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
