// models/search_filters.go
package models

import (
	"net/url"
	"strconv"
)

// SearchFilters mirrors the search endpoint's optional query args.
// Use zero-values / nil to omit a filter; an omitted filter imposes no
// constraint server-side.
type SearchFilters struct {
	Category     string   // exact match
	MinPrice     *float64 // inclusive lower bound
	MaxPrice     *float64 // inclusive upper bound
	Availability string   // recognized but possibly a server-side no-op
}

// ToValues encodes only the filters that are set, one query parameter each.
func (f SearchFilters) ToValues() url.Values {
	q := url.Values{}

	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.MinPrice != nil {
		q.Set("min_price", ftoa(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		q.Set("max_price", ftoa(*f.MaxPrice))
	}
	if f.Availability != "" {
		q.Set("availability", f.Availability)
	}
	return q
}

// IsZero reports whether no filter is set.
func (f SearchFilters) IsZero() bool {
	return f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil && f.Availability == ""
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
