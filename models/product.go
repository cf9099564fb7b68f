// models/product.go
package models

// Product is one search result or detail record. Read-only on the client:
// result sets are replaced wholesale by the latest search response.
type Product struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Price        *float64       `json:"price,omitempty"`
	Category     string         `json:"category,omitempty"`
	Availability string         `json:"availability,omitempty"`
	Images       []ProductImage `json:"images,omitempty"`
	SourceURL    string         `json:"source_url"`
	Description  string         `json:"description,omitempty"`
	MatchReason  string         `json:"match_reason,omitempty"`
	Enrichment   *Enrichment    `json:"enrichment,omitempty"`
}

// ProductImage is one entry in a product's ordered image list.
type ProductImage struct {
	URL string `json:"url"`
}

// Enrichment is the AI-generated record attached to a product detail.
type Enrichment struct {
	VisualSummary string            `json:"visual_summary,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// DisplayDescription prefers the enriched visual summary over the raw
// description, matching the detail view's fallback.
func (p Product) DisplayDescription() string {
	if p.Enrichment != nil && p.Enrichment.VisualSummary != "" {
		return p.Enrichment.VisualSummary
	}
	return p.Description
}

// FirstImageURL returns the lead image URL, or "" when the product has none.
func (p Product) FirstImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}
