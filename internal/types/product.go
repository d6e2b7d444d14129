package types

// Product is the fixed-shape record returned by every search surface.
// ID is a catalog integer rendered as a decimal string, or a "web_<n>"
// token for rows synthesized from web-search fallback. Web rows are
// never persisted.
type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	Price         float64 `json:"price"`
	Color         string  `json:"color"`
	Fit           string  `json:"fit"`
	Category      string  `json:"category"`
	Style         string  `json:"style,omitempty"`
	ImageURL      string  `json:"image_url"`
	ProductURL    string  `json:"product_url"`
	AffiliateLink string  `json:"affiliate_link,omitempty"`
	Retailer      string  `json:"retailer"`

	// Reason is only set on recommendation results ("Similar to what
	// you viewed", "Matches your style").
	Reason string `json:"reason,omitempty"`
}

// WebProductIDPrefix marks fallback products so downstream catalog
// queries can filter them out before building id predicates.
const WebProductIDPrefix = "web_"
