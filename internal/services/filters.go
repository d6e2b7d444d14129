package services

import (
	"sort"
	"strings"

	"github.com/wearly/shopagent-backend/internal/repos"
	"github.com/wearly/shopagent-backend/internal/types"
)

// Keyword sets used to classify a free-text query as top- or
// bottom-related before applying fit preferences.
var (
	topKeywords    = []string{"shirt", "top", "hoodie", "sweater", "jacket", "blouse", "tshirt", "t-shirt", "sweatshirt"}
	bottomKeywords = []string{"jean", "trouser", "pant", "short", "skirt", "chino", "sweatpant"}
)

const (
	garmentTops    = "tops"
	garmentBottoms = "bottoms"
)

// classifyGarment returns "tops", "bottoms" or "" for a lowercased
// query. Tops win when a query mentions both.
func classifyGarment(queryLower string) string {
	for _, kw := range topKeywords {
		if strings.Contains(queryLower, kw) {
			return garmentTops
		}
	}
	for _, kw := range bottomKeywords {
		if strings.Contains(queryLower, kw) {
			return garmentBottoms
		}
	}
	return ""
}

// buildSearchFilters turns a free-text query plus optional preferences
// into the catalog predicate set: one OR-composed substring filter over
// the text fields, then AND-composed preference filters. Same query and
// prefs always produce the same filter list.
func buildSearchFilters(query string, prefs *types.UserPreferences) []repos.Filter {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	like := "%" + queryLower + "%"

	filters := []repos.Filter{{
		Name:   "text",
		Clause: "(LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(color) LIKE ? OR LOWER(category) LIKE ? OR LOWER(fit) LIKE ?)",
		Args:   []any{like, like, like, like, like},
	}}

	if prefs == nil {
		return filters
	}

	if f, ok := brandFilter(prefs.FavoriteBrands); ok {
		filters = append(filters, f)
	}

	if styles := lowerAll(prefs.FavoriteStyles); len(styles) > 0 {
		filters = append(filters, repos.Filter{
			Name:   "style",
			Clause: "LOWER(style) IN ?",
			Args:   []any{styles},
		})
	}

	var fitPrefs map[string][]string
	switch classifyGarment(queryLower) {
	case garmentTops:
		fitPrefs = prefs.FitPreferencesTops
	case garmentBottoms:
		fitPrefs = prefs.FitPreferencesBottoms
	}
	if fits := unionFits(fitPrefs); len(fits) > 0 {
		filters = append(filters, repos.Filter{
			Name:   "fit",
			Clause: "LOWER(fit) IN ?",
			Args:   []any{fits},
		})
	}

	return filters
}

// brandFilter builds the quote-tolerant brand membership predicate.
// Stored brand values are sometimes wrapped in literal quote characters
// (an ingestion artifact), so both the stripped and the raw forms are
// matched.
func brandFilter(favoriteBrands []string) (repos.Filter, bool) {
	brands := lowerAll(favoriteBrands)
	if len(brands) == 0 {
		return repos.Filter{}, false
	}
	return repos.Filter{
		Name:   "brand",
		Clause: `(LOWER(REPLACE(brand, '"', '')) IN ? OR LOWER(brand) IN ?)`,
		Args:   []any{brands, brands},
	}, true
}

// unionFits flattens every preferred-fit list across the sub-category
// mapping, de-duplicated, lowercased and sorted for a stable predicate.
func unionFits(fitPrefs map[string][]string) []string {
	if len(fitPrefs) == 0 {
		return nil
	}
	seen := map[string]bool{}
	for _, fits := range fitPrefs {
		for _, fit := range fits {
			fit = strings.ToLower(strings.TrimSpace(fit))
			if fit != "" {
				seen[fit] = true
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for fit := range seen {
		out = append(out, fit)
	}
	sort.Strings(out)
	return out
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// stripBrandQuotes removes the stored quoting artifact from a brand
// value for in-memory comparison.
func stripBrandQuotes(brand string) string {
	return strings.ReplaceAll(brand, `"`, "")
}
