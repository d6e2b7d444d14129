package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/wearly/shopagent-backend/internal/logger"
	"github.com/wearly/shopagent-backend/internal/platform/openai"
	"github.com/wearly/shopagent-backend/internal/types"
)

const webSearchResultLimit = 8

const webSearchPrompt = `Find real products for: "%s"

Search the web and return 6 to 8 products as a JSON array. Each product needs: name, brand, price (USD number), color, fit, category, image_url, product_url, retailer. Return ONLY the JSON array. Start with [ and end with ].`

// Defaults applied to web-search products with missing fields so every
// displayed field is always populated.
const (
	defaultWebName     = "Unknown Product"
	defaultWebBrand    = "Unknown"
	defaultWebColor    = "N/A"
	defaultWebFit      = "Regular"
	defaultWebCategory = "clothing"
	defaultWebRetailer = "Online Store"
	defaultWebImageURL = "https://via.placeholder.com/300x400?text=No+Image"
	defaultWebURL      = "#"
)

// WebSearchService is the fallback path when the catalog comes up
// empty: one blocking call to the AI web-search agent, parsed
// defensively. Parse failure and agent failure both mean "no results".
type WebSearchService interface {
	Search(ctx context.Context, query string) []types.Product
}

type webSearchService struct {
	ai  openai.Client
	log *logger.Logger
}

// NewWebSearchService wraps the agent client; ai may be nil when no API
// key is configured, in which case every search returns no results.
func NewWebSearchService(ai openai.Client, baseLog *logger.Logger) WebSearchService {
	return &webSearchService{
		ai:  ai,
		log: baseLog.With("service", "WebSearchService"),
	}
}

func (s *webSearchService) Search(ctx context.Context, query string) []types.Product {
	if s.ai == nil {
		s.log.Debug("Web search agent not configured, returning no results")
		return nil
	}
	text, err := s.ai.GenerateTextWithWebSearch(ctx, fmt.Sprintf(webSearchPrompt, query))
	if err != nil {
		s.log.Warn("Web search agent call failed", "query", query, "error", err)
		return nil
	}
	entries, ok := parseProductArray(text)
	if !ok {
		s.log.Warn("Web search response was not a parseable product array", "query", query, "response_length", len(text))
		return nil
	}
	if len(entries) > webSearchResultLimit {
		entries = entries[:webSearchResultLimit]
	}
	products := make([]types.Product, 0, len(entries))
	for i, entry := range entries {
		products = append(products, normalizeWebProduct(i, entry))
	}
	s.log.Info("Web search completed", "query", query, "results", len(products))
	return products
}

// parseProductArray extracts a JSON array from loosely structured agent
// output: code fences are stripped, then the first bracketed span is
// located in case prose surrounds the array. Empty text, malformed JSON
// and non-array payloads all report !ok.
func parseProductArray(text string) ([]map[string]any, bool) {
	text = stripCodeFences(text)
	if text == "" {
		return nil, false
	}
	if span, ok := extractJSONArray(text); ok {
		text = span
	}
	var entries []map[string]any
	if err := json.Unmarshal([]byte(text), &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func stripCodeFences(src string) string {
	s := strings.TrimSpace(src)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	body := lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		body = lines[1 : len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(body, "\n"))
}

// extractJSONArray returns the first balanced [...] span, tracking
// string literals so brackets inside quoted values don't end the span.
func extractJSONArray(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// normalizeWebProduct maps one parsed entry to a Product, assigning the
// synthesized web id and defaulting every absent field.
func normalizeWebProduct(ordinal int, entry map[string]any) types.Product {
	return types.Product{
		ID:         fmt.Sprintf("%s%d", types.WebProductIDPrefix, ordinal+1),
		Name:       stringField(entry, "name", defaultWebName),
		Brand:      stringField(entry, "brand", defaultWebBrand),
		Price:      priceField(entry, "price"),
		Color:      stringField(entry, "color", defaultWebColor),
		Fit:        stringField(entry, "fit", defaultWebFit),
		Category:   stringField(entry, "category", defaultWebCategory),
		ImageURL:   stringField(entry, "image_url", defaultWebImageURL),
		ProductURL: stringField(entry, "product_url", defaultWebURL),
		Retailer:   stringField(entry, "retailer", defaultWebRetailer),
	}
}

func stringField(entry map[string]any, key, def string) string {
	v, ok := entry[key]
	if !ok || v == nil {
		return def
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// priceField tolerates agents returning the price as a JSON number or a
// numeric string (possibly with a currency sign).
func priceField(entry map[string]any, key string) float64 {
	v, ok := entry[key]
	if !ok || v == nil {
		return 0.0
	}
	switch p := v.(type) {
	case float64:
		return p
	case string:
		cleaned := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p), "$"))
		if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return f
		}
	}
	return 0.0
}
