package services

import (
	"context"
	"strconv"

	"github.com/wearly/shopagent-backend/internal/logger"
	"github.com/wearly/shopagent-backend/internal/repos"
	"github.com/wearly/shopagent-backend/internal/types"
)

const catalogSearchLimit = 50

// CatalogService resolves a free-text query against the product
// catalog. Store errors degrade to an empty result so the orchestrator
// can fall back to web search.
type CatalogService interface {
	Search(ctx context.Context, query string, prefs *types.UserPreferences) []types.Product
}

type catalogService struct {
	products repos.ProductRepo
	log      *logger.Logger
}

func NewCatalogService(products repos.ProductRepo, baseLog *logger.Logger) CatalogService {
	return &catalogService{
		products: products,
		log:      baseLog.With("service", "CatalogService"),
	}
}

func (s *catalogService) Search(ctx context.Context, query string, prefs *types.UserPreferences) []types.Product {
	if s.products == nil {
		s.log.Warn("Catalog store not configured, returning no results")
		return nil
	}
	filters := buildSearchFilters(query, prefs)
	rows, err := s.products.Search(ctx, filters, catalogSearchLimit)
	if err != nil {
		s.log.Warn("Catalog search failed, degrading to empty result", "query", query, "error", err)
		return nil
	}
	out := make([]types.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, productFromRow(row))
	}
	s.log.Info("Catalog search completed", "query", query, "results", len(out), "personalized", prefs != nil)
	return out
}

func productFromRow(row repos.ProductRow) types.Product {
	retailer := row.Brand
	if retailer == "" {
		retailer = "Online Store"
	}
	return types.Product{
		ID:            strconv.FormatInt(row.ID, 10),
		Name:          row.Name,
		Brand:         row.Brand,
		Price:         row.Price,
		Color:         row.Color,
		Fit:           row.Fit,
		Category:      row.Category,
		Style:         row.Style,
		ImageURL:      row.ImageURL,
		ProductURL:    row.ProductURL,
		AffiliateLink: row.AffiliateLink,
		Retailer:      retailer,
	}
}
