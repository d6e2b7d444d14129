package services

import (
	"context"
	"errors"
	"strings"

	"github.com/wearly/shopagent-backend/internal/logger"
	"github.com/wearly/shopagent-backend/internal/types"
)

// ErrEmptyQuery is returned before any store or agent call when the
// trimmed query is empty.
var ErrEmptyQuery = errors.New("query cannot be empty")

const noResultsMessage = "No products found in database or web search. Try a different search."

// SearchService sequences the fallback chain: catalog search first,
// web-search fallback only when the catalog comes up empty.
type SearchService interface {
	Search(ctx context.Context, query, userID string) (*types.SearchResponse, error)
}

type searchService struct {
	catalog CatalogService
	web     WebSearchService
	profile ProfileService
	log     *logger.Logger
}

func NewSearchService(catalog CatalogService, web WebSearchService, profile ProfileService, baseLog *logger.Logger) SearchService {
	return &searchService{
		catalog: catalog,
		web:     web,
		profile: profile,
		log:     baseLog.With("service", "SearchService"),
	}
}

func (s *searchService) Search(ctx context.Context, query, userID string) (*types.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	var prefs *types.UserPreferences
	personalized := false
	if userID != "" && s.profile.Available() {
		prefs = s.profile.GetPreferences(ctx, userID)
		personalized = true
	}

	products := s.catalog.Search(ctx, query, prefs)
	if len(products) > 0 {
		s.recordSearch(ctx, userID, query)
		return &types.SearchResponse{
			Query:        query,
			TotalResults: len(products),
			Products:     products,
			Source:       types.SourceDatabase,
			Personalized: personalized,
		}, nil
	}

	s.log.Info("No catalog results, falling back to web search", "query", query)
	webProducts := s.web.Search(ctx, query)
	if len(webProducts) == 0 {
		return &types.SearchResponse{
			Query:        query,
			TotalResults: 0,
			Products:     []types.Product{},
			Source:       types.SourceNone,
			Personalized: false,
			Message:      noResultsMessage,
		}, nil
	}

	s.recordSearch(ctx, userID, query)
	return &types.SearchResponse{
		Query:        query,
		TotalResults: len(webProducts),
		Products:     webProducts,
		Source:       types.SourceWebSearch,
		Personalized: false,
	}, nil
}

// recordSearch best-effort appends a "searched" event so later
// recommendation passes can see what the user looked for.
func (s *searchService) recordSearch(ctx context.Context, userID, query string) {
	if userID == "" || !s.profile.Available() {
		return
	}
	s.profile.RecordInteraction(ctx, types.InteractionEvent{
		UserID:   userID,
		Action:   types.ActionSearched,
		Metadata: map[string]any{"query": query},
	})
}
