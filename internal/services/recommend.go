package services

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/wearly/shopagent-backend/internal/logger"
	"github.com/wearly/shopagent-backend/internal/repos"
	"github.com/wearly/shopagent-backend/internal/types"
)

const (
	recommendClickWindow = 20

	reasonSimilar = "Similar to what you viewed"
	reasonStyle   = "Matches your style"

	noRecommendationsMessage = "Browse and click products to get personalized recommendations"
)

// RecommendationService derives product recommendations from click
// history (shared brand/style/category with previously clicked items),
// falling back to a preference-only query when there is no history.
type RecommendationService interface {
	Recommend(ctx context.Context, userID string, limit int, categoryFilter string) types.RecommendationsResponse
}

type recommendationService struct {
	products repos.ProductRepo
	profile  ProfileService
	log      *logger.Logger
}

func NewRecommendationService(products repos.ProductRepo, profile ProfileService, baseLog *logger.Logger) RecommendationService {
	return &recommendationService{
		products: products,
		profile:  profile,
		log:      baseLog.With("service", "RecommendationService"),
	}
}

func (s *recommendationService) Recommend(ctx context.Context, userID string, limit int, categoryFilter string) types.RecommendationsResponse {
	resp := types.RecommendationsResponse{
		UserID:          userID,
		Recommendations: []types.Product{},
		Source:          types.SourceNone,
		CategoryFilter:  categoryFilter,
	}

	prefs := s.profile.GetPreferences(ctx, userID)
	clicks := s.profile.RecentClicks(ctx, userID, recommendClickWindow)
	seedIDs := catalogIDs(clicks)

	if len(seedIDs) > 0 {
		products := s.similarTo(ctx, seedIDs, prefs, limit, categoryFilter)
		if len(products) > 0 {
			resp.Recommendations = products
			resp.TotalRecommendations = len(products)
			resp.Source = types.SourceClickBased
			resp.BasedOnClicks = len(seedIDs)
			return resp
		}
	}

	if prefs != nil {
		products := s.styleBased(ctx, prefs, limit, categoryFilter)
		if len(products) > 0 {
			resp.Recommendations = products
			resp.TotalRecommendations = len(products)
			resp.Source = types.SourceStyleBased
			return resp
		}
	}

	resp.Message = noRecommendationsMessage
	return resp
}

// similarTo queries the catalog for non-clicked rows sharing a brand,
// style or category with the seed rows.
func (s *recommendationService) similarTo(ctx context.Context, seedIDs []int64, prefs *types.UserPreferences, limit int, categoryFilter string) []types.Product {
	if s.products == nil {
		return nil
	}
	seeds, err := s.products.GetByIDs(ctx, seedIDs)
	if err != nil {
		s.log.Warn("Failed to load clicked products, degrading to empty recommendations", "error", err)
		return nil
	}
	if len(seeds) == 0 {
		return nil
	}

	brands, styles, categories := seedAttributes(seeds)
	attr, ok := attributeFilter(brands, styles, categories)
	if !ok {
		return nil
	}

	filters := []repos.Filter{
		{Name: "not_clicked", Clause: "id NOT IN ?", Args: []any{seedIDs}},
		attr,
	}
	if categoryFilter != "" {
		filters = append(filters, repos.Filter{
			Name:   "category",
			Clause: "LOWER(category) = ?",
			Args:   []any{strings.ToLower(categoryFilter)},
		})
	}
	if prefs != nil {
		if f, ok := brandFilter(prefs.FavoriteBrands); ok {
			filters = append(filters, f)
		}
	}

	rows, err := s.products.Search(ctx, filters, limit)
	if err != nil {
		s.log.Warn("Similarity query failed, degrading to empty recommendations", "error", err)
		return nil
	}
	return withReason(rows, reasonSimilar)
}

// styleBased returns randomly ordered catalog rows matching the user's
// stored brand/style preferences.
func (s *recommendationService) styleBased(ctx context.Context, prefs *types.UserPreferences, limit int, categoryFilter string) []types.Product {
	if s.products == nil {
		return nil
	}
	var filters []repos.Filter
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
	if len(filters) == 0 {
		return nil
	}
	if categoryFilter != "" {
		filters = append(filters, repos.Filter{
			Name:   "category",
			Clause: "LOWER(category) = ?",
			Args:   []any{strings.ToLower(categoryFilter)},
		})
	}
	rows, err := s.products.SearchRandom(ctx, filters, limit)
	if err != nil {
		s.log.Warn("Style-based query failed, degrading to empty recommendations", "error", err)
		return nil
	}
	return withReason(rows, reasonStyle)
}

// catalogIDs keeps the tokens that are catalog-native integer ids,
// dropping web-fallback tokens and anything else unparseable.
func catalogIDs(tokens []string) []int64 {
	seen := map[int64]bool{}
	out := make([]int64, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, types.WebProductIDPrefix) {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
		if err != nil {
			continue
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// seedAttributes derives the union sets of quote-stripped lowercased
// brand, style and category values across the seed rows.
func seedAttributes(seeds []repos.ProductRow) (brands, styles, categories []string) {
	brandSet := map[string]bool{}
	styleSet := map[string]bool{}
	categorySet := map[string]bool{}
	for _, seed := range seeds {
		if b := strings.ToLower(strings.TrimSpace(stripBrandQuotes(seed.Brand))); b != "" {
			brandSet[b] = true
		}
		if st := strings.ToLower(strings.TrimSpace(seed.Style)); st != "" {
			styleSet[st] = true
		}
		if c := strings.ToLower(strings.TrimSpace(seed.Category)); c != "" {
			categorySet[c] = true
		}
	}
	return sortedKeys(brandSet), sortedKeys(styleSet), sortedKeys(categorySet)
}

// attributeFilter builds the OR-composed shared-attribute predicate,
// including only the memberships that are non-empty.
func attributeFilter(brands, styles, categories []string) (repos.Filter, bool) {
	var clauses []string
	var args []any
	if len(brands) > 0 {
		clauses = append(clauses, `LOWER(REPLACE(brand, '"', '')) IN ?`)
		args = append(args, brands)
	}
	if len(styles) > 0 {
		clauses = append(clauses, "LOWER(style) IN ?")
		args = append(args, styles)
	}
	if len(categories) > 0 {
		clauses = append(clauses, "LOWER(category) IN ?")
		args = append(args, categories)
	}
	if len(clauses) == 0 {
		return repos.Filter{}, false
	}
	return repos.Filter{
		Name:   "shared_attributes",
		Clause: "(" + strings.Join(clauses, " OR ") + ")",
		Args:   args,
	}, true
}

func withReason(rows []repos.ProductRow, reason string) []types.Product {
	out := make([]types.Product, 0, len(rows))
	for _, row := range rows {
		p := productFromRow(row)
		p.Reason = reason
		out = append(out, p)
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
