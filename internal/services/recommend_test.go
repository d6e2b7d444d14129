package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/wearly/shopagent-backend/internal/repos"
	"github.com/wearly/shopagent-backend/internal/types"
)

type fakeProductRepo struct {
	rows        []repos.ProductRow
	byID        map[int64]repos.ProductRow
	err         error
	lastFilters []repos.Filter
	randomCalls int
}

func (f *fakeProductRepo) Search(ctx context.Context, filters []repos.Filter, limit int) ([]repos.ProductRow, error) {
	f.lastFilters = filters
	if f.err != nil {
		return nil, f.err
	}
	if len(f.rows) > limit {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

func (f *fakeProductRepo) SearchRandom(ctx context.Context, filters []repos.Filter, limit int) ([]repos.ProductRow, error) {
	f.randomCalls++
	return f.Search(ctx, filters, limit)
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []int64) ([]repos.ProductRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []repos.ProductRow
	for _, id := range ids {
		if row, ok := f.byID[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func TestCatalogIDs(t *testing.T) {
	cases := []struct {
		name   string
		tokens []string
		want   []int64
	}{
		{name: "integers_pass", tokens: []string{"1", "42"}, want: []int64{1, 42}},
		{name: "web_tokens_dropped", tokens: []string{"web_1", "7", "web_2"}, want: []int64{7}},
		{name: "garbage_dropped", tokens: []string{"abc", "", "3"}, want: []int64{3}},
		{name: "duplicates_collapsed", tokens: []string{"5", "5", "5"}, want: []int64{5}},
		{name: "all_web", tokens: []string{"web_1", "web_2"}, want: []int64{}},
		{name: "empty", tokens: nil, want: []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := catalogIDs(tc.tokens)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("catalogIDs(%v) = %v, want %v", tc.tokens, got, tc.want)
			}
		})
	}
}

func TestSeedAttributes(t *testing.T) {
	seeds := []repos.ProductRow{
		{Brand: `"Levi's"`, Style: "Casual", Category: "Jeans"},
		{Brand: "levi's", Style: "", Category: "jackets"},
		{Brand: "Nike", Style: "athleisure", Category: "Jeans"},
	}
	brands, styles, categories := seedAttributes(seeds)
	if want := []string{"levi's", "nike"}; !reflect.DeepEqual(brands, want) {
		t.Fatalf("brands = %v, want %v", brands, want)
	}
	if want := []string{"athleisure", "casual"}; !reflect.DeepEqual(styles, want) {
		t.Fatalf("styles = %v, want %v", styles, want)
	}
	if want := []string{"jackets", "jeans"}; !reflect.DeepEqual(categories, want) {
		t.Fatalf("categories = %v, want %v", categories, want)
	}
}

func TestAttributeFilterSkipsEmptySets(t *testing.T) {
	f, ok := attributeFilter(nil, []string{"casual"}, nil)
	if !ok {
		t.Fatal("expected a filter")
	}
	if f.Clause != "(LOWER(style) IN ?)" {
		t.Fatalf("clause = %q", f.Clause)
	}
	if len(f.Args) != 1 {
		t.Fatalf("args = %v", f.Args)
	}

	if _, ok := attributeFilter(nil, nil, nil); ok {
		t.Fatal("all-empty attribute sets must not produce a filter")
	}
}

func TestRecommendClickBased(t *testing.T) {
	repo := &fakeProductRepo{
		byID: map[int64]repos.ProductRow{
			1: {ID: 1, Brand: "Levi's", Style: "Casual", Category: "Jeans"},
		},
		rows: []repos.ProductRow{
			{ID: 2, Name: "511 Slim", Brand: "Levi's", Category: "Jeans"},
			{ID: 3, Name: "Trucker Jacket", Brand: "Levi's", Category: "Jackets"},
		},
	}
	profile := &fakeProfile{available: true, clicks: []string{"1", "web_2"}}
	svc := NewRecommendationService(repo, profile, testLogger(t))

	resp := svc.Recommend(context.Background(), "user-1", 10, "")
	if resp.Source != types.SourceClickBased {
		t.Fatalf("source = %q, want click_based", resp.Source)
	}
	if resp.TotalRecommendations != 2 {
		t.Fatalf("total = %d, want 2", resp.TotalRecommendations)
	}
	if resp.BasedOnClicks != 1 {
		t.Fatalf("based_on_clicks = %d, want 1 (web token dropped)", resp.BasedOnClicks)
	}
	for _, p := range resp.Recommendations {
		if p.Reason != reasonSimilar {
			t.Fatalf("reason = %q, want %q", p.Reason, reasonSimilar)
		}
	}
}

func TestRecommendStyleBasedFallback(t *testing.T) {
	repo := &fakeProductRepo{
		rows: []repos.ProductRow{{ID: 9, Name: "Air Max", Brand: "Nike"}},
	}
	profile := &fakeProfile{
		available: true,
		prefs:     &types.UserPreferences{FavoriteBrands: []string{"Nike"}},
	}
	svc := NewRecommendationService(repo, profile, testLogger(t))

	resp := svc.Recommend(context.Background(), "user-1", 10, "")
	if resp.Source != types.SourceStyleBased {
		t.Fatalf("source = %q, want style_based", resp.Source)
	}
	if repo.randomCalls != 1 {
		t.Fatal("style-based recommendations should use randomized ordering")
	}
	if resp.Recommendations[0].Reason != reasonStyle {
		t.Fatalf("reason = %q, want %q", resp.Recommendations[0].Reason, reasonStyle)
	}
	if resp.BasedOnClicks != 0 {
		t.Fatalf("based_on_clicks = %d, want 0", resp.BasedOnClicks)
	}
}

func TestRecommendNothingToWorkWith(t *testing.T) {
	svc := NewRecommendationService(&fakeProductRepo{}, &fakeProfile{}, testLogger(t))

	resp := svc.Recommend(context.Background(), "user-1", 10, "")
	if resp.Source != types.SourceNone {
		t.Fatalf("source = %q, want none", resp.Source)
	}
	if resp.TotalRecommendations != 0 || len(resp.Recommendations) != 0 {
		t.Fatalf("expected empty recommendations, got %d", resp.TotalRecommendations)
	}
	if resp.Message == "" {
		t.Fatal("empty recommendations should carry a browse hint")
	}
}

func TestRecommendCategoryFilterApplied(t *testing.T) {
	repo := &fakeProductRepo{
		byID: map[int64]repos.ProductRow{1: {ID: 1, Brand: "Levi's", Category: "Jeans"}},
		rows: []repos.ProductRow{{ID: 2, Brand: "Levi's", Category: "Jeans"}},
	}
	profile := &fakeProfile{available: true, clicks: []string{"1"}}
	svc := NewRecommendationService(repo, profile, testLogger(t))

	resp := svc.Recommend(context.Background(), "user-1", 10, "Jeans")
	if resp.CategoryFilter != "Jeans" {
		t.Fatalf("category_filter = %q", resp.CategoryFilter)
	}
	found := false
	for _, f := range repo.lastFilters {
		if f.Name == "category" {
			found = true
			if f.Args[0] != "jeans" {
				t.Fatalf("category arg = %v, want lowercased", f.Args[0])
			}
		}
	}
	if !found {
		t.Fatal("category filter was not applied to the query")
	}
}

func TestRecommendDegradesOnStoreError(t *testing.T) {
	repo := &fakeProductRepo{err: errors.New("connection refused")}
	profile := &fakeProfile{available: true, clicks: []string{"1"}}
	svc := NewRecommendationService(repo, profile, testLogger(t))

	resp := svc.Recommend(context.Background(), "user-1", 10, "")
	if resp.Source != types.SourceNone {
		t.Fatalf("source = %q, want none on store error", resp.Source)
	}
	if resp.TotalRecommendations != 0 {
		t.Fatalf("expected empty result on store error, got %d", resp.TotalRecommendations)
	}
}
