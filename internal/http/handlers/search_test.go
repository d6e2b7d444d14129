package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wearly/shopagent-backend/internal/services"
	"github.com/wearly/shopagent-backend/internal/types"
)

type fakeSearchService struct {
	resp  *types.SearchResponse
	err   error
	calls int
}

func (f *fakeSearchService) Search(ctx context.Context, query, userID string) (*types.SearchResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func searchRouter(svc services.SearchService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/search", NewSearchHandler(svc).Search)
	return r
}

func TestSearchHandlerEmptyQuery(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "empty_string", body: `{"query":""}`},
		{name: "whitespace", body: `{"query":"   "}`},
		{name: "missing_field", body: `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeSearchService{}
			r := searchRouter(svc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if svc.calls != 0 {
				t.Fatal("empty query must not reach the search service")
			}
		})
	}
}

func TestSearchHandlerInvalidJSON(t *testing.T) {
	svc := &fakeSearchService{}
	r := searchRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if svc.calls != 0 {
		t.Fatal("invalid body must not reach the search service")
	}
}

func TestSearchHandlerSuccess(t *testing.T) {
	svc := &fakeSearchService{resp: &types.SearchResponse{
		Query:        "jean",
		TotalResults: 1,
		Products:     []types.Product{{ID: "1", Name: "511 Slim"}},
		Source:       types.SourceDatabase,
	}}
	r := searchRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"jean"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got types.SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Source != types.SourceDatabase || got.TotalResults != 1 {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestSearchHandlerInternalError(t *testing.T) {
	svc := &fakeSearchService{err: context.DeadlineExceeded}
	r := searchRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"query":"jean"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	// The generic message must not leak the underlying error.
	if strings.Contains(w.Body.String(), "deadline") {
		t.Fatalf("internal error leaked: %s", w.Body.String())
	}
}
