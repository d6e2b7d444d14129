package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wearly/shopagent-backend/internal/types"
)

type fakeProfileService struct {
	available bool
	writeOK   bool
	recorded  []types.InteractionEvent
	prefs     *types.UserPreferences
	clicks    []string
}

func (f *fakeProfileService) Available() bool { return f.available }

func (f *fakeProfileService) GetPreferences(ctx context.Context, userID string) *types.UserPreferences {
	return f.prefs
}

func (f *fakeProfileService) RecentClicks(ctx context.Context, userID string, limit int) []string {
	return f.clicks
}

func (f *fakeProfileService) RecordInteraction(ctx context.Context, event types.InteractionEvent) bool {
	f.recorded = append(f.recorded, event)
	return f.writeOK
}

func trackRouter(profile *fakeProfileService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/track", NewTrackHandler(profile).Track)
	return r
}

func postTrack(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/track", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestTrackHandlerMissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "no_user_id", body: `{"action":"clicked","product_id":"1"}`},
		{name: "no_action", body: `{"user_id":"u1","product_id":"1"}`},
		{name: "empty_values", body: `{"user_id":"","action":""}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := &fakeProfileService{available: true, writeOK: true}
			w := postTrack(t, trackRouter(profile), tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if len(profile.recorded) != 0 {
				t.Fatal("invalid request must not write to the log")
			}
		})
	}
}

func TestTrackHandlerSuccess(t *testing.T) {
	profile := &fakeProfileService{available: true, writeOK: true}
	w := postTrack(t, trackRouter(profile), `{"user_id":"u1","product_id":"42","action":"clicked"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp types.TrackResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("success = false, want true")
	}
	if len(profile.recorded) != 1 {
		t.Fatalf("recorded %d events, want 1", len(profile.recorded))
	}
	if profile.recorded[0].ProductID != "42" || profile.recorded[0].Action != "clicked" {
		t.Fatalf("unexpected event %+v", profile.recorded[0])
	}
}

func TestTrackHandlerProductIDOptional(t *testing.T) {
	profile := &fakeProfileService{available: true, writeOK: true}
	w := postTrack(t, trackRouter(profile), `{"user_id":"u1","action":"searched","metadata":{"query":"jeans"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(profile.recorded) != 1 {
		t.Fatalf("recorded %d events, want 1", len(profile.recorded))
	}
	if profile.recorded[0].Metadata["query"] != "jeans" {
		t.Fatalf("metadata = %v", profile.recorded[0].Metadata)
	}
}

func TestTrackHandlerAppendOnly(t *testing.T) {
	profile := &fakeProfileService{available: true, writeOK: true}
	r := trackRouter(profile)
	body := `{"user_id":"u1","product_id":"42","action":"clicked"}`

	postTrack(t, r, body)
	postTrack(t, r, body)

	// Identical events land as two independent rows.
	if len(profile.recorded) != 2 {
		t.Fatalf("recorded %d events, want 2", len(profile.recorded))
	}
}

func TestTrackHandlerStoreUnavailable(t *testing.T) {
	profile := &fakeProfileService{available: false}
	w := postTrack(t, trackRouter(profile), `{"user_id":"u1","product_id":"42","action":"clicked"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (degraded, not an error)", w.Code)
	}
	var resp types.TrackResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Fatal("success must be false without a store")
	}
	if len(profile.recorded) != 0 {
		t.Fatal("no write should be attempted without a store")
	}
}
