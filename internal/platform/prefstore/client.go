package prefstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wearly/shopagent-backend/internal/logger"
	"github.com/wearly/shopagent-backend/internal/types"
)

// Client talks to the external preference service (a PostgREST-style
// endpoint). Reads go through the restricted anon key, which is subject
// to row-level access policy; writes use the elevated service-role key
// so the append-only interaction log accepts rows regardless of who is
// "logged in".
type Client interface {
	GetUserProfile(ctx context.Context, userID string) (*types.UserPreferences, error)
	ListInteractions(ctx context.Context, userID, action string, limit int) ([]InteractionRow, error)
	InsertInteraction(ctx context.Context, event types.InteractionEvent) error
}

// InteractionRow is the stored shape of one interaction log row.
type InteractionRow struct {
	UserID    string         `json:"user_id"`
	ProductID string         `json:"product_id,omitempty"`
	Action    string         `json:"action"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
}

type client struct {
	log        *logger.Logger
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	baseURL := strings.TrimSpace(os.Getenv("SUPABASE_URL"))
	if baseURL == "" {
		return nil, fmt.Errorf("missing SUPABASE_URL")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	anonKey := strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY"))
	if anonKey == "" {
		return nil, fmt.Errorf("missing SUPABASE_ANON_KEY")
	}
	serviceKey := strings.TrimSpace(os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))
	if serviceKey == "" {
		// Without the elevated key, writes fall back to the anon tier and
		// may be rejected by row policy.
		serviceKey = anonKey
	}

	timeoutSec := 15
	if v := strings.TrimSpace(os.Getenv("SUPABASE_TIMEOUT_SECONDS")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &client{
		log:        log.With("service", "PrefStoreClient"),
		baseURL:    baseURL,
		anonKey:    anonKey,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}, nil
}

func (c *client) GetUserProfile(ctx context.Context, userID string) (*types.UserPreferences, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, nil
	}
	q := url.Values{}
	q.Set("user_id", "eq."+userID)
	q.Set("select", "*")
	q.Set("limit", "1")

	var rows []types.UserPreferences
	if err := c.get(ctx, "/rest/v1/user_profiles", q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (c *client) ListInteractions(ctx context.Context, userID, action string, limit int) ([]InteractionRow, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, nil
	}
	q := url.Values{}
	q.Set("user_id", "eq."+userID)
	if action != "" {
		q.Set("action", "eq."+action)
	}
	q.Set("order", "created_at.desc")
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var rows []InteractionRow
	if err := c.get(ctx, "/rest/v1/user_interactions", q, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *client) InsertInteraction(ctx context.Context, event types.InteractionEvent) error {
	row := InteractionRow{
		UserID:    event.UserID,
		ProductID: event.ProductID,
		Action:    event.Action,
		Metadata:  event.Metadata,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(row); err != nil {
		return fmt.Errorf("encode interaction: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/v1/user_interactions", &buf)
	if err != nil {
		return err
	}
	c.setAuth(req, c.serviceKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("prefstore http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}

func (c *client) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	c.setAuth(req, c.anonKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("prefstore http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *client) setAuth(req *http.Request, key string) {
	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)
}
