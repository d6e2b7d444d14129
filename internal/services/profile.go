package services

import (
	"context"
	"strings"

	"github.com/wearly/shopagent-backend/internal/logger"
	"github.com/wearly/shopagent-backend/internal/platform/prefstore"
	"github.com/wearly/shopagent-backend/internal/types"
)

// ProfileService adapts the external preference/interaction store.
// A missing store, missing user id or missing row are all non-error
// "no data" outcomes; nothing here raises to the caller.
type ProfileService interface {
	// Available reports whether a preference store is configured.
	Available() bool

	// GetPreferences returns the stored profile, or nil when unavailable.
	GetPreferences(ctx context.Context, userID string) *types.UserPreferences

	// RecentClicks returns product-id tokens for the user's most recent
	// "clicked" events, most recent first.
	RecentClicks(ctx context.Context, userID string, limit int) []string

	// RecordInteraction appends one event to the interaction log and
	// reports whether the write succeeded.
	RecordInteraction(ctx context.Context, event types.InteractionEvent) bool
}

type profileService struct {
	store prefstore.Client
	log   *logger.Logger
}

// NewProfileService wraps the given store client; store may be nil when
// the preference service is not configured, in which case every read
// returns "no data" and every write reports failure.
func NewProfileService(store prefstore.Client, baseLog *logger.Logger) ProfileService {
	return &profileService{
		store: store,
		log:   baseLog.With("service", "ProfileService"),
	}
}

func (s *profileService) Available() bool {
	return s.store != nil
}

func (s *profileService) GetPreferences(ctx context.Context, userID string) *types.UserPreferences {
	if s.store == nil || strings.TrimSpace(userID) == "" {
		return nil
	}
	prefs, err := s.store.GetUserProfile(ctx, userID)
	if err != nil {
		s.log.Warn("Failed to fetch user preferences", "user_id", userID, "error", err)
		return nil
	}
	if prefs == nil {
		s.log.Debug("No stored preferences for user", "user_id", userID)
		return nil
	}
	return prefs
}

func (s *profileService) RecentClicks(ctx context.Context, userID string, limit int) []string {
	if s.store == nil || strings.TrimSpace(userID) == "" {
		return nil
	}
	rows, err := s.store.ListInteractions(ctx, userID, types.ActionClicked, limit)
	if err != nil {
		s.log.Warn("Failed to fetch click history", "user_id", userID, "error", err)
		return nil
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.ProductID != "" {
			ids = append(ids, row.ProductID)
		}
	}
	return ids
}

func (s *profileService) RecordInteraction(ctx context.Context, event types.InteractionEvent) bool {
	if s.store == nil {
		s.log.Debug("Preference store not configured, dropping interaction", "action", event.Action)
		return false
	}
	if !types.IsKnownAction(event.Action) {
		s.log.Debug("Recording non-standard action", "action", event.Action)
	}
	if err := s.store.InsertInteraction(ctx, event); err != nil {
		s.log.Warn("Failed to record interaction", "user_id", event.UserID, "action", event.Action, "error", err)
		return false
	}
	s.log.Info("Interaction recorded", "user_id", event.UserID, "action", event.Action, "product_id", event.ProductID)
	return true
}
