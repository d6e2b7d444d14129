package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wearly/shopagent-backend/internal/http/response"
	"github.com/wearly/shopagent-backend/internal/services"
	"github.com/wearly/shopagent-backend/internal/types"
)

var errMissingTrackFields = errors.New("user_id and action are required")

type TrackHandler struct {
	profile services.ProfileService
}

func NewTrackHandler(profile services.ProfileService) *TrackHandler {
	return &TrackHandler{profile: profile}
}

type trackRequest struct {
	UserID    string         `json:"user_id"`
	ProductID string         `json:"product_id"`
	Action    string         `json:"action"`
	Metadata  map[string]any `json:"metadata"`
}

func (h *TrackHandler) Track(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Action) == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_fields", errMissingTrackFields)
		return
	}

	if !h.profile.Available() {
		response.RespondOK(c, types.TrackResponse{Success: false, Message: "Tracking not available"})
		return
	}

	ok := h.profile.RecordInteraction(c.Request.Context(), types.InteractionEvent{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Action:    req.Action,
		Metadata:  req.Metadata,
	})
	response.RespondOK(c, types.TrackResponse{Success: ok})
}
