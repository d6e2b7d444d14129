package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wearly/shopagent-backend/internal/http/response"
	"github.com/wearly/shopagent-backend/internal/services"
)

const (
	defaultRecommendationLimit = 10
	maxRecommendationLimit     = 50
)

type RecommendHandler struct {
	recommendations services.RecommendationService
}

func NewRecommendHandler(recommendations services.RecommendationService) *RecommendHandler {
	return &RecommendHandler{recommendations: recommendations}
}

func (h *RecommendHandler) Recommendations(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_user_id", errors.New("user_id is required"))
		return
	}

	limit := defaultRecommendationLimit
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxRecommendationLimit {
		limit = maxRecommendationLimit
	}
	category := strings.TrimSpace(c.Query("category"))

	resp := h.recommendations.Recommend(c.Request.Context(), userID, limit, category)
	response.RespondOK(c, resp)
}
