package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wearly/shopagent-backend/internal/http/response"
	"github.com/wearly/shopagent-backend/internal/services"
)

type SearchHandler struct {
	search services.SearchService
}

func NewSearchHandler(search services.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

type searchRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
}

func (h *SearchHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		response.RespondError(c, http.StatusBadRequest, "empty_query", services.ErrEmptyQuery)
		return
	}

	resp, err := h.search.Search(c.Request.Context(), req.Query, req.UserID)
	if err != nil {
		if errors.Is(err, services.ErrEmptyQuery) {
			response.RespondError(c, http.StatusBadRequest, "empty_query", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "search_failed", errors.New("search failed"))
		return
	}
	response.RespondOK(c, resp)
}
