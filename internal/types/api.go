package types

// Search result sources.
const (
	SourceDatabase  = "database"
	SourceWebSearch = "web_search"
	SourceNone      = "none"

	SourceClickBased = "click_based"
	SourceStyleBased = "style_based"
)

type SearchResponse struct {
	Query        string    `json:"query"`
	TotalResults int       `json:"total_results"`
	Products     []Product `json:"products"`
	Source       string    `json:"source"`
	Personalized bool      `json:"personalized"`
	Message      string    `json:"message,omitempty"`
}

type RecommendationsResponse struct {
	UserID               string    `json:"user_id"`
	TotalRecommendations int       `json:"total_recommendations"`
	Recommendations      []Product `json:"recommendations"`
	Source               string    `json:"source"`
	BasedOnClicks        int       `json:"based_on_clicks,omitempty"`
	CategoryFilter       string    `json:"category_filter,omitempty"`
	Message              string    `json:"message,omitempty"`
}

type TrackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
