package types

// Interaction actions recorded against the event log.
const (
	ActionClicked   = "clicked"
	ActionFavorited = "favorited"
	ActionViewed    = "viewed"
	ActionSearched  = "searched"
)

// InteractionEvent is one row of the append-only interaction log.
// ProductID is empty for actions without a product (e.g. "searched").
// Recording the same event twice produces two independent rows.
type InteractionEvent struct {
	UserID    string         `json:"user_id"`
	ProductID string         `json:"product_id,omitempty"`
	Action    string         `json:"action"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func IsKnownAction(action string) bool {
	switch action {
	case ActionClicked, ActionFavorited, ActionViewed, ActionSearched:
		return true
	default:
		return false
	}
}
