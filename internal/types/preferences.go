package types

// UserPreferences is the stored profile used to personalize catalog
// queries. It is created and updated out-of-band; this backend only
// reads it. Fit preferences map a sub-category (e.g. "t_shirts") to the
// list of fit labels the user prefers for it.
type UserPreferences struct {
	UserID                string              `json:"user_id"`
	FavoriteBrands        []string            `json:"favorite_brands"`
	FavoriteStyles        []string            `json:"favorite_styles"`
	FitPreferencesTops    map[string][]string `json:"fit_preferences_tops"`
	FitPreferencesBottoms map[string][]string `json:"fit_preferences_bottoms"`
}
