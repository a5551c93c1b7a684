package models

// Recipe is a suggested dish. Saved recipes are a premium feature; free users
// only ever see the transient suggestion.
type Recipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}
