package types

// SearchRequest is the request body for submitting a search term.
type SearchRequest struct {
	Query string `json:"query"`
}

// SetLanguageRequest is the request body for switching the UI language.
type SetLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

// SetFilterRequest is the request body for switching the list filter.
type SetFilterRequest struct {
	Filter string `json:"filter" binding:"required,oneof=all favorites"`
}

// StateResponse is the controller snapshot returned to clients.
type StateResponse struct {
	Language  string   `json:"language"`
	Recipes   []Recipe `json:"recipes"`
	Selected  *Recipe  `json:"selected,omitempty"`
	Loading   bool     `json:"loading"`
	Error     string   `json:"error,omitempty"`
	Filter    string   `json:"filter"`
	Favorites []string `json:"favorites"`
}

// ShareResponse carries the formatted share text for a recipe.
type ShareResponse struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// ScaleResponse carries ingredients adjusted to a requested portion count.
type ScaleResponse struct {
	Name        string       `json:"name"`
	Servings    int          `json:"servings"`
	Portions    int          `json:"portions"`
	Ingredients []Ingredient `json:"ingredients"`
}

// RegenerateImageResponse is returned after an on-demand image regeneration.
type RegenerateImageResponse struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}
