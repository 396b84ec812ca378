package favorites

type MyFavoritesQuery struct {
	Username string `query:"username" json:"username"`
}

type TogglePayload struct {
	Username string `json:"username"`
}

type ToggleResponse struct {
	Message    string `json:"message"`
	IsFavorite bool   `json:"isFavorite"`
}
