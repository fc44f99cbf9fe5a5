package dto

type FavoriteToggleRequest struct {
	Name string `json:"name"`
}

// FavoritesResponse lists favorite product names
type FavoritesResponse struct {
	Names []string `json:"names"`
	Count int      `json:"count"`
}

type FavoriteToggleResponse struct {
	Name     string `json:"name"`
	Favorite bool   `json:"favorite"`
}
