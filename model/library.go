package model

import "encoding/json"

// DefaultWatchStatus is the status the backend assigns to a watchlist entry when none is given.
const DefaultWatchStatus = "completo"

// Favorite links a user to an anime they marked as favorite.
type Favorite struct {
	ID        int    `json:"id_favorito"`
	UserID    int    `json:"id_usuario"`
	AnimeID   int    `json:"id_anime"`
	CreatedAt string `json:"data_criacao"`
}

// UnmarshalJSON accepts ids sent as numbers or numeric strings.
func (f *Favorite) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID        lenientInt `json:"id_favorito"`
		UserID    lenientInt `json:"id_usuario"`
		AnimeID   lenientInt `json:"id_anime"`
		CreatedAt string     `json:"data_criacao"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*f = Favorite{ID: int(wire.ID), UserID: int(wire.UserID), AnimeID: int(wire.AnimeID), CreatedAt: wire.CreatedAt}
	return nil
}

// WatchedAnime is a watchlist entry.
type WatchedAnime struct {
	ID        int    `json:"id_lista"`
	UserID    int    `json:"id_usuario"`
	AnimeID   int    `json:"id_anime"`
	Status    string `json:"status"`
	CreatedAt string `json:"data_criacao"`
}

// UnmarshalJSON accepts ids sent as numbers or numeric strings.
func (w *WatchedAnime) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID        lenientInt `json:"id_lista"`
		UserID    lenientInt `json:"id_usuario"`
		AnimeID   lenientInt `json:"id_anime"`
		Status    string     `json:"status"`
		CreatedAt string     `json:"data_criacao"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*w = WatchedAnime{
		ID:        int(wire.ID),
		UserID:    int(wire.UserID),
		AnimeID:   int(wire.AnimeID),
		Status:    wire.Status,
		CreatedAt: wire.CreatedAt,
	}
	return nil
}

// FavoriteRequest is the body of POST favorites/add.php.
type FavoriteRequest struct {
	UserID  int `json:"id_usuario"`
	AnimeID int `json:"id_anime"`
}

// WatchlistRequest is the body of POST watchlist/add.php.
type WatchlistRequest struct {
	UserID  int    `json:"id_usuario"`
	AnimeID int    `json:"id_anime"`
	Status  string `json:"status"`
}
