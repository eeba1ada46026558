package model

import "encoding/json"

// Review is a user's rating and text for an anime, as read from reviews/manage.php.
//
// AnimeID is the backend's own anime key. MalID bridges to Anime.MalID when present;
// without it the anime cannot be resolved from the review alone.
type Review struct {
	ID         int     `json:"ID_review"`
	UserID     int     `json:"ID_usuario"`
	AnimeID    int     `json:"ID_anime"`
	Rating     float64 `json:"Nota" jsonschema:"description=Rating; callers submit 0 to 5."`
	Text       string  `json:"Texto_review"`
	CreatedAt  string  `json:"Data_criacao"`
	UpdatedAt  *string `json:"Data_atualizacao,omitempty"`
	Username   *string `json:"Usuario,omitempty"`
	AnimeTitle *string `json:"Titulo_anime,omitempty"`
	MalID      *int    `json:"MAL_ID,omitempty"`
}

// UnmarshalJSON accepts ids and ratings sent as numbers or numeric strings.
func (r *Review) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID         lenientInt   `json:"ID_review"`
		UserID     lenientInt   `json:"ID_usuario"`
		AnimeID    lenientInt   `json:"ID_anime"`
		Rating     lenientFloat `json:"Nota"`
		Text       string       `json:"Texto_review"`
		CreatedAt  string       `json:"Data_criacao"`
		UpdatedAt  *string      `json:"Data_atualizacao"`
		Username   *string      `json:"Usuario"`
		AnimeTitle *string      `json:"Titulo_anime"`
		MalID      *lenientInt  `json:"MAL_ID"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*r = Review{
		ID:         int(wire.ID),
		UserID:     int(wire.UserID),
		AnimeID:    int(wire.AnimeID),
		Rating:     float64(wire.Rating),
		Text:       wire.Text,
		CreatedAt:  wire.CreatedAt,
		UpdatedAt:  wire.UpdatedAt,
		Username:   wire.Username,
		AnimeTitle: wire.AnimeTitle,
		MalID:      intPtr(wire.MalID),
	}
	return nil
}

// CreateReviewRequest is the body of POST reviews/manage.php.
// Rating is sent as given; the backend may reject values outside 0..5.
type CreateReviewRequest struct {
	UserID    int     `json:"id_usuario"`
	MalID     int     `json:"mal_id"`
	Rating    float64 `json:"nota"`
	Text      string  `json:"texto_review"`
	Title     *string `json:"titulo_review,omitempty"`
	WatchedAt *string `json:"data_assistido,omitempty"`
}

// UpdateReviewRequest is the body of PUT reviews/manage.php. Nil fields are left unchanged.
type UpdateReviewRequest struct {
	ReviewID  int      `json:"id_review"`
	UserID    int      `json:"id_usuario"`
	Rating    *float64 `json:"nota,omitempty"`
	Text      *string  `json:"texto_review,omitempty"`
	Title     *string  `json:"titulo_review,omitempty"`
	WatchedAt *string  `json:"data_assistido,omitempty"`
}

// DeleteReviewRequest is the body of DELETE reviews/manage.php.
type DeleteReviewRequest struct {
	ReviewID int `json:"id_review"`
	UserID   int `json:"id_usuario"`
}
