// Package model defines the wire records exchanged with the review backend and the Jikan metadata service.
//
// Field names at the wire boundary are fixed by the deployed services, including their
// inconsistent casing, and are mapped per field. Optional fields are pointers: nil means
// the value was absent, and nil fields are omitted when encoding.
package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// User is an account of the review backend.
type User struct {
	ID        int        `json:"id_usuario" jsonschema:"description=Numeric user id."`
	Username  string     `json:"usuario"`
	Email     string     `json:"email"`
	Photo     *string    `json:"foto_perfil,omitempty" jsonschema:"description=Profile photo reference."`
	CreatedAt *string    `json:"data_criacao,omitempty"`
	Stats     *UserStats `json:"estatisticas,omitempty"`
}

// UserStats is the statistics block embedded in a User.
type UserStats struct {
	TotalReviews   int     `json:"total_reviews"`
	TotalWatched   int     `json:"total_assistidos"`
	TotalWatchlist int     `json:"total_watchlist"`
	AverageRating  Decimal `json:"media_notas" jsonschema:"description=Average rating formatted as decimal text."`
}

// UnmarshalJSON accepts ids sent as numbers or numeric strings.
func (u *User) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID        lenientInt `json:"id_usuario"`
		Username  string     `json:"usuario"`
		Email     string     `json:"email"`
		Photo     *string    `json:"foto_perfil"`
		CreatedAt *string    `json:"data_criacao"`
		Stats     *UserStats `json:"estatisticas"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*u = User{
		ID:        int(wire.ID),
		Username:  wire.Username,
		Email:     wire.Email,
		Photo:     wire.Photo,
		CreatedAt: wire.CreatedAt,
		Stats:     wire.Stats,
	}
	return nil
}

// UnmarshalJSON accepts counts sent as numbers or numeric strings.
func (s *UserStats) UnmarshalJSON(data []byte) error {
	var wire struct {
		TotalReviews   lenientInt `json:"total_reviews"`
		TotalWatched   lenientInt `json:"total_assistidos"`
		TotalWatchlist lenientInt `json:"total_watchlist"`
		AverageRating  Decimal    `json:"media_notas"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*s = UserStats{
		TotalReviews:   int(wire.TotalReviews),
		TotalWatched:   int(wire.TotalWatched),
		TotalWatchlist: int(wire.TotalWatchlist),
		AverageRating:  wire.AverageRating,
	}
	return nil
}

// Decimal is a number the backend formats as text, such as "4.50".
// Bare JSON numbers are accepted and kept in their textual form.
type Decimal string

// UnmarshalJSON reads a quoted or bare number and keeps its text.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	s, ok := unquoteNumber(b)
	if !ok {
		*d = ""
		return nil
	}
	*d = Decimal(s)
	return nil
}

// Float parses the decimal text; an empty value is 0.
func (d Decimal) Float() (float64, error) {
	s := strings.TrimSpace(string(d))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// LoginRequest is the body of POST auth/login.php.
type LoginRequest struct {
	Username string `json:"usuario"`
	Password string `json:"senha"`
}

// RegisterRequest is the body of POST auth/register.php.
type RegisterRequest struct {
	Username     string `json:"usuario"`
	Email        string `json:"email"`
	Password     string `json:"senha"`
	Confirmation string `json:"confirmar_senha"`
}
