package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/outcome"
)

func userQuery(userID int) url.Values {
	return url.Values{"id_usuario": {itoa(userID)}}
}

func userAnimeQuery(userID, animeID int) url.Values {
	q := userQuery(userID)
	q.Set("id_anime", itoa(animeID))
	return q
}

// ListFavorites returns the user's favorites.
func (c *Client) ListFavorites(ctx context.Context, userID int) outcome.Outcome[[]model.Favorite] {
	return send[[]model.Favorite](ctx, c, call{
		op:      "list favorites",
		method:  http.MethodGet,
		path:    "favorites/list.php",
		query:   userQuery(userID),
		payload: payloadList,
	})
}

// AddFavorite marks an anime as a favorite of the user.
func (c *Client) AddFavorite(ctx context.Context, userID, animeID int) outcome.Outcome[model.Favorite] {
	return send[model.Favorite](ctx, c, call{
		op:     "add favorite",
		method: http.MethodPost,
		path:   "favorites/add.php",
		body:   model.FavoriteRequest{UserID: userID, AnimeID: animeID},
	})
}

// RemoveFavorite drops an anime from the user's favorites.
func (c *Client) RemoveFavorite(ctx context.Context, userID, animeID int) outcome.Outcome[struct{}] {
	return send[struct{}](ctx, c, call{
		op:      "remove favorite",
		method:  http.MethodDelete,
		path:    "favorites/remove.php",
		query:   userAnimeQuery(userID, animeID),
		payload: payloadNone,
	})
}

// ListWatchlist returns the user's watchlist.
func (c *Client) ListWatchlist(ctx context.Context, userID int) outcome.Outcome[[]model.WatchedAnime] {
	return send[[]model.WatchedAnime](ctx, c, call{
		op:      "list watchlist",
		method:  http.MethodGet,
		path:    "watchlist/list.php",
		query:   userQuery(userID),
		payload: payloadList,
	})
}

// AddToWatchlist adds an anime with the given status; an empty status sends model.DefaultWatchStatus.
func (c *Client) AddToWatchlist(ctx context.Context, userID, animeID int, status string) outcome.Outcome[model.WatchedAnime] {
	if status == "" {
		status = model.DefaultWatchStatus
	}

	return send[model.WatchedAnime](ctx, c, call{
		op:     "add to watchlist",
		method: http.MethodPost,
		path:   "watchlist/add.php",
		body:   model.WatchlistRequest{UserID: userID, AnimeID: animeID, Status: status},
	})
}

// RemoveFromWatchlist drops an anime from the user's watchlist.
func (c *Client) RemoveFromWatchlist(ctx context.Context, userID, animeID int) outcome.Outcome[struct{}] {
	return send[struct{}](ctx, c, call{
		op:      "remove from watchlist",
		method:  http.MethodDelete,
		path:    "watchlist/remove.php",
		query:   userAnimeQuery(userID, animeID),
		payload: payloadNone,
	})
}
