package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/outcome"
)

// PopularAnimes lists the backend's popular anime.
func (c *Client) PopularAnimes(ctx context.Context, page int) outcome.Outcome[model.AnimePage] {
	return c.animePage(ctx, "popular animes", url.Values{"popular": {"true"}}, page)
}

// TopAnimes lists the backend's top-rated anime.
func (c *Client) TopAnimes(ctx context.Context, page int) outcome.Outcome[model.AnimePage] {
	return c.animePage(ctx, "top animes", url.Values{"top": {"true"}}, page)
}

// SearchAnimes searches the backend's anime by title.
func (c *Client) SearchAnimes(ctx context.Context, query string, page int) outcome.Outcome[model.AnimePage] {
	return c.animePage(ctx, "search animes", url.Values{"q": {strings.TrimSpace(query)}}, page)
}

func (c *Client) animePage(ctx context.Context, op string, q url.Values, page int) outcome.Outcome[model.AnimePage] {
	if page < 1 {
		page = 1
	}
	q.Set("page", itoa(page))

	animes, env := exchange[[]model.Anime](ctx, c, call{
		op:      op,
		method:  http.MethodGet,
		path:    "animes/search.php",
		query:   q,
		payload: payloadList,
	})

	data, ok := animes.Get()
	if !ok {
		return outcome.Map(animes, func([]model.Anime) model.AnimePage { return model.AnimePage{} })
	}

	return outcome.Ok(model.AnimePage{Data: data, Pagination: env.Pagination}).WithMessage(animes.Message())
}
