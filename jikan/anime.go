package jikan

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/animecritique/critique/log"
	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/outcome"
)

// GetAnimeByID fetches GET anime/{id}.
func (c *Client) GetAnimeByID(ctx context.Context, id int) outcome.Outcome[model.Anime] {
	if c.cache != nil {
		if anime, ok := c.cache.animes.Get(id).Get(); ok {
			return outcome.Ok(anime)
		}
	}

	o := get[model.AnimeByID](ctx, c, "get anime", "anime/"+strconv.Itoa(id), nil)
	if r, ok := o.Get(); ok && r.Data.MalID == 0 {
		return outcome.Failed[model.Anime]("get anime", ErrMissingData)
	}
	anime := outcome.Map(o, func(r model.AnimeByID) model.Anime { return r.Data })

	if v, ok := anime.Get(); ok && c.cache != nil {
		if err := c.cache.animes.Set(id, v); err != nil {
			log.Warnf("jikan cache: %s", err)
		}
	}

	return anime
}

// TopAnimes fetches GET top/anime. A limit of zero or less sends DefaultPageSize.
func (c *Client) TopAnimes(ctx context.Context, page, limit int) outcome.Outcome[model.AnimePage] {
	return c.page(ctx, "top animes", "top/anime", url.Values{}, page, limit)
}

// SearchAnimes fetches GET anime?q=.
func (c *Client) SearchAnimes(ctx context.Context, query string, page, limit int) outcome.Outcome[model.AnimePage] {
	return c.page(ctx, "search animes", "anime", url.Values{"q": {strings.TrimSpace(query)}}, page, limit)
}

func (c *Client) page(ctx context.Context, op, path string, q url.Values, page, limit int) outcome.Outcome[model.AnimePage] {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	cacheKey := fmt.Sprintf("%s?%s", path, q.Encode())
	if c.cache != nil {
		if p, ok := c.cache.pages.Get(cacheKey).Get(); ok {
			return outcome.Ok(p)
		}
	}

	o := get[model.AnimePage](ctx, c, op, path, q)
	if p, ok := o.Get(); ok {
		if p.Data == nil {
			p.Data = []model.Anime{}
			o = outcome.Ok(p)
		}
		if c.cache != nil {
			if err := c.cache.pages.Set(cacheKey, p); err != nil {
				log.Warnf("jikan cache: %s", err)
			}
		}
	}

	return o
}
