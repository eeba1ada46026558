package catalog

import (
	"context"
	"strings"

	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/outcome"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

func normalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// distance compares against both titles and keeps the better one.
func distance(name string, anime model.Anime) int {
	d := levenshtein.Distance(name, normalizedName(anime.Title))
	if anime.TitleEnglish != nil {
		if e := levenshtein.Distance(name, normalizedName(*anime.TitleEnglish)); e < d {
			d = e
		}
	}
	return d
}

// Closest picks the anime whose title is nearest to name.
func Closest(name string, animes []model.Anime) (model.Anime, bool) {
	if len(animes) == 0 {
		return model.Anime{}, false
	}

	name = normalizedName(name)
	return lo.MinBy(animes, func(a, b model.Anime) bool {
		return distance(name, a) < distance(name, b)
	}), true
}

// FindClosest searches by name and picks the nearest title. No result is a decline.
func FindClosest(ctx context.Context, searcher AnimeSearcher, name string) outcome.Outcome[model.Anime] {
	o := searcher.SearchAnimes(ctx, name, 1, 0)

	page, ok := o.Get()
	if !ok {
		return outcome.Map(o, func(model.AnimePage) model.Anime { return model.Anime{} })
	}

	closest, found := Closest(name, page.Data)
	if !found {
		return outcome.Declined[model.Anime]("no anime found for "+name, nil)
	}
	return outcome.Ok(closest)
}
