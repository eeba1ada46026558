// Package catalog combines the two backends the way the screens need them.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/animecritique/critique/backend"
	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/outcome"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

// AnimeSource looks anime up by MyAnimeList id. Satisfied by *jikan.Client.
type AnimeSource interface {
	GetAnimeByID(ctx context.Context, id int) outcome.Outcome[model.Anime]
}

// AnimeSearcher finds anime by title. Satisfied by *jikan.Client.
type AnimeSearcher interface {
	SearchAnimes(ctx context.Context, query string, page, limit int) outcome.Outcome[model.AnimePage]
}

// ReviewSource lists reviews. Satisfied by *backend.Client.
type ReviewSource interface {
	ListReviews(ctx context.Context, filter backend.ReviewFilter) outcome.Outcome[[]model.Review]
}

// Detail is an anime with its reviews. Each half keeps its own outcome.
type Detail struct {
	Anime   outcome.Outcome[model.Anime]
	Reviews outcome.Outcome[[]model.Review]
}

// LoadDetail fetches the anime and its reviews at the same time.
// Neither request waits for or cancels the other.
func LoadDetail(ctx context.Context, animes AnimeSource, reviews ReviewSource, malID int) Detail {
	var (
		detail Detail
		wg     sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		detail.Anime = animes.GetAnimeByID(ctx, malID)
	}()
	go func() {
		defer wg.Done()
		o := reviews.ListReviews(ctx, backend.ReviewFilter{AnimeID: &malID})
		detail.Reviews = outcome.Map(o, ByRating)
	}()
	wg.Wait()

	return detail
}

// Average is the mean review rating, absent when reviews did not load or there are none.
func (d Detail) Average() mo.Option[float64] {
	reviews, ok := d.Reviews.Get()
	if !ok {
		return mo.None[float64]()
	}
	return Average(reviews)
}

// Average is the mean rating of reviews; absent for an empty list.
func Average(reviews []model.Review) mo.Option[float64] {
	if len(reviews) == 0 {
		return mo.None[float64]()
	}

	sum := lo.SumBy(reviews, func(r model.Review) float64 { return r.Rating })
	return mo.Some(sum / float64(len(reviews)))
}

// ByRating returns a copy ordered from highest to lowest rating; ties keep their order.
func ByRating(reviews []model.Review) []model.Review {
	sorted := slices.Clone(reviews)
	slices.SortStableFunc(sorted, func(a, b model.Review) int {
		switch {
		case a.Rating > b.Rating:
			return -1
		case a.Rating < b.Rating:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// AnimeForReview resolves the anime a review is about. Reviews without MAL_ID cannot
// be resolved and yield None inside an ok outcome.
func AnimeForReview(ctx context.Context, animes AnimeSource, review model.Review) outcome.Outcome[mo.Option[model.Anime]] {
	if review.MalID == nil {
		return outcome.Ok(mo.None[model.Anime]())
	}

	return outcome.Map(animes.GetAnimeByID(ctx, *review.MalID), mo.Some[model.Anime])
}

// FindReview returns one review of the user. A review the user does not own is a decline.
func FindReview(ctx context.Context, reviews ReviewSource, userID, reviewID int) outcome.Outcome[model.Review] {
	o := reviews.ListReviews(ctx, backend.ReviewFilter{UserID: &userID})

	list, ok := o.Get()
	if !ok {
		return outcome.Map(o, func([]model.Review) model.Review { return model.Review{} })
	}

	found, ok := lo.Find(list, func(r model.Review) bool { return r.ID == reviewID })
	if !ok {
		return outcome.Declined[model.Review](fmt.Sprintf("review %d not found for user %d", reviewID, userID), nil)
	}
	return outcome.Ok(found)
}
