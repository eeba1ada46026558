package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/animecritique/critique/backend"
	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/outcome"
	. "github.com/smartystreets/goconvey/convey"
)

type animeFunc func(ctx context.Context, id int) outcome.Outcome[model.Anime]

func (f animeFunc) GetAnimeByID(ctx context.Context, id int) outcome.Outcome[model.Anime] {
	return f(ctx, id)
}

type reviewsFunc func(ctx context.Context, filter backend.ReviewFilter) outcome.Outcome[[]model.Review]

func (f reviewsFunc) ListReviews(ctx context.Context, filter backend.ReviewFilter) outcome.Outcome[[]model.Review] {
	return f(ctx, filter)
}

type searchFunc func(ctx context.Context, query string, page, limit int) outcome.Outcome[model.AnimePage]

func (f searchFunc) SearchAnimes(ctx context.Context, query string, page, limit int) outcome.Outcome[model.AnimePage] {
	return f(ctx, query, page, limit)
}

func review(id int, rating float64) model.Review {
	return model.Review{ID: id, UserID: 3, AnimeID: 42, Rating: rating, Text: "some words", CreatedAt: "2024-01-01"}
}

func TestLoadDetail(t *testing.T) {
	Convey("Given both backends answer", t, func() {
		animeStarted, reviewsStarted := make(chan struct{}), make(chan struct{})
		wait := func(other chan struct{}) bool {
			select {
			case <-other:
				return true
			case <-time.After(2 * time.Second):
				return false
			}
		}

		animes := animeFunc(func(ctx context.Context, id int) outcome.Outcome[model.Anime] {
			close(animeStarted)
			if !wait(reviewsStarted) {
				return outcome.Failed[model.Anime]("get anime", errors.New("ran alone"))
			}
			return outcome.Ok(model.Anime{MalID: id, Title: "Frieren"})
		})

		var gotFilter backend.ReviewFilter
		reviews := reviewsFunc(func(ctx context.Context, filter backend.ReviewFilter) outcome.Outcome[[]model.Review] {
			gotFilter = filter
			close(reviewsStarted)
			if !wait(animeStarted) {
				return outcome.Failed[[]model.Review]("list reviews", errors.New("ran alone"))
			}
			return outcome.Ok([]model.Review{review(1, 3), review(2, 5), review(3, 4)})
		})

		detail := LoadDetail(context.Background(), animes, reviews, 52991)

		Convey("The two requests overlap", func() {
			So(detail.Anime.IsOk(), ShouldBeTrue)
			So(detail.Reviews.IsOk(), ShouldBeTrue)
		})

		Convey("Reviews are filtered by the anime id", func() {
			So(*gotFilter.AnimeID, ShouldEqual, 52991)
			So(gotFilter.UserID, ShouldBeNil)
		})

		Convey("Reviews are ordered by rating and averaged", func() {
			list, _ := detail.Reviews.Get()
			So(list[0].ID, ShouldEqual, 2)
			So(list[1].ID, ShouldEqual, 3)
			So(list[2].ID, ShouldEqual, 1)
			So(detail.Average().MustGet(), ShouldEqual, 4)
		})
	})

	Convey("Given one backend fails", t, func() {
		animes := animeFunc(func(ctx context.Context, id int) outcome.Outcome[model.Anime] {
			return outcome.Failed[model.Anime]("get anime", context.DeadlineExceeded)
		})
		reviews := reviewsFunc(func(ctx context.Context, filter backend.ReviewFilter) outcome.Outcome[[]model.Review] {
			return outcome.Ok([]model.Review{review(1, 2)})
		})

		detail := LoadDetail(context.Background(), animes, reviews, 1)

		Convey("The other still succeeds", func() {
			So(detail.Anime.IsFailed(), ShouldBeTrue)
			So(detail.Reviews.IsOk(), ShouldBeTrue)
			So(detail.Average().MustGet(), ShouldEqual, 2)
		})
	})

	Convey("Given reviews are declined", t, func() {
		animes := animeFunc(func(ctx context.Context, id int) outcome.Outcome[model.Anime] {
			return outcome.Ok(model.Anime{MalID: id})
		})
		reviews := reviewsFunc(func(ctx context.Context, filter backend.ReviewFilter) outcome.Outcome[[]model.Review] {
			return outcome.Declined[[]model.Review]("db down", nil)
		})

		detail := LoadDetail(context.Background(), animes, reviews, 1)
		So(detail.Anime.IsOk(), ShouldBeTrue)
		So(detail.Reviews.IsDeclined(), ShouldBeTrue)
		So(detail.Average().IsAbsent(), ShouldBeTrue)
	})
}

func TestAverageAndOrder(t *testing.T) {
	Convey("Average of nothing is absent", t, func() {
		So(Average(nil).IsAbsent(), ShouldBeTrue)
	})

	Convey("ByRating does not touch its input and keeps ties stable", t, func() {
		in := []model.Review{review(1, 4), review(2, 5), review(3, 4)}
		out := ByRating(in)

		So(in[0].ID, ShouldEqual, 1)
		So([]int{out[0].ID, out[1].ID, out[2].ID}, ShouldResemble, []int{2, 1, 3})
	})
}

func TestAnimeForReview(t *testing.T) {
	calls := 0
	animes := animeFunc(func(ctx context.Context, id int) outcome.Outcome[model.Anime] {
		calls++
		return outcome.Ok(model.Anime{MalID: id, Title: "Bebop"})
	})

	Convey("A review without MAL_ID resolves to unknown without a request", t, func() {
		calls = 0
		o := AnimeForReview(context.Background(), animes, review(1, 3))

		anime, ok := o.Get()
		So(ok, ShouldBeTrue)
		So(anime.IsAbsent(), ShouldBeTrue)
		So(calls, ShouldEqual, 0)
	})

	Convey("A review with MAL_ID resolves through the metadata backend", t, func() {
		r := review(1, 3)
		r.MalID = model.Some(1)

		anime, ok := AnimeForReview(context.Background(), animes, r).Get()
		So(ok, ShouldBeTrue)
		So(anime.MustGet().Title, ShouldEqual, "Bebop")
	})
}

func TestFindReview(t *testing.T) {
	reviews := reviewsFunc(func(ctx context.Context, filter backend.ReviewFilter) outcome.Outcome[[]model.Review] {
		return outcome.Ok([]model.Review{review(7, 4), review(8, 2)})
	})

	Convey("A review of the user is found", t, func() {
		r, ok := FindReview(context.Background(), reviews, 3, 8).Get()
		So(ok, ShouldBeTrue)
		So(r.Rating, ShouldEqual, 2)
	})

	Convey("Any other review is declined", t, func() {
		So(FindReview(context.Background(), reviews, 3, 99).IsDeclined(), ShouldBeTrue)
	})
}

func TestClosest(t *testing.T) {
	animes := []model.Anime{
		{MalID: 1, Title: "Shingeki no Kyojin", TitleEnglish: model.Some("Attack on Titan")},
		{MalID: 2, Title: "Shingeki no Kyojin Season 2"},
		{MalID: 3, Title: "Kimetsu no Yaiba"},
	}

	Convey("Closest matches either title", t, func() {
		a, ok := Closest("attack on titan", animes)
		So(ok, ShouldBeTrue)
		So(a.MalID, ShouldEqual, 1)

		a, _ = Closest("  Shingeki no Kyojin season 2 ", animes)
		So(a.MalID, ShouldEqual, 2)
	})

	Convey("FindClosest declines an empty search", t, func() {
		empty := searchFunc(func(ctx context.Context, query string, page, limit int) outcome.Outcome[model.AnimePage] {
			return outcome.Ok(model.AnimePage{})
		})
		So(FindClosest(context.Background(), empty, "zzz").IsDeclined(), ShouldBeTrue)

		full := searchFunc(func(ctx context.Context, query string, page, limit int) outcome.Outcome[model.AnimePage] {
			return outcome.Ok(model.AnimePage{Data: animes})
		})
		a, ok := FindClosest(context.Background(), full, "kimetsu").Get()
		So(ok, ShouldBeTrue)
		So(a.MalID, ShouldEqual, 3)
	})
}
