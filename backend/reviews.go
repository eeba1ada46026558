package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/outcome"
)

// DefaultReviewsLimit is sent when a ReviewFilter has no limit.
const DefaultReviewsLimit = 100

// ReviewFilter narrows ListReviews. Nil ids are not sent.
type ReviewFilter struct {
	UserID  *int
	AnimeID *int
	Limit   int
}

func (f ReviewFilter) values() url.Values {
	q := url.Values{}
	if f.UserID != nil {
		q.Set("id_usuario", itoa(*f.UserID))
	}
	if f.AnimeID != nil {
		q.Set("id_anime", itoa(*f.AnimeID))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultReviewsLimit
	}
	q.Set("limit", itoa(limit))

	return q
}

// ListReviews returns the matching reviews. No match is an empty list.
func (c *Client) ListReviews(ctx context.Context, filter ReviewFilter) outcome.Outcome[[]model.Review] {
	return send[[]model.Review](ctx, c, call{
		op:      "list reviews",
		method:  http.MethodGet,
		path:    "reviews/manage.php",
		query:   filter.values(),
		payload: payloadList,
	})
}

// CreateReview submits a review. The rating is sent as given; range checks belong to the caller and the backend.
func (c *Client) CreateReview(ctx context.Context, req model.CreateReviewRequest) outcome.Outcome[model.Review] {
	return send[model.Review](ctx, c, call{
		op:     "create review",
		method: http.MethodPost,
		path:   "reviews/manage.php",
		body:   req,
	})
}

// UpdateReview changes the non-nil fields of a review owned by req.UserID.
func (c *Client) UpdateReview(ctx context.Context, req model.UpdateReviewRequest) outcome.Outcome[model.Review] {
	return send[model.Review](ctx, c, call{
		op:     "update review",
		method: http.MethodPut,
		path:   "reviews/manage.php",
		body:   req,
	})
}

// DeleteReview removes a review owned by userID. Ownership is checked by the backend;
// a review of another user comes back as a decline.
func (c *Client) DeleteReview(ctx context.Context, reviewID, userID int) outcome.Outcome[struct{}] {
	return send[struct{}](ctx, c, call{
		op:      "delete review",
		method:  http.MethodDelete,
		path:    "reviews/manage.php",
		body:    model.DeleteReviewRequest{ReviewID: reviewID, UserID: userID},
		payload: payloadNone,
	})
}
