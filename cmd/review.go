package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/animecritique/critique/backend"
	"github.com/animecritique/critique/catalog"
	"github.com/animecritique/critique/key"
	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/outcome"
	"github.com/animecritique/critique/query"
	"github.com/animecritique/critique/render"
	"github.com/animecritique/critique/session"
	"github.com/animecritique/critique/spin"
	"github.com/animecritique/critique/validate"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errNothingToUpdate = errors.New("nothing to update, pass at least one of --rating, --text, --headline, --watched")

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.AddCommand(reviewListCmd)
	reviewListCmd.Flags().Int("user", 0, "only reviews by this user id")
	reviewListCmd.Flags().Int("anime", 0, "only reviews of this MyAnimeList id")
	reviewListCmd.Flags().IntP("limit", "l", 0, "maximum number of reviews")
	reviewListCmd.Flags().BoolP("all", "a", false, "reviews by everyone")

	reviewCmd.AddCommand(reviewShowCmd)

	reviewCmd.AddCommand(reviewCreateCmd)
	reviewCreateCmd.Flags().Int("anime", 0, "MyAnimeList id of the reviewed anime")
	reviewCreateCmd.Flags().String("title", "", "look the anime up by title instead of id")
	reviewCreateCmd.MarkFlagsMutuallyExclusive("anime", "title")
	addReviewFields(reviewCreateCmd)

	reviewCmd.AddCommand(reviewUpdateCmd)
	addReviewFields(reviewUpdateCmd)

	reviewCmd.AddCommand(reviewDeleteCmd)
	reviewDeleteCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}

func addReviewFields(cmd *cobra.Command) {
	cmd.Flags().IntP("rating", "r", 0, fmt.Sprintf("rating from %d to %d", validate.MinRating, validate.MaxRating))
	cmd.Flags().StringP("text", "t", "", "review text (prompted when omitted)")
	cmd.Flags().String("headline", "", "short review title")
	cmd.Flags().String("watched", "", "date the anime was watched, YYYY-MM-DD")
}

// optionalString returns nil for a flag the user did not pass.
func optionalString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return lo.ToPtr(lo.Must(cmd.Flags().GetString(name)))
}

func reviewID(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		handleErr(fmt.Errorf("invalid review id %q", arg))
	}
	return id
}

var reviewCmd = &cobra.Command{
	Use:     "review",
	Aliases: []string{"reviews"},
	Short:   "Read and write reviews",
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reviews, your own by default",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var filter backend.ReviewFilter
		filter.Limit = lo.Must(cmd.Flags().GetInt("limit"))
		if filter.Limit == 0 {
			filter.Limit = viper.GetInt(key.ReviewsLimit)
		}

		if cmd.Flags().Changed("anime") {
			filter.AnimeID = lo.ToPtr(lo.Must(cmd.Flags().GetInt("anime")))
		}

		switch {
		case cmd.Flags().Changed("user"):
			filter.UserID = lo.ToPtr(lo.Must(cmd.Flags().GetInt("user")))
		case lo.Must(cmd.Flags().GetBool("all")), filter.AnimeID != nil:
		default:
			id, err := session.UserID()
			handleErr(err)
			filter.UserID = &id
		}

		client := backendClient()
		reviews := fetch("Loading reviews", func() outcome.Outcome[[]model.Review] {
			return client.ListReviews(cmd.Context(), filter)
		})

		if len(reviews) == 0 {
			fmt.Println("No reviews found")
			return
		}

		w := width()
		for i, r := range reviews {
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(render.Review(r, w))
		}
		fmt.Println()
		fmt.Println(render.Average(catalog.Average(reviews), len(reviews)))
	},
}

var reviewShowCmd = &cobra.Command{
	Use:   "show <review id>",
	Short: "Show one of your reviews with its anime",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := reviewID(args[0])
		userID, err := session.UserID()
		handleErr(err)

		client := backendClient()
		review := fetch("Loading review", func() outcome.Outcome[model.Review] {
			return catalog.FindReview(cmd.Context(), client, userID, id)
		})

		metadata := jikanClient()
		anime := spin.While("Loading anime", func() outcome.Outcome[mo.Option[model.Anime]] {
			return catalog.AnimeForReview(cmd.Context(), metadata, review)
		})

		w := width()
		anime.Match(
			func(a mo.Option[model.Anime]) {
				if found, ok := a.Get(); ok {
					fmt.Println(render.AnimeLine(found, w))
				}
			},
			func(d *outcome.Decline) { fmt.Println(render.Decline(d)) },
			func(t *outcome.TransportError) { fmt.Println(render.Failure(t)) },
		)
		fmt.Println(render.Review(review, w))
	},
}

var reviewCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Review an anime",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		userID, err := session.UserID()
		handleErr(err)

		malID := lo.Must(cmd.Flags().GetInt("anime"))
		if title := lo.Must(cmd.Flags().GetString("title")); title != "" {
			metadata := jikanClient()
			anime := fetch("Looking up "+title, func() outcome.Outcome[model.Anime] {
				return catalog.FindClosest(cmd.Context(), metadata, title)
			})
			fmt.Println(render.AnimeLine(anime, width()))
			handleErr(query.Remember(title, query.SelectWeight))
			malID = anime.MalID
		}
		if malID <= 0 {
			handleErr(errors.New("pass --anime or --title"))
		}

		rating := lo.Must(cmd.Flags().GetInt("rating"))
		if !cmd.Flags().Changed("rating") {
			ratings := lo.Map(lo.Range(validate.MaxRating), func(i int, _ int) string {
				return strconv.Itoa(validate.MaxRating - i)
			})
			var answer string
			handleErr(survey.AskOne(&survey.Select{Message: "Rating", Options: ratings}, &answer))
			rating = lo.Must(strconv.Atoi(answer))
		}

		text := lo.Must(cmd.Flags().GetString("text"))
		ask(&text, &survey.Multiline{Message: "Review"})

		form, err := validate.Review(rating, text)
		handleErr(err)

		client := backendClient()
		review := fetch("Publishing review", func() outcome.Outcome[model.Review] {
			return client.CreateReview(cmd.Context(), model.CreateReviewRequest{
				UserID:    userID,
				MalID:     malID,
				Rating:    float64(form.Rating),
				Text:      form.Text,
				Title:     optionalString(cmd, "headline"),
				WatchedAt: optionalString(cmd, "watched"),
			})
		})

		fmt.Println(render.Review(review, width()))
		fmt.Println(render.Success("Review published"))
	},
}

var reviewUpdateCmd = &cobra.Command{
	Use:   "update <review id>",
	Short: "Edit one of your reviews",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := reviewID(args[0])
		userID, err := session.UserID()
		handleErr(err)

		req := model.UpdateReviewRequest{
			ReviewID:  id,
			UserID:    userID,
			Title:     optionalString(cmd, "headline"),
			WatchedAt: optionalString(cmd, "watched"),
		}

		if cmd.Flags().Changed("rating") {
			rating := lo.Must(cmd.Flags().GetInt("rating"))
			handleErr(validate.Rating(rating))
			req.Rating = lo.ToPtr(float64(rating))
		}

		if cmd.Flags().Changed("text") {
			text, err := validate.ReviewText(lo.Must(cmd.Flags().GetString("text")))
			handleErr(err)
			req.Text = &text
		}

		if req.Rating == nil && req.Text == nil && req.Title == nil && req.WatchedAt == nil {
			handleErr(errNothingToUpdate)
		}

		client := backendClient()
		fetch("Checking review", func() outcome.Outcome[model.Review] {
			return catalog.FindReview(cmd.Context(), client, userID, id)
		})

		review := fetch("Saving review", func() outcome.Outcome[model.Review] {
			return client.UpdateReview(cmd.Context(), req)
		})

		fmt.Println(render.Review(review, width()))
		fmt.Println(render.Success("Review updated"))
	},
}

var reviewDeleteCmd = &cobra.Command{
	Use:     "delete <review id>",
	Aliases: []string{"rm"},
	Short:   "Delete one of your reviews",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := reviewID(args[0])
		userID, err := session.UserID()
		handleErr(err)

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			var confirm bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: fmt.Sprintf("Delete review #%d?", id),
				Default: false,
			}, &confirm))
			if !confirm {
				return
			}
		}

		client := backendClient()
		fetch("Deleting review", func() outcome.Outcome[struct{}] {
			return client.DeleteReview(cmd.Context(), id, userID)
		})

		fmt.Println(render.Success(fmt.Sprintf("Review #%d deleted", id)))
	},
}
