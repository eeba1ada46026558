package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/animecritique/critique/catalog"
	"github.com/animecritique/critique/key"
	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/open"
	"github.com/animecritique/critique/outcome"
	"github.com/animecritique/critique/query"
	"github.com/animecritique/critique/render"
	"github.com/animecritique/critique/spin"
	"github.com/animecritique/critique/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	sourceJikan   = "jikan"
	sourceBackend = "backend"

	malPage = "https://myanimelist.net/anime/%d"
)

func init() {
	rootCmd.AddCommand(animeCmd)
	animeCmd.AddCommand(animeGetCmd, animeDetailCmd, animeOpenCmd, animeTopCmd, animeSearchCmd, animePopularCmd)

	animeOpenCmd.Flags().BoolP("cover", "c", false, "open the cover image instead")

	for _, c := range []*cobra.Command{animeTopCmd, animeSearchCmd, animePopularCmd} {
		c.Flags().IntP("page", "p", 1, "page number")
	}
	for _, c := range []*cobra.Command{animeTopCmd, animeSearchCmd} {
		c.Flags().IntP("limit", "l", 0, "anime per page (jikan only)")
		c.Flags().StringP("source", "s", sourceJikan, "where to list from (jikan, backend)")
		lo.Must0(c.RegisterFlagCompletionFunc("source", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{sourceJikan, sourceBackend}, cobra.ShellCompDirectiveNoFileComp
		}))
	}
}

// listing picks the client for --source and returns the request to make.
func listing(cmd *cobra.Command, fromJikan, fromBackend func(ctx context.Context, page, limit int) outcome.Outcome[model.AnimePage]) model.AnimePage {
	page := lo.Must(cmd.Flags().GetInt("page"))
	limit := lo.Must(cmd.Flags().GetInt("limit"))
	if limit == 0 {
		limit = viper.GetInt(key.AnimePageSize)
	}

	var request func(ctx context.Context, page, limit int) outcome.Outcome[model.AnimePage]
	switch source := lo.Must(cmd.Flags().GetString("source")); source {
	case sourceJikan:
		request = fromJikan
	case sourceBackend:
		request = fromBackend
	default:
		handleErr(fmt.Errorf("unknown source %q, expected %s or %s", source, sourceJikan, sourceBackend))
	}

	return fetch("Loading anime", func() outcome.Outcome[model.AnimePage] {
		return request(cmd.Context(), page, limit)
	})
}

func printPage(cmd *cobra.Command, page model.AnimePage) {
	w := width()
	for _, a := range page.Data {
		fmt.Println(render.AnimeLine(a, w))
	}

	if page.HasNext() {
		next := lo.Must(cmd.Flags().GetInt("page")) + 1
		fmt.Println(style.Faint(fmt.Sprintf("more on page %d (--page %d)", next, next)))
	}
}

var animeCmd = &cobra.Command{
	Use:   "anime",
	Short: "Browse anime",
}

var animeGetCmd = &cobra.Command{
	Use:   "get <mal id>",
	Short: "Show an anime",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := animeID(args[0])

		client := jikanClient()
		anime := fetch("Loading anime", func() outcome.Outcome[model.Anime] {
			return client.GetAnimeByID(cmd.Context(), id)
		})

		fmt.Println(render.Anime(anime, width()))
	},
}

var animeDetailCmd = &cobra.Command{
	Use:   "detail <mal id>",
	Short: "Show an anime with its reviews",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := animeID(args[0])

		metadata, reviews := jikanClient(), backendClient()
		detail := spin.While("Loading anime and reviews", func() catalog.Detail {
			return catalog.LoadDetail(cmd.Context(), metadata, reviews, id)
		})

		w := width()
		anime, ok := detail.Anime.Get()
		if !ok {
			report(detail.Anime)
			if !detail.Reviews.IsOk() {
				report(detail.Reviews)
			}
			os.Exit(exitCode(detail.Anime.Err()))
		}

		fmt.Println(render.Anime(anime, w))
		fmt.Println()

		list, ok := detail.Reviews.Get()
		if !ok {
			report(detail.Reviews)
			return
		}

		fmt.Println(render.Average(detail.Average(), len(list)))
		for _, r := range list {
			fmt.Println()
			fmt.Println(render.Review(r, w))
		}
	},
}

var animeOpenCmd = &cobra.Command{
	Use:   "open <mal id>",
	Short: "Open an anime's MyAnimeList page in the browser",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := animeID(args[0])
		target := fmt.Sprintf(malPage, id)

		if lo.Must(cmd.Flags().GetBool("cover")) {
			client := jikanClient()
			anime := fetch("Loading anime", func() outcome.Outcome[model.Anime] {
				return client.GetAnimeByID(cmd.Context(), id)
			})
			if anime.Cover() == "" {
				handleErr(fmt.Errorf("%s has no cover image", anime.Name()))
			}
			target = anime.Cover()
		}

		handleErr(open.Start(target))
		fmt.Println(render.Success("Opened " + target))
	},
}

var animeTopCmd = &cobra.Command{
	Use:   "top",
	Short: "List top-ranked anime",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		page := listing(cmd,
			func(ctx context.Context, page, limit int) outcome.Outcome[model.AnimePage] {
				return jikanClient().TopAnimes(ctx, page, limit)
			},
			func(ctx context.Context, page, _ int) outcome.Outcome[model.AnimePage] {
				return backendClient().TopAnimes(ctx, page)
			},
		)

		printPage(cmd, page)
	},
}

var animeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search anime by title",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		q := strings.Join(args, " ")

		page := listing(cmd,
			func(ctx context.Context, page, limit int) outcome.Outcome[model.AnimePage] {
				return jikanClient().SearchAnimes(ctx, q, page, limit)
			},
			func(ctx context.Context, page, _ int) outcome.Outcome[model.AnimePage] {
				return backendClient().SearchAnimes(ctx, q, page)
			},
		)

		if len(page.Data) == 0 {
			fmt.Printf("No anime found for %s\n", style.Bold(q))
			if suggestions := query.SuggestMany(q, 3); len(suggestions) > 0 {
				fmt.Println(style.Faint("Previous searches: " + strings.Join(lo.Map(suggestions, func(s string, _ int) string {
					return strconv.Quote(s)
				}), ", ")))
			}
			return
		}

		handleErr(query.Remember(q, query.SearchWeight))
		printPage(cmd, page)
	},
}

var animePopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List anime popular among reviewers",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		page := lo.Must(cmd.Flags().GetInt("page"))

		client := backendClient()
		animes := fetch("Loading anime", func() outcome.Outcome[model.AnimePage] {
			return client.PopularAnimes(cmd.Context(), page)
		})

		printPage(cmd, animes)
	},
}
