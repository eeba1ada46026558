package cmd

import (
	"fmt"
	"strconv"

	"github.com/animecritique/critique/color"
	"github.com/animecritique/critique/icon"
	"github.com/animecritique/critique/jikan"
	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/outcome"
	"github.com/animecritique/critique/render"
	"github.com/animecritique/critique/session"
	"github.com/animecritique/critique/spin"
	"github.com/animecritique/critique/style"
	"github.com/animecritique/critique/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(favoriteCmd)
	favoriteCmd.AddCommand(favoriteListCmd, favoriteAddCmd, favoriteRemoveCmd)
	favoriteListCmd.Flags().BoolP("titles", "t", false, "look up titles on MyAnimeList, treating stored anime ids as MAL ids")

	rootCmd.AddCommand(watchlistCmd)
	watchlistCmd.AddCommand(watchlistListCmd, watchlistAddCmd, watchlistRemoveCmd)
	watchlistListCmd.Flags().BoolP("titles", "t", false, "look up titles on MyAnimeList, treating stored anime ids as MAL ids")
	watchlistAddCmd.Flags().StringP("status", "s", model.DefaultWatchStatus, "watch status")
}

func animeID(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		handleErr(fmt.Errorf("invalid anime id %q", arg))
	}
	return id
}

// titler formats favorite and watchlist entries, resolving titles when --titles is set.
func titler(cmd *cobra.Command) func(id int, suffix string) string {
	resolve := lo.Must(cmd.Flags().GetBool("titles"))
	var metadata *jikan.Client
	if resolve {
		metadata = jikanClient()
	}

	return func(id int, suffix string) string {
		prefix := style.Faint(fmt.Sprintf("#%d", id))
		if !resolve {
			return fmt.Sprintf("%s %s", prefix, suffix)
		}

		anime := spin.While("Looking up anime", func() outcome.Outcome[model.Anime] {
			return metadata.GetAnimeByID(cmd.Context(), id)
		}).Value().OrElse(model.Anime{Title: render.Unknown})

		return fmt.Sprintf("%s %s %s", prefix, anime.Name(), suffix)
	}
}

var favoriteCmd = &cobra.Command{
	Use:     "favorite",
	Aliases: []string{"fav", "favorites"},
	Short:   "Manage favorite anime",
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your favorites",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		userID, err := session.UserID()
		handleErr(err)

		client := backendClient()
		favorites := fetch("Loading favorites", func() outcome.Outcome[[]model.Favorite] {
			return client.ListFavorites(cmd.Context(), userID)
		})

		fmt.Printf("%s %s\n", icon.Get(icon.Favorite), util.Quantify(len(favorites), "favorite", "favorites"))
		line := titler(cmd)
		for _, f := range favorites {
			fmt.Println(line(f.AnimeID, style.Faint(f.CreatedAt)))
		}
	},
}

var favoriteAddCmd = &cobra.Command{
	Use:   "add <anime id>",
	Short: "Add an anime to your favorites",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := animeID(args[0])
		userID, err := session.UserID()
		handleErr(err)

		client := backendClient()
		fetch("Adding favorite", func() outcome.Outcome[model.Favorite] {
			return client.AddFavorite(cmd.Context(), userID, id)
		})

		fmt.Println(render.Success(fmt.Sprintf("#%d added to favorites", id)))
	},
}

var favoriteRemoveCmd = &cobra.Command{
	Use:     "remove <anime id>",
	Aliases: []string{"rm"},
	Short:   "Remove an anime from your favorites",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := animeID(args[0])
		userID, err := session.UserID()
		handleErr(err)

		client := backendClient()
		fetch("Removing favorite", func() outcome.Outcome[struct{}] {
			return client.RemoveFavorite(cmd.Context(), userID, id)
		})

		fmt.Println(render.Success(fmt.Sprintf("#%d removed from favorites", id)))
	},
}

var watchlistCmd = &cobra.Command{
	Use:     "watchlist",
	Aliases: []string{"watched"},
	Short:   "Manage watched anime",
}

var watchlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your watchlist",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		userID, err := session.UserID()
		handleErr(err)

		client := backendClient()
		entries := fetch("Loading watchlist", func() outcome.Outcome[[]model.WatchedAnime] {
			return client.ListWatchlist(cmd.Context(), userID)
		})

		fmt.Printf("%s %s\n", icon.Get(icon.Watchlist), util.Quantify(len(entries), "entry", "entries"))
		line := titler(cmd)
		for _, w := range entries {
			fmt.Println(line(w.AnimeID, style.Fg(color.Accent)(w.Status)))
		}
	},
}

var watchlistAddCmd = &cobra.Command{
	Use:   "add <anime id>",
	Short: "Add an anime to your watchlist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := animeID(args[0])
		userID, err := session.UserID()
		handleErr(err)
		status := lo.Must(cmd.Flags().GetString("status"))

		client := backendClient()
		entry := fetch("Updating watchlist", func() outcome.Outcome[model.WatchedAnime] {
			return client.AddToWatchlist(cmd.Context(), userID, id, status)
		})

		fmt.Println(render.Success(fmt.Sprintf("#%d added to watchlist as %s", id, entry.Status)))
	},
}

var watchlistRemoveCmd = &cobra.Command{
	Use:     "remove <anime id>",
	Aliases: []string{"rm"},
	Short:   "Remove an anime from your watchlist",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := animeID(args[0])
		userID, err := session.UserID()
		handleErr(err)

		client := backendClient()
		fetch("Updating watchlist", func() outcome.Outcome[struct{}] {
			return client.RemoveFromWatchlist(cmd.Context(), userID, id)
		})

		fmt.Println(render.Success(fmt.Sprintf("#%d removed from watchlist", id)))
	},
}
