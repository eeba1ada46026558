package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/animecritique/critique/icon"
	"github.com/animecritique/critique/query"
	"github.com/animecritique/critique/session"
	"github.com/animecritique/critique/util"
	"github.com/animecritique/critique/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	clear    func() error
}

// deleteFile treats an already missing path as cleared.
func deleteFile(path func() string) func() error {
	return func() error {
		if err := util.Delete(path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), deleteFile(where.Cache)},
	{"anime cache", "anime", mo.Some("a"), deleteFile(where.AnimeCache)},
	{"page cache", "pages", mo.Some("p"), deleteFile(where.PageCache)},
	{"search history", "queries", mo.Some("q"), query.Forget},
	{"saved session", "session", mo.None[string](), session.Clear},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, t := range clearTargets {
		help := "clear " + t.name
		if short, ok := t.argShort.Get(); ok {
			clearCmd.Flags().BoolP(t.argLong, short, false, help)
		} else {
			clearCmd.Flags().Bool(t.argLong, false, help)
		}
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached data",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.argLong))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, t := range selected {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), t.name))
			err := t.clear()
			erase()
			handleErr(err)
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(t.name))
		}
	},
}
