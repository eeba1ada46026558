package cmd

import (
	"fmt"

	"github.com/animecritique/critique/color"
	"github.com/animecritique/critique/style"
	"github.com/animecritique/critique/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type whereTarget struct {
	name     string
	where    func() string
	argLong  string
	argShort mo.Option[string]
	hidden   bool
}

var wherePaths = []whereTarget{
	{"Config", where.Config, "config", mo.Some("c"), false},
	{"Logs", where.Logs, "logs", mo.Some("l"), false},
	{"Cache", where.Cache, "cache", mo.None[string](), false},
	{"Anime cache", where.AnimeCache, "anime-cache", mo.None[string](), true},
	{"Page cache", where.PageCache, "page-cache", mo.None[string](), true},
	{"Queries", where.Queries, "queries", mo.Some("q"), true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, t := range wherePaths {
		if short, ok := t.argShort.Get(); ok {
			whereCmd.Flags().BoolP(t.argLong, short, false, t.name+" path")
		} else {
			whereCmd.Flags().Bool(t.argLong, false, t.name+" path")
		}

		if t.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(t.argLong))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(wherePaths, func(t whereTarget, _ int) string {
		return t.argLong
	})...)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where files are kept",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range wherePaths {
			if lo.Must(cmd.Flags().GetBool(t.argLong)) {
				fmt.Println(t.where())
				return
			}
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(wherePaths, func(t whereTarget, _ int) bool { return t.hidden })

		for i, t := range visible {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s %s\n", header(t.name+"?"), style.Fg(color.Yellow)("--"+t.argLong))
			fmt.Println(t.where())
		}
	},
}
