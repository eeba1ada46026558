package cmd

import (
	"fmt"
	"os"

	"github.com/animecritique/critique/color"
	"github.com/animecritique/critique/config"
	"github.com/animecritique/critique/style"
	"github.com/animecritique/critique/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "only variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "only variables that are unset")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// envNames lists every environment variable the application reads, sorted.
func envNames() []string {
	names := lo.Map(config.EnvExposed, func(k string, _ int) string {
		field := config.Default[k]
		return field.Env()
	})
	names = append(names, where.EnvConfigPath)
	slices.Sort(names)
	return names
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List supported environment variables and their values",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		for _, env := range envNames() {
			value, present := os.LookupEnv(env)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			fmt.Printf("%s=%s\n",
				style.New().Bold(true).Foreground(color.Purple).Render(env),
				lo.Ternary(present, style.Fg(color.Green)(value), style.Fg(color.Red)("unset")),
			)
		}
	},
}
