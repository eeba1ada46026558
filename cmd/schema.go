package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/animecritique/critique/model"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

// schemaTargets are the payloads a schema can be printed for.
var schemaTargets = map[string]any{
	"envelope":      &model.Envelope{},
	"user":          &model.User{},
	"anime":         &model.Anime{},
	"anime-page":    &model.AnimePage{},
	"review":        &model.Review{},
	"favorite":      &model.Favorite{},
	"watchlist":     &model.WatchedAnime{},
	"login":         &model.LoginRequest{},
	"register":      &model.RegisterRequest{},
	"create-review": &model.CreateReviewRequest{},
	"update-review": &model.UpdateReviewRequest{},
	"delete-review": &model.DeleteReviewRequest{},
}

func schemaNames() []string {
	names := lo.Keys(schemaTargets)
	slices.Sort(names)
	return names
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

// reflector emits lower-case definition names.
func reflector() *jsonschema.Reflector {
	r := new(jsonschema.Reflector)
	r.Anonymous = true
	r.Namer = func(t reflect.Type) string {
		return strings.ToLower(t.Name())
	}
	return r
}

var schemaCmd = &cobra.Command{
	Use:       "schema <payload>",
	Short:     "Print the JSON schema of a backend payload",
	Args:      cobra.ExactArgs(1),
	ValidArgs: schemaNames(),
	Run: func(cmd *cobra.Command, args []string) {
		target, ok := schemaTargets[args[0]]
		if !ok {
			handleErr(fmt.Errorf("unknown payload %q, expected one of %s", args[0], strings.Join(schemaNames(), ", ")))
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector().Reflect(target)))
	},
}
