package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/outcome"
	"github.com/animecritique/critique/render"
	"github.com/animecritique/critique/session"
	"github.com/animecritique/critique/validate"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringP("username", "u", "", "account username")
	loginCmd.Flags().StringP("password", "p", "", "account password (prompted when omitted)")

	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringP("username", "u", "", "desired username")
	registerCmd.Flags().StringP("email", "e", "", "email address")

	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

// ask prompts for value unless a flag already supplied it.
func ask(value *string, prompt survey.Prompt) {
	if *value != "" {
		return
	}
	handleErr(survey.AskOne(prompt, value))
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the account",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		username := lo.Must(cmd.Flags().GetString("username"))
		password := lo.Must(cmd.Flags().GetString("password"))

		ask(&username, &survey.Input{Message: "Username"})
		ask(&password, &survey.Password{Message: "Password"})

		form, err := validate.Login(username, password)
		handleErr(err)

		client := backendClient()
		user := fetch("Signing in", func() outcome.Outcome[model.User] {
			return client.Login(cmd.Context(), form.Username, form.Password)
		})

		handleErr(session.Save(user))
		fmt.Println(render.Success(fmt.Sprintf("Welcome, %s!", user.Username)))
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var form validate.RegistrationForm
		form.Username = lo.Must(cmd.Flags().GetString("username"))
		form.Email = lo.Must(cmd.Flags().GetString("email"))

		ask(&form.Username, &survey.Input{Message: "Username"})
		ask(&form.Email, &survey.Input{Message: "Email"})
		ask(&form.Password, &survey.Password{Message: "Password"})
		ask(&form.Confirmation, &survey.Password{Message: "Confirm password"})

		req, err := validate.Registration(form)
		handleErr(err)

		client := backendClient()
		user := fetch("Creating account", func() outcome.Outcome[model.User] {
			return client.Register(cmd.Context(), req)
		})

		handleErr(session.Save(user))
		fmt.Println(render.Success(fmt.Sprintf("Account created. Welcome, %s!", user.Username)))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the signed-in account",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(session.Clear())
		fmt.Println(render.Success("Signed out"))
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		user, err := session.Current()
		handleErr(err)
		fmt.Println(render.User(user))
	},
}
