// Package register contains the command that creates a new user account.
package register

import (
	"os"

	"github.com/spf13/cobra"

	"fjacquet/fintrack/cmd/root"
)

var reset bool

// Cmd is the register command.
var Cmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user or reset an existing password",
	Long: `Register creates a new user account. The password must be at least 8
characters long and contain a number, an uppercase and a lowercase letter.
With --reset the password of an existing account is replaced instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		creds, err := root.Credentials()
		if err != nil {
			root.Log.WithError(err).Fatal("Failed to open credential store")
		}

		password := root.Password
		if password == "" {
			password = os.Getenv("FINTRACK_PASSWORD")
		}

		if reset {
			if err := creds.ResetPassword(root.Username, password); err != nil {
				root.Log.WithError(err).Fatal("Password reset failed")
			}
			root.Log.Info("Password reset successfully")
			return
		}

		if err := creds.Register(root.Username, password); err != nil {
			root.Log.WithError(err).Fatal("Registration failed")
		}
		root.Log.Info("User registered successfully")
	},
}

func init() {
	Cmd.Flags().BoolVar(&reset, "reset", false, "Reset the password of an existing account")
}
