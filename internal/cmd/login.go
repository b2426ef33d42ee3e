package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/vendora/internal/apiclient"
	"github.com/AlexZinkM/vendora/internal/config"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and keep the session for later commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginEmail == "" {
			return fmt.Errorf("--email is required")
		}
		password, err := config.ReadSecret("Password: ")
		if err != nil {
			return err
		}
		defer clear(password)

		c := apiclient.New(apiURL, "")
		session, err := c.Login(cmd.Context(), loginEmail, string(password))
		if err != nil {
			return err
		}

		path, err := apiclient.TokenPath()
		if err != nil {
			return err
		}
		if err := apiclient.SaveToken(path, session.Token); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", loginEmail)
		if session.RequiresVerification {
			fmt.Fprintln(cmd.OutOrStdout(), "Your business is not verified yet. Submit your documents to start sending.")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	rootCmd.AddCommand(loginCmd)
}
