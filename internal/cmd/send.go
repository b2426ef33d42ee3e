package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AlexZinkM/vendora/internal/apiclient"
	"github.com/AlexZinkM/vendora/internal/tui"
	"github.com/AlexZinkM/vendora/internal/wizard"
)

var sendCmd = &cobra.Command{
	Use:       "send crypto|fiat",
	Short:     "Send money with the interactive transfer wizard",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(wizard.KindCrypto), string(wizard.KindFiat)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := wizard.ParseKind(args[0])

		path, err := apiclient.TokenPath()
		if err != nil {
			return err
		}
		token, err := apiclient.LoadToken(path)
		if err != nil {
			return err
		}

		c := apiclient.New(apiURL, token)
		if _, err := c.Me(cmd.Context()); err != nil {
			return err
		}
		return tui.RunSend(c, kind)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
