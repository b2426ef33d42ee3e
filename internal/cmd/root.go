// Package cmd holds the cobra commands of the vendora binary.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080"

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "vendora",
	Short: "Vendora business wallet",
	Long: `Vendora lets verified businesses hold USDC and pay out in crypto or naira.

Run the API with 'vendora serve', then sign in with 'vendora login' and
send money from the terminal with 'vendora send crypto' or 'vendora send fiat'.
Operators review KYC submissions with 'vendora kyc'.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	def := os.Getenv("VENDORA_API_URL")
	if def == "" {
		def = defaultAPIURL
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", def, "Vendora API base URL (env VENDORA_API_URL)")
}
