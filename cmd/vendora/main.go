// @title        Vendora API
// @version      1.0
// @description  Business wallet: accounts, KYC, balances and transfers.
// @BasePath     /
package main

import (
	"os"

	"github.com/AlexZinkM/vendora/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
