package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "private-markets",
	Short: "Confidential position ledger for prediction markets",
	Long: `Confidential position ledger for prediction markets.

Positions are stored as opaque encrypted handles with a cleartext
commitment hash. The ledger verifies commitments, aggregates market
sentiment without decrypting anything, and records settlements once
the encryption gateway attests the decrypted amounts.

The serve command runs the full service. The remaining commands are
thin HTTP clients against a running instance.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "Base URL of a running private-markets instance")
}
