package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagardabas0007/private-markets/pkg/httpserver"
	"github.com/sagardabas0007/private-markets/pkg/types"
)

//nolint:gochecknoglobals // Cobra boilerplate
var settleMarketCmd = &cobra.Command{
	Use:   "settle-market <market-address>",
	Short: "Settle every open position on a resolved market",
	Long: `Marks all confirmed positions on the market as settled, splitting them
into winners and losers by their side hint. Requires the admin token,
read from --admin-token or the ADMIN_TOKEN environment variable.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettleMarket,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(settleMarketCmd)
	settleMarketCmd.Flags().String("outcome", "", "Winning outcome, Yes or No (required)")
	settleMarketCmd.Flags().String("admin-token", "", "Admin token (defaults to ADMIN_TOKEN env var)")
	_ = settleMarketCmd.MarkFlagRequired("outcome")
}

func runSettleMarket(cmd *cobra.Command, args []string) error {
	market := args[0]
	outcome, _ := cmd.Flags().GetString("outcome")

	token, _ := cmd.Flags().GetString("admin-token")
	if token == "" {
		token = os.Getenv("ADMIN_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("admin token required: pass --admin-token or set ADMIN_TOKEN")
	}

	var summary types.SettlementSummary
	err := apiCall(cmd, http.MethodPost, "/api/markets/"+market+"/settle",
		httpserver.SettleRequest{Outcome: outcome},
		&summary,
		map[string]string{"Authorization": "Bearer " + token})
	if err != nil {
		return err
	}

	fmt.Printf("Market %s settled to %s.\n", market, outcome)
	fmt.Printf("Settled: %d positions (%d winning, %d losing)\n",
		summary.SettledCount, summary.WinningCount, summary.LosingCount)

	return nil
}
