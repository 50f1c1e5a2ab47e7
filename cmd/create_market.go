package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagardabas0007/private-markets/pkg/httpserver"
)

//nolint:gochecknoglobals // Cobra boilerplate
var createMarketCmd = &cobra.Command{
	Use:   "create-market",
	Short: "Register a freshly created market with the ledger",
	Long: `Registers a market the caller just created on chain so it appears in
listings immediately, before the external indexer picks it up.`,
	RunE: runCreateMarket,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(createMarketCmd)
	createMarketCmd.Flags().String("public-key", "", "Market account public key (required)")
	createMarketCmd.Flags().String("question", "", "Market question (required)")
	createMarketCmd.Flags().String("creator", "", "Creator wallet address (required)")
	createMarketCmd.Flags().String("collateral-mint", "", "Collateral mint address (required)")
	createMarketCmd.Flags().String("initial-liquidity", "0", "Initial liquidity as a decimal amount, e.g. 100.5")
	createMarketCmd.Flags().Duration("duration", 7*24*time.Hour, "Time until the market closes")
	createMarketCmd.Flags().String("tx-signature", "", "Creation transaction signature (required)")
	createMarketCmd.Flags().String("oracle", "", "Custom oracle address (optional)")
	_ = createMarketCmd.MarkFlagRequired("public-key")
	_ = createMarketCmd.MarkFlagRequired("question")
	_ = createMarketCmd.MarkFlagRequired("creator")
	_ = createMarketCmd.MarkFlagRequired("collateral-mint")
	_ = createMarketCmd.MarkFlagRequired("tx-signature")
}

func runCreateMarket(cmd *cobra.Command, args []string) error {
	publicKey, _ := cmd.Flags().GetString("public-key")
	question, _ := cmd.Flags().GetString("question")
	creator, _ := cmd.Flags().GetString("creator")
	collateralMint, _ := cmd.Flags().GetString("collateral-mint")
	initialLiquidity, _ := cmd.Flags().GetString("initial-liquidity")
	duration, _ := cmd.Flags().GetDuration("duration")
	txSignature, _ := cmd.Flags().GetString("tx-signature")
	oracle, _ := cmd.Flags().GetString("oracle")

	req := httpserver.CreateMarketRequest{
		PublicKey:            publicKey,
		Question:             question,
		Creator:              creator,
		CollateralMint:       collateralMint,
		InitialLiquidity:     initialLiquidity,
		EndTime:              time.Now().Add(duration).Unix(),
		TransactionSignature: txSignature,
		IsCustomOracle:       oracle != "",
		OracleAddress:        oracle,
	}

	err := apiCall(cmd, http.MethodPost, "/api/markets", req, nil, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Market %s registered.\n", publicKey)
	return nil
}
