package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagardabas0007/private-markets/pkg/commitment"
	"github.com/sagardabas0007/private-markets/pkg/httpserver"
	"github.com/sagardabas0007/private-markets/pkg/types"
)

//nolint:gochecknoglobals // Cobra boilerplate
var submitPositionCmd = &cobra.Command{
	Use:   "submit-position",
	Short: "Submit an encrypted position to the ledger",
	Long: `Submits a position using encrypted value handles produced by the
encryption gateway. The commitment hash is computed locally from the
wallet, market, and handles, so the ledger records exactly what was
sent.`,
	RunE: runSubmitPosition,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(submitPositionCmd)
	submitPositionCmd.Flags().String("wallet", "", "Submitting wallet address (required)")
	submitPositionCmd.Flags().String("market", "", "Market address (required)")
	submitPositionCmd.Flags().String("amount-handle", "", "Encrypted amount handle from the gateway (required)")
	submitPositionCmd.Flags().String("side-handle", "", "Encrypted side handle from the gateway (required)")
	submitPositionCmd.Flags().String("side-hint", "", "Cleartext side hint, Yes or No (required)")
	_ = submitPositionCmd.MarkFlagRequired("wallet")
	_ = submitPositionCmd.MarkFlagRequired("market")
	_ = submitPositionCmd.MarkFlagRequired("amount-handle")
	_ = submitPositionCmd.MarkFlagRequired("side-handle")
	_ = submitPositionCmd.MarkFlagRequired("side-hint")
}

func runSubmitPosition(cmd *cobra.Command, args []string) error {
	wallet, _ := cmd.Flags().GetString("wallet")
	market, _ := cmd.Flags().GetString("market")
	amountHandle, _ := cmd.Flags().GetString("amount-handle")
	sideHandle, _ := cmd.Flags().GetString("side-handle")
	sideHint, _ := cmd.Flags().GetString("side-hint")

	now := time.Now().UTC()
	encryptedAmount := types.EncryptedValue{
		Handle:     amountHandle,
		ProducedAt: now,
		Kind:       types.KindAmount,
	}
	encryptedSide := types.EncryptedValue{
		Handle:     sideHandle,
		ProducedAt: now,
		Kind:       types.KindSide,
	}

	hash := commitment.Compute(wallet, market, encryptedAmount, encryptedSide)

	req := httpserver.SubmitRequest{
		WalletAddress:   wallet,
		MarketAddress:   market,
		EncryptedAmount: encryptedAmount,
		EncryptedSide:   encryptedSide,
		CommitmentHash:  hash,
		SideHint:        sideHint,
	}

	var resp httpserver.SubmitResponse
	err := apiCall(cmd, http.MethodPost, "/api/positions", req, &resp, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Position %s recorded.\nCommitment: %s\n", resp.PositionID, hash)
	return nil
}
