package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/sagardabas0007/private-markets/pkg/types"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verifyCommitmentCmd = &cobra.Command{
	Use:   "verify-commitment <hash>",
	Short: "Check whether a commitment hash exists on the ledger",
	Long: `Looks up a commitment hash. The response reveals only existence, the
market, and the submission time, never the wallet or the encrypted
values behind it.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerifyCommitment,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(verifyCommitmentCmd)
}

func runVerifyCommitment(cmd *cobra.Command, args []string) error {
	hash := args[0]

	var proof types.CommitmentProof
	err := apiCall(cmd, http.MethodGet, "/api/commitments/"+hash, nil, &proof, nil)
	if err != nil {
		return err
	}

	if !proof.Exists {
		fmt.Printf("Commitment %s: not found\n", hash)
		return nil
	}

	fmt.Printf("Commitment %s: recorded\n", hash)
	fmt.Printf("Market: %s\n", proof.MarketAddress)
	if proof.SubmittedAt != nil {
		fmt.Printf("Submitted: %s\n", proof.SubmittedAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}
