package cmd

import (
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagardabas0007/private-markets/pkg/types"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listMarketsCmd = &cobra.Command{
	Use:   "list-markets",
	Short: "List markets, locally created first",
	Long: `Fetches the merged market listing: markets created through this
instance followed by markets from the external indexer.`,
	RunE: runListMarkets,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(listMarketsCmd)
	listMarketsCmd.Flags().BoolP("verbose", "v", false, "Show detailed market information")
}

func runListMarkets(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	var markets []types.Market
	err := apiCall(cmd, http.MethodGet, "/api/markets", nil, &markets, nil)
	if err != nil {
		return err
	}

	if len(markets) == 0 {
		fmt.Println("No markets found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ADDRESS\tQUESTION\tYES\tSTATUS\n")
	fmt.Fprintf(w, "-------\t--------\t---\t------\n")

	for i := range markets {
		market := &markets[i]

		question := market.Account.Question
		if len(question) > 60 {
			question = question[:57] + "..."
		}

		status := "open"
		if market.Account.WinningOutcome.State == types.ResolutionResolved {
			status = "resolved " + string(market.Account.WinningOutcome.Outcome)
		}

		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n", market.PublicKey, question, market.Account.YesProbability, status)

		if verbose {
			fmt.Fprintf(w, "\tCreator: %s\n", market.Account.Creator)
			fmt.Fprintf(w, "\tCollateral: %s (%s base units)\n", market.Account.CollateralMint, market.Account.InitialLiquidity)
			if market.Account.EndTime > 0 {
				fmt.Fprintf(w, "\tEnds: %s\n", time.Unix(market.Account.EndTime, 0).Format("2006-01-02 15:04 MST"))
			}
			fmt.Fprintf(w, "\n")
		}
	}

	w.Flush()

	fmt.Printf("\nTotal: %d markets\n", len(markets))

	return nil
}
