package cmd

import (
	"encoding/json"
	"os"

	"llamalend/handler/views"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "print configured markets with their api statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		network, _ := cmd.Flags().GetString("network")
		if network == "" {
			network = cfg.App.Network
		}

		list, err := provideStatsFetcher().FetchMarketStats(ctx, network)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if len(cfg.Markets) == 0 {
			return enc.Encode(list)
		}

		return enc.Encode(views.MarketViews(cfg.Markets, list))
	},
}

var pricesCmd = &cobra.Command{
	Use:   "prices [token...]",
	Short: "print usd prices from the statistics api",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		network, _ := cmd.Flags().GetString("network")
		if network == "" {
			network = cfg.App.Network
		}

		prices, err := provideStatsFetcher().FetchUSDPrices(ctx, network)
		if err != nil {
			return err
		}

		if len(args) > 0 {
			picked := make(map[string]interface{}, len(args))
			for _, token := range args {
				picked[token] = prices[normalizeToken(token)]
			}

			return json.NewEncoder(os.Stdout).Encode(picked)
		}

		return json.NewEncoder(os.Stdout).Encode(prices)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd, pricesCmd)
	statsCmd.Flags().String("network", "", "network, default is app.network")
	pricesCmd.Flags().String("network", "", "network, default is app.network")
}
