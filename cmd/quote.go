package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"llamalend/core"
	"llamalend/internal/llamma"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "offline loan quotes for a configured market",
}

func normalizeToken(token string) string {
	return strings.ToLower(token)
}

func requireMarket(cmd *cobra.Command) (*core.Market, error) {
	name, _ := cmd.Flags().GetString("market")
	market, ok := cfg.FindMarket(name)
	if !ok {
		return nil, fmt.Errorf("market %q not configured", name)
	}

	return market, nil
}

func printJSON(v interface{}) error {
	return json.NewEncoder(os.Stdout).Encode(v)
}

var quoteFullRepayCmd = &cobra.Command{
	Use:   "full-repay <debt>",
	Short: "amount that clears a loan of debt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		market, err := requireMarket(cmd)
		if err != nil {
			return err
		}

		debt, err := decimal.NewFromString(args[0])
		if err != nil {
			return err
		}

		return printJSON(llamma.FullRepayAmount(debt, market.BorrowedDecimals))
	},
}

var quoteBandsCmd = &cobra.Command{
	Use:   "bands <n1> <n>",
	Short: "band pair of a loan starting at n1 over n bands",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		market, err := requireMarket(cmd)
		if err != nil {
			return err
		}

		n1, err := cast.ToInt64E(args[0])
		if err != nil {
			return err
		}

		n, err := cast.ToIntE(args[1])
		if err != nil {
			return err
		}

		if err := llamma.CheckRange(market, n); err != nil {
			return err
		}

		return printJSON(llamma.BandsFor(n1, n))
	},
}

var quoteFracCmd = &cobra.Command{
	Use:   "frac <amount> <tokens_to_liquidate>",
	Short: "partial liquidation fraction of amount",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		market, err := requireMarket(cmd)
		if err != nil {
			return err
		}

		amount, err := decimal.NewFromString(args[0])
		if err != nil {
			return err
		}

		ttl, err := decimal.NewFromString(args[1])
		if err != nil {
			return err
		}

		frac, err := llamma.CalcPartialFrac(amount, ttl, market.BorrowedDecimals)
		if err != nil {
			return err
		}

		return printJSON(frac)
	},
}

var quoteMaxRangeCmd = &cobra.Command{
	Use:   "max-range <debt> <n=capacity>...",
	Short: "widest band count whose capacity covers debt",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		market, err := requireMarket(cmd)
		if err != nil {
			return err
		}

		debt, err := decimal.NewFromString(args[0])
		if err != nil {
			return err
		}

		capacities := make(map[int]decimal.Decimal, len(args)-1)
		for _, arg := range args[1:] {
			n, capacity, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("invalid capacity %q, want n=capacity", arg)
			}

			idx, err := cast.ToIntE(n)
			if err != nil {
				return err
			}

			if capacities[idx], err = decimal.NewFromString(capacity); err != nil {
				return err
			}
		}

		return printJSON(llamma.MaxRangeFor(capacities, debt, market.MinBands, market.MaxBands))
	},
}

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.PersistentFlags().String("market", "", "market name")
	quoteCmd.AddCommand(quoteFullRepayCmd, quoteBandsCmd, quoteFracCmd, quoteMaxRangeCmd)
}
