package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"riskgraph/internal/models"
	"riskgraph/internal/payoff"
	"riskgraph/internal/strategy"
	"riskgraph/pkg/utils"
)

func newPayoffCmd(app *App) *cobra.Command {
	var (
		strategyType string
		side         string
		strike       float64
		width        float64
		debit        float64
		dte          int
		spot         float64
		vix          float64
	)

	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Compute payoff curves for one strategy",
		Long: `Computes the expiration and theoretical P&L curves for a single
strategy descriptor and prints breakevens and extremes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := models.Strategy{
				ID:      "cli",
				Type:    models.StrategyType(strategyType),
				Side:    models.OptionRight(side),
				Strike:  strike,
				Width:   width,
				Debit:   debit,
				DTE:     dte,
				Visible: true,
			}

			legs, err := strategy.Build(s)
			if err != nil {
				return err
			}
			if err := strategy.Validate(s, legs); err != nil {
				return err
			}

			engine := payoff.NewEngine(app.Config.Chart.GridStep, app.Config.Chart.GridMargin)
			res := engine.Compute(legs, spot, debit, vix, float64(dte)/365.0, payoff.SimOffsets{})

			fmt.Printf("Price range: %s .. %s\n", utils.FormatPrice(res.MinPrice), utils.FormatPrice(res.MaxPrice))
			fmt.Printf("P&L range:   %s .. %s\n", utils.FormatPnL(res.MinPnL), utils.FormatPnL(res.MaxPnL))

			fmt.Print("Expiration breakevens: ")
			printPrices(res.ExpirationBreakevens)
			fmt.Print("Theoretical breakevens: ")
			printPrices(res.TheoreticalBreakevens)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyType, "type", "butterfly", "strategy type (butterfly, vertical, single)")
	cmd.Flags().StringVar(&side, "side", "CALL", "option right (CALL, PUT)")
	cmd.Flags().Float64Var(&strike, "strike", 6000, "center strike")
	cmd.Flags().Float64Var(&width, "width", 10, "wing width")
	cmd.Flags().Float64Var(&debit, "debit", 0, "net debit paid")
	cmd.Flags().IntVar(&dte, "dte", 0, "days to expiration")
	cmd.Flags().Float64Var(&spot, "spot", 6000, "underlying spot price")
	cmd.Flags().Float64Var(&vix, "vix", 15, "volatility index quote")

	return cmd
}

func printPrices(prices []float64) {
	if len(prices) == 0 {
		fmt.Println("none")
		return
	}
	for i, p := range prices {
		if i > 0 {
			fmt.Print(", ")
		}
		fmt.Print(utils.FormatPrice(p))
	}
	fmt.Println()
}
