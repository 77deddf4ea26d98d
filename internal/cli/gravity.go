package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"riskgraph/internal/gravity"
	"riskgraph/internal/models"
	"riskgraph/pkg/utils"
)

func newGravityCmd(app *App) *cobra.Command {
	var (
		symbol    string
		timeframe string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "gravity",
		Short: "Recompute the gravity band from stored candle history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Store == nil {
				return fmt.Errorf("candle store unavailable")
			}

			tf := models.Timeframe(timeframe)
			if !tf.Valid() {
				return fmt.Errorf("unknown timeframe %q", timeframe)
			}

			history, err := app.Store.History(cmd.Context(), symbol, tf, limit)
			if err != nil {
				return err
			}

			band, ok := gravity.Compute(tf, history)
			if !ok {
				fmt.Printf("insufficient samples: have %d, need %d\n",
					len(history), gravity.MinSamples(gravity.WindowSize(tf)))
				return nil
			}

			fmt.Printf("best:       %s\n", utils.FormatPrice(band.Best))
			fmt.Printf("high:       %s\n", utils.FormatPrice(band.High))
			fmt.Printf("low:        %s\n", utils.FormatPrice(band.Low))
			fmt.Printf("cloud:      %s\n", utils.FormatPrice(band.Cloud))
			fmt.Printf("confidence: %s\n", utils.FormatPercent(band.Confidence))
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "symbol (defaults to feed.symbol)")
	cmd.Flags().StringVar(&timeframe, "timeframe", "5m", "timeframe (5m, 15m, 1h)")
	cmd.Flags().IntVar(&limit, "limit", 200, "max candles to load")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if symbol == "" {
			symbol = app.Config.Feed.Symbol
		}
	}

	return cmd
}
