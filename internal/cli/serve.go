package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"riskgraph/internal/chart"
	"riskgraph/internal/models"
	"riskgraph/internal/stream"
	"riskgraph/internal/view"
	"riskgraph/pkg/utils"
)

func newServeCmd(app *App) *cobra.Command {
	var timeframe string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live pipeline: feed, bucketing, gravity",
		Long: `Connects to the live tick channel, aggregates ticks into candles
for the active timeframe and logs each emitted gravity band. The feed
reconnects with a fixed backoff and never replays missed ticks.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tf := models.Timeframe(timeframe)
			if !tf.Valid() {
				tf = models.Timeframe(app.Config.Gravity.Timeframe)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			v := view.New(view.Config{
				Symbol:       app.Config.Feed.Symbol,
				Timeframe:    tf,
				GexMode:      chart.GexMode(app.Config.Chart.GexMode),
				ProfileRows:  app.Config.Chart.ProfileRows,
				GridStep:     app.Config.Chart.GridStep,
				GridMargin:   app.Config.Chart.GridMargin,
				HistoryLimit: app.Config.Gravity.HistoryLimit,
				MemoSize:     app.Config.Gravity.MemoCacheSize,
			}, app.Store, view.NopRenderer{}, app.Logger)

			if err := v.SwitchTimeframe(ctx, tf); err != nil {
				app.Logger.Warn().Err(err).Msg("starting without candle history")
			}

			hub := stream.NewHub(tf)
			hub.Start(ctx)
			defer hub.Stop()

			commits := hub.Subscribe("view")

			feed := stream.NewFeed(stream.FeedConfig{
				URL:            app.Config.Feed.URL,
				Symbol:         app.Config.Feed.Symbol,
				ReconnectDelay: app.Config.Feed.ReconnectDelay,
			})
			feed.OnTick(hub.HandleTick)
			feed.OnConnect(func() {
				app.Logger.Info().Str("url", app.Config.Feed.URL).Msg("feed connected")
			})
			feed.OnDisconnect(func() {
				app.Logger.Warn().Msg("feed disconnected, reconnecting with fixed backoff")
			})
			feed.OnError(func(err error) {
				app.Logger.Debug().Err(err).Msg("feed error")
			})
			if err := feed.Start(ctx); err != nil {
				return err
			}
			defer feed.Stop()

			app.Logger.Info().Str("timeframe", string(tf)).Msg("live pipeline running")

			for {
				select {
				case <-ctx.Done():
					return nil
				case c, ok := <-commits:
					if !ok {
						return nil
					}
					v.OnCandle(ctx, c)
					if band, ok := v.Gravity(); ok {
						app.Logger.Info().
							Time("bucket", band.Time).
							Str("best", utils.FormatPrice(band.Best)).
							Str("high", utils.FormatPrice(band.High)).
							Str("low", utils.FormatPrice(band.Low)).
							Str("confidence", utils.FormatPercent(band.Confidence)).
							Msg("gravity")
					}
				}
			}
		},
	}

	cmd.Flags().StringVar(&timeframe, "timeframe", "", "timeframe (5m, 15m, 1h)")
	return cmd
}
