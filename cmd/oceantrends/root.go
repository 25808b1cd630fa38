package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spencer-p/oceantrends/pkg/pipeline"
)

var (
	cfg     pipeline.Config
	outPath string
)

// rootCmd renders the consumer named by --consumer.
var rootCmd = &cobra.Command{
	Use:   "oceantrends",
	Short: "Align tide, wave and temperature series and plot them",
	Long: `Fetches hourly tide predictions (NOAA CO-OPS), buoy wave heights (NDBC)
and daily air temperatures (Open-Meteo), aligns them on the tide timestamps
and renders the table with a consumer.

Every flag defaults to the matching OCEAN_* environment variable.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), cfg.Consumer)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	if err := pipeline.ProcessEnv(&cfg); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	f := rootCmd.PersistentFlags()
	f.StringVar(&cfg.TideStation, "tide-station", cfg.TideStation, "NOAA CO-OPS station id")
	f.StringVar(&cfg.WaveStation, "wave-station", cfg.WaveStation, "NDBC buoy id")
	f.Float64Var(&cfg.Latitude, "lat", cfg.Latitude, "latitude for temperatures and sun times")
	f.Float64Var(&cfg.Longitude, "lon", cfg.Longitude, "longitude for temperatures and sun times")
	f.IntVarP(&cfg.Days, "days", "d", cfg.Days, "calendar days of history, today included")
	f.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "IANA time zone of the tide station")
	f.DurationVar(&cfg.Tolerance, "tolerance", cfg.Tolerance, "widest gap between a tide time and its wave report")
	f.Float64Var(&cfg.SpikeK, "k", cfg.SpikeK, "spike threshold in standard deviations above the mean")
	f.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per request timeout")
	f.IntVar(&cfg.Retries, "retries", cfg.Retries, "retries on transient upstream failures")
	f.StringVar(&cfg.AdvisoryStart, "advisory-start", cfg.AdvisoryStart, "advisory window start, RFC3339")
	f.StringVar(&cfg.AdvisoryEnd, "advisory-end", cfg.AdvisoryEnd, "advisory window end, RFC3339")
	f.StringVarP(&outPath, "output", "o", "", "write to this file instead of stdout")

	rootCmd.Flags().StringVarP(&cfg.Consumer, "consumer", "c", cfg.Consumer,
		"one of "+strings.Join(pipeline.Consumers, ", "))

	for _, name := range pipeline.Consumers {
		name := name
		rootCmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: fmt.Sprintf("Render the %s consumer", name),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd.Context(), name)
			},
		})
	}
}

func run(ctx context.Context, consumer string) error {
	cfg.Consumer = consumer
	if err := cfg.Validate(); err != nil {
		return err
	}
	sources, err := pipeline.NewSources(cfg)
	if err != nil {
		return err
	}
	result, err := pipeline.New(cfg, sources).Run(ctx)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		return err
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := pipeline.Render(w, consumer, result, cfg); err != nil {
		return fmt.Errorf("render %s: %w", consumer, err)
	}
	if outPath != "" {
		log.Printf("[INFO] wrote %s to %s", consumer, outPath)
	}
	return nil
}
