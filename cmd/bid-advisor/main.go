package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mwu243/kellogg-course-biddier/internal/config"
	"github.com/mwu243/kellogg-course-biddier/internal/forecast"
	appLogger "github.com/mwu243/kellogg-course-biddier/internal/logger"
	"github.com/mwu243/kellogg-course-biddier/internal/metrics"
	"github.com/mwu243/kellogg-course-biddier/internal/models"
	"github.com/mwu243/kellogg-course-biddier/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile  string
	inputFile   string
	metricsAddr string
	logger      *logrus.Logger
	cfg         *config.Config
	forecaster  *service.Forecaster
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "Course context JSON file")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while the command runs")

	curveCmd.Flags().Int("phase", 1, "Bidding phase to inspect")
	curveCmd.Flags().Float64("bid", 0, "Report the win probability for this bid amount")
	curveCmd.Flags().Float64("target", 0, "Report the bid needed for this win probability (0-1)")

	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(curveCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "bid-advisor",
	Short: "Forecast course auction clearing prices and recommend bids",
	Long:  `Turns a course's clearing-price history into per-phase price forecasts, bid recommendations and win-probability curves.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		if err := setup(); err != nil {
			return err
		}
		return nil
	},
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Print the four-phase forecast for a course",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := readContext()
		if err != nil {
			return err
		}
		forecast, err := forecaster.Forecast(ctx)
		if err != nil {
			return fmt.Errorf("forecast failed: %w", err)
		}
		displayForecast(forecast)
		return nil
	},
}

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the win-probability curve for one phase",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := readContext()
		if err != nil {
			return err
		}
		phaseArg, _ := cmd.Flags().GetInt("phase")
		phase, ok := models.ParsePhase(fmt.Sprintf("%d", phaseArg))
		if !ok {
			return fmt.Errorf("invalid phase %d", phaseArg)
		}

		forecast, err := forecaster.Forecast(ctx)
		if err != nil {
			return fmt.Errorf("forecast failed: %w", err)
		}
		result := forecast.Phases[phase]
		if result == nil || len(result.Curve) == 0 {
			return fmt.Errorf("no win-probability curve for phase %d", phaseArg)
		}

		bid, _ := cmd.Flags().GetFloat64("bid")
		target, _ := cmd.Flags().GetFloat64("target")
		displayCurve(result, bid, target)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bid-advisor %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = appLogger.NewLogger(cfg.App.LogLevel)
	forecaster = service.NewForecaster(cfg, logger)

	if metricsAddr != "" {
		metrics.InitRegistry()
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.WithError(err).Warn("Metrics server stopped")
			}
		}()
	}
	return nil
}

func readContext() (*models.CourseContext, error) {
	if inputFile == "" {
		return nil, fmt.Errorf("--input is required")
	}
	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	var ctx models.CourseContext
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("failed to parse course context: %w", err)
	}
	return &ctx, nil
}

func displayForecast(forecast *models.CompleteForecast) {
	fmt.Printf("\n%s\n", forecast.CourseName)
	fmt.Printf("Generated %s\n\n", forecast.GeneratedAt.Format("2006-01-02 15:04"))

	fmt.Printf("%-7s %10s %10s %12s %10s %-13s %-8s\n",
		"Phase", "Expected", "Safe", "Aggressive", "Minimum", "Confidence", "Trend")
	for _, phase := range models.AllPhases {
		result := forecast.Phases[phase]
		if result == nil {
			continue
		}
		marker := ""
		if result.Derived {
			marker = " (derived)"
		}
		fmt.Printf("%-7d %10.0f %10.0f %12.0f %10.0f %-13s %-8s%s\n",
			phase, result.ExpectedPrice, result.SafeBid, result.AggressiveBid,
			result.MinimumBid, result.Confidence, result.Trend.Direction, marker)
	}

	fmt.Printf("\nRecommendation: %s\n", forecast.Recommendation)
	if len(forecast.StrategyNotes) > 0 {
		fmt.Println("\nNotes:")
		for _, note := range forecast.StrategyNotes {
			fmt.Printf("  - %s\n", note)
		}
	}
	fmt.Println()
}

func displayCurve(result *models.ForecastResult, bid, target float64) {
	fmt.Printf("\nPhase %d win-probability curve (expected %.0f)\n\n", result.Phase, result.ExpectedPrice)

	points := make([]models.CurvePoint, len(result.Curve))
	copy(points, result.Curve)
	sort.Slice(points, func(i, j int) bool { return points[i].Bid < points[j].Bid })

	for _, point := range points {
		bar := ""
		for i := 0.0; i < point.Probability; i += 2.5 {
			bar += "#"
		}
		fmt.Printf("%8.0f  %5.1f%%  %s\n", point.Bid, point.Probability, bar)
	}

	if bid > 0 {
		fmt.Printf("\nBid %.0f wins with probability %.1f%%\n", bid, forecast.ProbabilityForBid(result.Curve, bid))
	}
	if target > 0 {
		fmt.Printf("Target probability %.0f%% needs a bid of %.0f\n", target*100, forecast.BidForTargetProbability(result.Curve, target*100))
	}
	fmt.Println()
}
