// Package main provides the entry point for the batch forecasting CLI tool.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mwu243/kellogg-course-biddier/internal/config"
	"github.com/mwu243/kellogg-course-biddier/internal/logger"
	"github.com/mwu243/kellogg-course-biddier/internal/models"
	"github.com/mwu243/kellogg-course-biddier/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		inputPath  = flag.String("input", "-", "Course context JSON file, or - for stdin")
		outputPath = flag.String("output", "-", "Output path for forecasts, or - for stdout")
		pretty     = flag.Bool("pretty", false, "Indent the JSON output")
	)
	flag.Parse()

	cfg := loadConfig(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel)

	contexts := readContexts(*inputPath, log)
	if len(contexts) == 0 {
		log.Fatal("No course contexts in input")
	}

	forecaster := service.NewForecaster(cfg, log)
	forecasts := forecaster.ForecastAll(contexts)
	if len(forecasts) == 0 {
		log.Fatal("No course could be forecast")
	}

	writeForecasts(*outputPath, forecasts, *pretty, log)
	log.WithFields(logrus.Fields{
		"courses":   len(contexts),
		"forecasts": len(forecasts),
	}).Info("Forecast run complete")
}

func loadConfig(path string) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// readContexts accepts either a single course context object or an array of
// them.
func readContexts(path string, log *logrus.Logger) []*models.CourseContext {
	var reader io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			log.Fatalf("Failed to open input: %v", err)
		}
		defer file.Close()
		reader = file
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	var contexts []*models.CourseContext
	if err := json.Unmarshal(raw, &contexts); err == nil {
		return contexts
	}

	var single models.CourseContext
	if err := json.Unmarshal(raw, &single); err != nil {
		log.Fatalf("Input is neither a course context nor a list of them: %v", err)
	}
	return []*models.CourseContext{&single}
}

func writeForecasts(path string, forecasts []*models.CompleteForecast, pretty bool, log *logrus.Logger) {
	var writer io.Writer = os.Stdout
	if path != "-" {
		file, err := os.Create(path)
		if err != nil {
			log.Fatalf("Failed to create output: %v", err)
		}
		defer file.Close()
		writer = file
	}

	encoder := json.NewEncoder(writer)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(forecasts); err != nil {
		log.Fatalf("Failed to write forecasts: %v", err)
	}
}
