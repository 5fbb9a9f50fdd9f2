// Command cycleswatch detects dominant price cycles in a daily series.
//
// Usage:
//
//	cycleswatch [flags]
//
// Modes:
//
//	-mode scan    analyze the most recent window and print ranked peaks
//	-mode watch   roll the analysis back through history, one result per step
//
// Examples:
//
//	cycleswatch -input tlt_prices.txt
//	cycleswatch -input tlt_prices.txt -min 30 -max 1000 -chart spectrum.html
//	cycleswatch -mode watch -input tlt_prices.txt -window 4000 -min 100 -max 800 -heatmap weekly.html
//	cycleswatch -mode scan -rate -db cycles.db
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/bernie-sg/riley-cycles-watch/internal/config"
	"github.com/bernie-sg/riley-cycles-watch/internal/priceio"
	"github.com/bernie-sg/riley-cycles-watch/internal/render"
	"github.com/bernie-sg/riley-cycles-watch/internal/store"
	"github.com/bernie-sg/riley-cycles-watch/scan"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cycleswatch: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "cycleswatch.yaml", "YAML config file (optional)")
	mode := flag.String("mode", "scan", "analysis mode: scan or watch")
	input := flag.String("input", "", "price file (whitespace-separated daily closes, oldest first)")
	symbol := flag.String("symbol", "", "symbol label for reports")
	window := flag.Int("window", 0, "analysis window in trading days")
	minPeriod := flag.Int("min", 0, "minimum scanned period in trading days")
	maxPeriod := flag.Int("max", 0, "maximum scanned period in trading days")
	stepDays := flag.Int("step", 0, "trading days per rolling step")
	offsets := flag.Int("offsets", -1, "rolling offsets to analyze after the most recent window")
	workers := flag.Int("workers", 0, "goroutines per band scan")
	rate := flag.Bool("rate", false, "compute Bartels genuineness scores for detected peaks")
	chart := flag.String("chart", "", "write spectrum chart HTML to this path (scan mode)")
	heatmap := flag.String("heatmap", "", "write rolling heatmap HTML to this path (watch mode)")
	dbPath := flag.String("db", "", "record results into this SQLite database")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// Flags override file and environment.
	if *input != "" {
		cfg.Input = *input
	}
	if *symbol != "" {
		cfg.Symbol = *symbol
	}
	if *window > 0 {
		cfg.Scan.Window = *window
	}
	if *minPeriod > 0 {
		cfg.Scan.MinPeriod = *minPeriod
	}
	if *maxPeriod > 0 {
		cfg.Scan.MaxPeriod = *maxPeriod
	}
	if *stepDays > 0 {
		cfg.Scan.StepDays = *stepDays
	}
	if *offsets >= 0 {
		cfg.Scan.MaxOffsets = *offsets
	}
	if *workers > 0 {
		cfg.Scan.Workers = *workers
	}
	if *chart != "" {
		cfg.Output.Chart = *chart
	}
	if *heatmap != "" {
		cfg.Output.Heatmap = *heatmap
	}
	if *dbPath != "" {
		cfg.Output.SQLitePath = *dbPath
	}

	log := newLogger(cfg)

	prices, err := priceio.Load(cfg.Input)
	if err != nil {
		return err
	}

	log.Info().
		Str("symbol", cfg.Symbol).
		Int("days", len(prices)).
		Int("min_period", cfg.Scan.MinPeriod).
		Int("max_period", cfg.Scan.MaxPeriod).
		Msg("price series loaded")

	recorder, err := newRecorder(cfg)
	if err != nil {
		return err
	}
	defer recorder.Close()

	opts := []scan.Option{
		scan.WithWindow(cfg.Scan.Window),
		scan.WithBand(cfg.Scan.MinPeriod, cfg.Scan.MaxPeriod),
		scan.WithStep(cfg.Scan.StepDays),
		scan.WithMaxOffsets(cfg.Scan.MaxOffsets),
		scan.WithPeakThreshold(cfg.Scan.PeakThreshold),
		scan.WithWorkers(cfg.Scan.Workers),
	}

	switch *mode {
	case "scan":
		return runScan(cfg, prices, opts, *rate, recorder, log)
	case "watch":
		return runWatch(cfg, prices, opts, recorder, log)
	default:
		return fmt.Errorf("unknown mode %q (want scan or watch)", *mode)
	}
}

func runScan(cfg *config.Config, prices []float64, opts []scan.Option, rate bool,
	recorder store.Recorder, log zerolog.Logger,
) error {
	log.Info().Int("window", cfg.Scan.Window).Msg("scanning most recent window")

	res, err := scan.Single(prices, opts...)
	if err != nil {
		return err
	}

	var scores []float64
	if rate {
		scores, err = ratePeaks(cfg, prices, res)
		if err != nil {
			return err
		}
	}

	if err := render.PeakTable(os.Stdout, res.Peaks, scores); err != nil {
		return err
	}

	if cfg.Output.Chart != "" {
		title := fmt.Sprintf("%s High-Q Wavelet Spectrum", cfg.Symbol)
		if err := writeHTML(cfg.Output.Chart, func(f *os.File) error {
			return render.SpectrumChart(f, res, title)
		}); err != nil {
			return err
		}

		log.Info().Str("path", cfg.Output.Chart).Msg("spectrum chart written")
	}

	runID, err := recorder.RecordRun(cfg.Symbol, scanConfig(cfg), []scan.WindowResult{*res})
	if err != nil {
		return err
	}
	if runID != 0 {
		log.Info().Int64("run_id", runID).Msg("results recorded")
	}

	return nil
}

func runWatch(cfg *config.Config, prices []float64, opts []scan.Option,
	recorder store.Recorder, log zerolog.Logger,
) error {
	log.Info().
		Int("window", cfg.Scan.Window).
		Int("step_days", cfg.Scan.StepDays).
		Int("max_offsets", cfg.Scan.MaxOffsets).
		Msg("rolling analysis started")

	opts = append(opts, scan.WithProgress(func(offset, completed int) {
		if offset%20 == 0 {
			log.Info().Int("offset", offset).Int("completed", completed).Msg("rolling progress")
		} else {
			log.Debug().Int("offset", offset).Msg("window analyzed")
		}
	}))

	results, err := scan.Rolling(prices, opts...)
	if err != nil {
		return err
	}

	log.Info().Int("windows", len(results)).Msg("rolling analysis complete")

	for _, wr := range results {
		line := fmt.Sprintf("offset %3d:", wr.Offset)
		for _, p := range wr.Peaks {
			if p.Power > 0.2 {
				line += fmt.Sprintf(" %dd(%.0f%%)", render.CalendarDays(p.Period), p.Power*100)
			}
		}
		fmt.Println(line)
	}

	if cfg.Output.Heatmap != "" {
		title := fmt.Sprintf("%s Cycle Evolution", cfg.Symbol)
		if err := writeHTML(cfg.Output.Heatmap, func(f *os.File) error {
			return render.Heatmap(f, results, title)
		}); err != nil {
			return err
		}

		log.Info().Str("path", cfg.Output.Heatmap).Msg("heatmap written")
	}

	runID, err := recorder.RecordRun(cfg.Symbol, scanConfig(cfg), results)
	if err != nil {
		return err
	}
	if runID != 0 {
		log.Info().Int64("run_id", runID).Msg("results recorded")
	}

	return nil
}

// ratePeaks recomputes the detrended window used by Single and scores each
// detected peak's bandpass wave.
func ratePeaks(cfg *config.Config, prices []float64, res *scan.WindowResult) ([]float64, error) {
	w := cfg.Scan.Window
	if w > len(prices) {
		w = len(prices)
	}

	detrended, err := scan.LogDetrend(prices[len(prices)-w:])
	if err != nil {
		return nil, err
	}

	return scan.RatePeaks(detrended, res.Peaks)
}

func scanConfig(cfg *config.Config) scan.Config {
	return scan.ApplyOptions(
		scan.WithWindow(cfg.Scan.Window),
		scan.WithBand(cfg.Scan.MinPeriod, cfg.Scan.MaxPeriod),
		scan.WithStep(cfg.Scan.StepDays),
		scan.WithMaxOffsets(cfg.Scan.MaxOffsets),
	)
}

func newRecorder(cfg *config.Config) (store.Recorder, error) {
	if cfg.Output.SQLitePath == "" {
		return store.Noop{}, nil
	}

	return store.NewSQLite(cfg.Output.SQLitePath)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr)
	if cfg.Log.Format != "json" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return logger.Level(level).With().Timestamp().Logger()
}

func writeHTML(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
