package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/omnialpha/stock-selector/internal/config"
	"github.com/omnialpha/stock-selector/internal/dataprovider"
	"github.com/omnialpha/stock-selector/internal/engine"
	"github.com/omnialpha/stock-selector/internal/logger"
	"github.com/omnialpha/stock-selector/internal/pool"
	"github.com/omnialpha/stock-selector/internal/sink"
	"github.com/omnialpha/stock-selector/internal/strategy"
	"github.com/omnialpha/stock-selector/pkg/errors"
)

const dateLayout = "2006-01-02"

// selectAction is the core logic executed by the CLI command. It brackets
// a data-provider session around pool resolution, the scan itself and
// result persistence.
func selectAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.IsSet("file") && cmd.Bool("quick") {
		return errors.New(errors.ErrCodeInvalidConfiguration, "--file and --quick are mutually exclusive")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	provider, err := dataprovider.NewDuckDBProvider(cfg.DataPath, appLogger)
	if err != nil {
		return err
	}

	if err := provider.Login(ctx); err != nil {
		return err
	}
	defer func() {
		if err := provider.Logout(); err != nil {
			appLogger.Warn("logout failed", zap.Error(err))
		}
	}()

	date := cmd.Timestamp("date")
	if date.IsZero() {
		date, err = provider.GetLatestTradingDate(ctx)
		if err != nil {
			return err
		}

		appLogger.Info("auto-detected latest trading date",
			zap.String("date", date.Format(dateLayout)),
		)
	}

	registry := strategy.NewRegistry(provider)

	active, keys := resolveStrategies(registry, cmd.String("strategies"), appLogger)
	if len(active) == 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "no valid strategies selected")
	}

	codes, err := resolvePool(ctx, cmd, cfg, provider, date, appLogger)
	if err != nil {
		return err
	}

	if len(codes) == 0 {
		appLogger.Info("stock pool is empty, nothing to do")

		return nil
	}

	bar := progressbar.Default(int64(len(codes)), "scanning")
	onProgress := engine.OnProgress(func(fraction float64) {
		_ = bar.Set(int(fraction * float64(len(codes))))
	})

	results, err := engine.NewEngine(provider, appLogger).Run(ctx, codes, date, active, engine.Options{
		Mode:       engine.AggregationMode(cfg.Mode),
		Workers:    cfg.Workers,
		OnProgress: optional.Some(onProgress),
	})
	if err != nil {
		return err
	}

	writer, err := newWriter(cmd, cfg, date, keys, appLogger)
	if err != nil {
		return err
	}

	if _, err := writer.Write(results); err != nil {
		return err
	}

	return nil
}

func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()

	if cmd.IsSet("config") {
		loaded, err := config.Load(cmd.String("config"))
		if err != nil {
			return config.Config{}, err
		}

		cfg = loaded
	}

	// Flags win over the config file.
	if cmd.IsSet("data") {
		cfg.DataPath = cmd.String("data")
	}

	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}

	if cmd.IsSet("workers") {
		cfg.Workers = int(cmd.Int("workers"))
	}

	if cmd.IsSet("mode") {
		cfg.Mode = cmd.String("mode")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// resolveStrategies resolves the comma-separated key list against the
// registry, warning about and skipping unknown keys.
func resolveStrategies(registry *strategy.Registry, list string, appLogger *logger.Logger) ([]strategy.Strategy, []string) {
	var (
		active []strategy.Strategy
		keys   []string
	)

	for _, raw := range strings.Split(list, ",") {
		key := strings.TrimSpace(raw)
		if key == "" {
			continue
		}

		strat, err := registry.Resolve(key)
		if err != nil {
			appLogger.Warn("unknown strategy key, skipping",
				zap.String("key", key),
				zap.Strings("available", registry.Keys()),
			)

			continue
		}

		active = append(active, strat)
		keys = append(keys, key)
	}

	return active, keys
}

func resolvePool(ctx context.Context, cmd *cli.Command, cfg config.Config, provider dataprovider.Provider, date time.Time, appLogger *logger.Logger) ([]string, error) {
	var source pool.Source

	if cmd.IsSet("file") {
		appLogger.Info("loading stock pool from file",
			zap.String("path", cmd.String("file")),
		)

		source = &pool.FileSource{Path: cmd.String("file")}
	} else {
		limit := 0
		if cmd.Bool("quick") {
			appLogger.Info("quick mode enabled, truncating pool",
				zap.Int("limit", cfg.QuickSize),
			)

			limit = cfg.QuickSize
		}

		source = &pool.IndexSource{
			Provider: provider,
			Date:     date,
			Limit:    limit,
		}
	}

	return source.Codes(ctx)
}

func newWriter(cmd *cli.Command, cfg config.Config, date time.Time, keys []string, appLogger *logger.Logger) (sink.Writer, error) {
	output := cfg.Output
	if output == "" {
		output = fmt.Sprintf("selection_%s_%s.csv", date.Format(dateLayout), strings.Join(keys, "_"))
	}

	switch cmd.String("sink") {
	case "csv":
		return sink.NewCSVWriter(output, appLogger), nil
	case "duckdb":
		return sink.NewDuckDBWriter(cfg.DataPath, appLogger), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported sink %q", cmd.String("sink"))
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "selector",
		Usage: "Screen a stock pool against selection strategies",
		Flags: []cli.Flag{
			&cli.TimestampFlag{
				Name:    "date",
				Aliases: []string{"d"},
				Usage:   "Target date in `YYYY-MM-DD` format. Defaults to the latest trading date.",
				Config: cli.TimestampConfig{
					Layouts: []string{dateLayout},
				},
			},
			&cli.StringFlag{
				Name:    "strategies",
				Aliases: []string{"s"},
				Usage:   "Comma-separated list of strategy keys (e.g. ma,vol,pe)",
				Value:   "ma",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "CSV pool file with a \"code\" column; replaces the default index pool",
			},
			&cli.BoolFlag{
				Name:  "quick",
				Usage: "Quick mode: scan only the first constituents of the default index",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Match aggregation across strategies: any or all",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent scan workers; 1 scans sequentially",
			},
			&cli.StringFlag{
				Name:  "data",
				Usage: "Path to the DuckDB research database",
				Value: "data/market.duckdb",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path; defaults to selection_<date>_<keys>.csv",
			},
			&cli.StringFlag{
				Name:  "sink",
				Usage: "Result sink: csv or duckdb",
				Value: "csv",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file; flags override its values",
			},
		},
		Action: selectAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
