package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/omnialpha/stock-selector/internal/logger"
	"github.com/omnialpha/stock-selector/internal/strategy"
	"github.com/omnialpha/stock-selector/internal/types"
	"github.com/omnialpha/stock-selector/pkg/errors"
)

// BarSource supplies per-instrument trailing history for one evaluation
// date. An empty series means the instrument has no usable history and
// is skipped, not an error.
type BarSource interface {
	GetDailyBars(ctx context.Context, code string, date time.Time) (types.BarSeries, error)
}

// AggregationMode selects how matches across strategies combine into rows.
type AggregationMode string

const (
	// ModeAny lists an instrument once per matching strategy.
	ModeAny AggregationMode = "any"
	// ModeAll lists an instrument once, only when every active strategy
	// matched; the row carries the joined strategy labels and the union
	// of their metrics.
	ModeAll AggregationMode = "all"
)

// OnProgress receives the scanned fraction of the pool in [0, 1].
// Invocations are serialized and the reported values never decrease.
type OnProgress func(fraction float64)

// Options tune a single scan.
type Options struct {
	// Mode defaults to ModeAny when empty.
	Mode AggregationMode
	// Workers bounds the concurrent fetch fan-out. Values below 2 run
	// the scan as a sequential loop.
	Workers int
	// OnProgress, when present, observes scan completion fractions.
	OnProgress optional.Option[OnProgress]
}

// Engine drives a screen of an instrument pool against the active
// strategies for one evaluation date.
type Engine struct {
	source BarSource
	log    *logger.Logger
}

// NewEngine creates an analysis engine reading history from source.
func NewEngine(source BarSource, log *logger.Logger) *Engine {
	return &Engine{
		source: source,
		log:    log,
	}
}

// Run screens the pool in order. Each instrument's history is fetched
// exactly once regardless of how many strategies are active; result rows
// preserve pool order and, within one instrument, active-strategy order.
// An empty pool returns immediately without contacting the bar source.
func (e *Engine) Run(ctx context.Context, pool []string, date time.Time, strategies []strategy.Strategy, opts Options) ([]types.MatchResult, error) {
	if len(strategies) == 0 {
		return nil, errors.New(errors.ErrCodeEngineNoStrategies, "no active strategies")
	}

	mode := opts.Mode
	if mode == "" {
		mode = ModeAny
	}

	if mode != ModeAny && mode != ModeAll {
		return nil, errors.Newf(errors.ErrCodeInvalidMode, "unknown aggregation mode %q", mode)
	}

	if len(pool) == 0 {
		return nil, nil
	}

	e.log.Info("engine started",
		zap.Int("pool_size", len(pool)),
		zap.Int("strategies", len(strategies)),
		zap.String("mode", string(mode)),
		zap.Int("workers", opts.Workers),
	)

	if opts.Workers > 1 {
		return e.runParallel(ctx, pool, date, strategies, mode, opts)
	}

	return e.runSequential(ctx, pool, date, strategies, mode, opts)
}

func (e *Engine) runSequential(ctx context.Context, pool []string, date time.Time, strategies []strategy.Strategy, mode AggregationMode, opts Options) ([]types.MatchResult, error) {
	var results []types.MatchResult

	for i, code := range pool {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeScanCanceled, "scan canceled", err)
		}

		rows, err := e.scanOne(ctx, code, date, strategies, mode)
		if err != nil {
			return nil, err
		}

		results = append(results, rows...)
		reportProgress(opts.OnProgress, i+1, len(pool))
	}

	return results, nil
}

// runParallel fans the pool out over a bounded worker group and collects
// rows into an order-indexed buffer so the pool-order guarantee holds
// regardless of completion order.
func (e *Engine) runParallel(ctx context.Context, pool []string, date time.Time, strategies []strategy.Strategy, mode AggregationMode, opts Options) ([]types.MatchResult, error) {
	type job struct {
		idx  int
		code string
	}

	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := opts.Workers
	if workers > len(pool) {
		workers = len(pool)
	}

	jobs := make(chan job)
	buffered := make([][]types.MatchResult, len(pool))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		done    int
		scanErr error
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range jobs {
				rows, err := e.scanOne(scanCtx, j.code, date, strategies, mode)

				// The mutex both guards the shared counters and
				// serializes progress callbacks so observed fractions
				// are monotonically non-decreasing. The first recorded
				// error is the root cause; failures of jobs the cancel
				// itself interrupts never overwrite it.
				mu.Lock()
				buffered[j.idx] = rows
				if err != nil && scanErr == nil {
					scanErr = err
				}
				done++
				reportProgress(opts.OnProgress, done, len(pool))
				mu.Unlock()

				if err != nil {
					cancel()
				}
			}
		}()
	}

feed:
	for i, code := range pool {
		select {
		case jobs <- job{idx: i, code: code}:
		case <-scanCtx.Done():
			break feed
		}
	}

	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeScanCanceled, "scan canceled", err)
	}

	if scanErr != nil {
		return nil, scanErr
	}

	var results []types.MatchResult
	for _, rows := range buffered {
		results = append(results, rows...)
	}

	return results, nil
}

// scanOne fetches the instrument's history once and evaluates every
// active strategy against that single series.
func (e *Engine) scanOne(ctx context.Context, code string, date time.Time, strategies []strategy.Strategy, mode AggregationMode) ([]types.MatchResult, error) {
	series, err := e.source.GetDailyBars(ctx, code, date)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to fetch daily bars for %s", code)
	}

	if series.Empty() {
		e.log.Debug("no history, skipping instrument", zap.String("code", code))

		return nil, nil
	}

	var rows []types.MatchResult

	for _, strat := range strategies {
		matched, metrics := strat.Evaluate(ctx, code, series)
		if !matched {
			if mode == ModeAll {
				return nil, nil
			}

			continue
		}

		rows = append(rows, types.MatchResult{
			Date:     date,
			Code:     code,
			Strategy: strat.Name(),
			Metrics:  metrics,
		})
	}

	if mode == ModeAll {
		return []types.MatchResult{mergeAll(rows, date, code)}, nil
	}

	return rows, nil
}

// mergeAll folds the per-strategy rows of a fully matching instrument
// into a single row with joined labels and the union of metrics; later
// strategies win key collisions.
func mergeAll(rows []types.MatchResult, date time.Time, code string) types.MatchResult {
	names := make([]string, 0, len(rows))
	merged := types.Metrics{}

	for _, row := range rows {
		names = append(names, row.Strategy)

		for key, value := range row.Metrics {
			merged[key] = value
		}
	}

	return types.MatchResult{
		Date:     date,
		Code:     code,
		Strategy: strings.Join(names, ","),
		Metrics:  merged,
	}
}

func reportProgress(callback optional.Option[OnProgress], done, total int) {
	if callback.IsNone() {
		return
	}

	callback.Unwrap()(float64(done) / float64(total))
}
