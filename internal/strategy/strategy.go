package strategy

import (
	"context"
	"math"

	"github.com/moznion/go-optional"

	"github.com/omnialpha/stock-selector/internal/types"
	"github.com/omnialpha/stock-selector/pkg/errors"
)

// Strategy is a stateless selection rule. Implementations hold no
// per-evaluation state and are safe for concurrent use. Evaluate never
// returns an error: an empty series, a series shorter than the rule's
// lookback, or an absent field all resolve as a no-match with nil
// metrics.
type Strategy interface {
	// Name is the stable label written into result rows.
	Name() string
	// Description is a human-readable summary of the rule.
	Description() string
	// Evaluate decides whether the instrument matches and returns the
	// supporting metrics for a match.
	Evaluate(ctx context.Context, code string, series types.BarSeries) (bool, types.Metrics)
}

// FundamentalsSource is the subset of the data provider the fundamental
// strategies fetch report records from. A None record means the vendor
// has no coverage for the instrument.
type FundamentalsSource interface {
	GetGrowthData(ctx context.Context, code string, year, quarter int) (optional.Option[types.GrowthData], error)
	GetProfitData(ctx context.Context, code string) (optional.Option[types.ProfitData], error)
	GetBalanceData(ctx context.Context, code string) (optional.Option[types.BalanceData], error)
}

// window returns the trailing n bars of the instrument's series. Stored
// history shorter than the lookback yields an InsufficientDataError
// carrying the shortfall; callers resolve it as a no-match.
func window(code string, series types.BarSeries, n int) (types.BarSeries, error) {
	if series.Len() < n {
		return nil, errors.NewInsufficientDataErrorf(n, series.Len(), code,
			"need %d bars for %s, have %d", n, code, series.Len())
	}

	return series[series.Len()-n:], nil
}

// round2 rounds metric values to 2 decimal places for display consistency.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// normalizePercent scales report ratios to percentage points. Vendors
// deliver figures either as fractions (0.15) or already as percents
// (15.0); magnitudes at or below 1 are treated as fractions.
func normalizePercent(v float64) float64 {
	if math.Abs(v) <= 1 {
		return v * 100
	}

	return v
}
