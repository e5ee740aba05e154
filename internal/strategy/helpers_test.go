package strategy

import (
	"context"
	"time"

	"github.com/moznion/go-optional"

	"github.com/omnialpha/stock-selector/internal/types"
)

// seriesFromCloses builds an ascending daily series with the given close
// prices and zero volume.
func seriesFromCloses(closes ...float64) types.BarSeries {
	series := make(types.BarSeries, len(closes))
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	for i, close := range closes {
		series[i] = types.Bar{
			Date:  start.AddDate(0, 0, i),
			Close: close,
		}
	}

	return series
}

// singleBar builds a one-bar series from the given bar, dated.
func singleBar(bar types.Bar) types.BarSeries {
	bar.Date = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	return types.BarSeries{bar}
}

// fakeFundamentals is an in-memory FundamentalsSource for strategy tests.
type fakeFundamentals struct {
	growth  optional.Option[types.GrowthData]
	profit  optional.Option[types.ProfitData]
	balance optional.Option[types.BalanceData]
	err     error

	gotCode    string
	gotYear    int
	gotQuarter int
}

func (f *fakeFundamentals) GetGrowthData(_ context.Context, code string, year, quarter int) (optional.Option[types.GrowthData], error) {
	f.gotCode = code
	f.gotYear = year
	f.gotQuarter = quarter

	if f.err != nil {
		return optional.None[types.GrowthData](), f.err
	}

	return f.growth, nil
}

func (f *fakeFundamentals) GetProfitData(_ context.Context, code string) (optional.Option[types.ProfitData], error) {
	f.gotCode = code

	if f.err != nil {
		return optional.None[types.ProfitData](), f.err
	}

	return f.profit, nil
}

func (f *fakeFundamentals) GetBalanceData(_ context.Context, code string) (optional.Option[types.BalanceData], error) {
	f.gotCode = code

	if f.err != nil {
		return optional.None[types.BalanceData](), f.err
	}

	return f.balance, nil
}
