package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// Bar is one day's trading snapshot for a single instrument. Fundamental
// fields are optional because vendor coverage varies across the pool;
// strategies treat an absent field as a no-match input, never a failure.
type Bar struct {
	Date   time.Time
	Close  float64
	Volume float64
	// PctChg is the day-over-day percentage change of the close.
	PctChg float64
	// Turnover is the daily turnover rate in percent.
	Turnover optional.Option[float64]
	// IsST carries the special-treatment flag; "1" marks an ST instrument.
	IsST optional.Option[string]
	// PETTM is the trailing-twelve-month price/earnings ratio.
	PETTM optional.Option[float64]
	// PBMRQ is the most-recent-quarter price/book ratio.
	PBMRQ optional.Option[float64]
	// YOYNI is the year-over-year net profit growth.
	YOYNI optional.Option[float64]
	// ROE is the return on equity.
	ROE optional.Option[float64]
	// LiabilityToAsset is the liability-to-asset ratio.
	LiabilityToAsset optional.Option[float64]
}

// BarSeries is the trailing history for exactly one instrument, ordered
// ascending by date with the most recent bar last. A series shorter than
// a strategy's lookback is a valid no-match input.
type BarSeries []Bar

// Len returns the number of bars in the series.
func (s BarSeries) Len() int {
	return len(s)
}

// Empty reports whether the series holds no bars.
func (s BarSeries) Empty() bool {
	return len(s) == 0
}

// Last returns the most recent bar, if any.
func (s BarSeries) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}

	return s[len(s)-1], true
}

// Closes returns the close prices in series order.
func (s BarSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}

	return closes
}

// Volumes returns the traded volumes in series order.
func (s BarSeries) Volumes() []float64 {
	volumes := make([]float64, len(s))
	for i, bar := range s {
		volumes[i] = bar.Volume
	}

	return volumes
}
