package strategy

import (
	"context"

	"github.com/omnialpha/stock-selector/internal/types"
)

const (
	movingAverageLookback  = 20
	volumeBreakoutLookback = 6
	riseThreshold          = 2.0
	volumeRatioThreshold   = 1.5
	turnoverThreshold      = 5.0
)

// MovingAverage selects instruments in a confirmed short-over-long
// moving-average uptrend.
type MovingAverage struct{}

// NewMovingAverage creates the moving-average trend rule.
func NewMovingAverage() Strategy {
	return &MovingAverage{}
}

// Name implements Strategy.
func (s *MovingAverage) Name() string {
	return "MA_Trend"
}

// Description implements Strategy.
func (s *MovingAverage) Description() string {
	return "Moving Average Trend: Close > MA20 & MA5 > MA20"
}

// Evaluate implements Strategy.
func (s *MovingAverage) Evaluate(_ context.Context, code string, series types.BarSeries) (bool, types.Metrics) {
	bars, err := window(code, series, movingAverageLookback)
	if err != nil {
		return false, nil
	}

	closes := bars.Closes()
	price := closes[len(closes)-1]
	ma5 := mean(closes[len(closes)-5:])
	ma20 := mean(closes)

	if price <= ma20 || ma5 <= ma20 {
		return false, nil
	}

	// The last five day-over-day differences must all be strictly
	// positive so noisy crossovers don't slip through.
	for i := len(closes) - 5; i < len(closes); i++ {
		if closes[i]-closes[i-1] <= 0 {
			return false, nil
		}
	}

	return true, types.Metrics{
		"price": price,
		"MA5":   round2(ma5),
		"MA20":  round2(ma20),
	}
}

// VolumeBreakout selects instruments making a strong up-move on a volume
// spike against the 5-bar average volume.
type VolumeBreakout struct{}

// NewVolumeBreakout creates the volume-breakout rule.
func NewVolumeBreakout() Strategy {
	return &VolumeBreakout{}
}

// Name implements Strategy.
func (s *VolumeBreakout) Name() string {
	return "Volume_Breakout"
}

// Description implements Strategy.
func (s *VolumeBreakout) Description() string {
	return "Volume Breakout: Rise > 2% & Volume > 1.5 * MA_VOL5"
}

// Evaluate implements Strategy.
func (s *VolumeBreakout) Evaluate(_ context.Context, code string, series types.BarSeries) (bool, types.Metrics) {
	bars, err := window(code, series, volumeBreakoutLookback)
	if err != nil {
		return false, nil
	}

	last, _ := bars.Last()
	volumes := bars.Volumes()
	maVol5 := mean(volumes[len(volumes)-5:])

	if last.PctChg <= riseThreshold {
		return false, nil
	}

	if maVol5 <= 0 || last.Volume <= maVol5*volumeRatioThreshold {
		return false, nil
	}

	return true, types.Metrics{
		"price":     last.Close,
		"pctChg":    last.PctChg,
		"vol_ratio": round2(last.Volume / maVol5),
	}
}

// HighTurnover selects actively traded instruments while excluding
// special-treatment (ST) listings regardless of turnover.
type HighTurnover struct{}

// NewHighTurnover creates the high-turnover rule.
func NewHighTurnover() Strategy {
	return &HighTurnover{}
}

// Name implements Strategy.
func (s *HighTurnover) Name() string {
	return "High_Turnover"
}

// Description implements Strategy.
func (s *HighTurnover) Description() string {
	return "High Turnover: Turnover >= 5% & Not ST"
}

// Evaluate implements Strategy.
func (s *HighTurnover) Evaluate(_ context.Context, _ string, series types.BarSeries) (bool, types.Metrics) {
	last, ok := series.Last()
	if !ok {
		return false, nil
	}

	turnover := last.Turnover.TakeOr(0)
	if turnover < turnoverThreshold {
		return false, nil
	}

	if last.IsST.TakeOr("0") == "1" {
		return false, nil
	}

	return true, types.Metrics{
		"price":  last.Close,
		"turn":   round2(turnover),
		"pctChg": round2(last.PctChg),
	}
}
