package strategy

import (
	"context"
	"fmt"

	"github.com/omnialpha/stock-selector/internal/types"
)

const (
	peLowerBound    = 0.0
	peUpperBound    = 30.0
	growthThreshold = 20.0
	roeThreshold    = 15.0
	debtThreshold   = 50.0

	// Growth reports are keyed to the Q3 filing of the evaluation year,
	// the latest quarter with broad coverage during a calendar year.
	growthQuarter = 3
)

// LowPE selects instruments with a positive, modest trailing
// price/earnings ratio, excluding loss-makers.
type LowPE struct{}

// NewLowPE creates the low-valuation rule.
func NewLowPE() Strategy {
	return &LowPE{}
}

// Name implements Strategy.
func (s *LowPE) Name() string {
	return "Value_LowPE"
}

// Description implements Strategy.
func (s *LowPE) Description() string {
	return "Low Valuation: 0 < PE_TTM <= 30"
}

// Evaluate implements Strategy.
func (s *LowPE) Evaluate(_ context.Context, _ string, series types.BarSeries) (bool, types.Metrics) {
	last, ok := series.Last()
	if !ok {
		return false, nil
	}

	if last.PETTM.IsNone() {
		return false, nil
	}

	pe := last.PETTM.Unwrap()
	if pe <= peLowerBound || pe > peUpperBound {
		return false, nil
	}

	return true, types.Metrics{
		"price": last.Close,
		"peTTM": round2(pe),
		"pbMRQ": round2(last.PBMRQ.TakeOr(0)),
	}
}

// HighGrowth selects instruments whose year-over-year net profit growth
// meets the threshold for the evaluation year's Q3 report.
type HighGrowth struct {
	source FundamentalsSource
}

// NewHighGrowth creates the high-growth rule reading reports from source.
func NewHighGrowth(source FundamentalsSource) Strategy {
	return &HighGrowth{source: source}
}

// Name implements Strategy.
func (s *HighGrowth) Name() string {
	return "High_Growth"
}

// Description implements Strategy.
func (s *HighGrowth) Description() string {
	return "High Growth: YoY net profit growth >= 20%"
}

// Evaluate implements Strategy.
func (s *HighGrowth) Evaluate(ctx context.Context, code string, series types.BarSeries) (bool, types.Metrics) {
	last, ok := series.Last()
	if !ok {
		return false, nil
	}

	// Fundamental coverage is partial across a large pool; a failed or
	// empty lookup screens the instrument out instead of aborting the scan.
	record, err := s.source.GetGrowthData(ctx, code, last.Date.Year(), growthQuarter)
	if err != nil || record.IsNone() {
		return false, nil
	}

	growth := record.Unwrap()
	if growth.YOYNI.IsNone() {
		return false, nil
	}

	yoyni := growth.YOYNI.Unwrap()
	if yoyni < growthThreshold {
		return false, nil
	}

	return true, types.Metrics{
		"price":    last.Close,
		"YOYNI":    round2(yoyni),
		"statDate": growth.StatDate,
	}
}

// HighROE selects instruments whose return on equity meets the threshold.
type HighROE struct {
	source FundamentalsSource
}

// NewHighROE creates the high-ROE rule reading reports from source.
func NewHighROE(source FundamentalsSource) Strategy {
	return &HighROE{source: source}
}

// Name implements Strategy.
func (s *HighROE) Name() string {
	return "High_ROE"
}

// Description implements Strategy.
func (s *HighROE) Description() string {
	return "High ROE: return on equity >= 15%"
}

// Evaluate implements Strategy.
func (s *HighROE) Evaluate(ctx context.Context, code string, series types.BarSeries) (bool, types.Metrics) {
	last, ok := series.Last()
	if !ok {
		return false, nil
	}

	record, err := s.source.GetProfitData(ctx, code)
	if err != nil || record.IsNone() {
		return false, nil
	}

	profit := record.Unwrap()
	if profit.ROE.IsNone() {
		return false, nil
	}

	roe := normalizePercent(profit.ROE.Unwrap())
	if roe < roeThreshold {
		return false, nil
	}

	return true, types.Metrics{
		"price":    last.Close,
		"ROE":      fmt.Sprintf("%.2f%%", roe),
		"statDate": profit.StatDate,
	}
}

// LowDebt selects instruments with a conservative balance sheet.
type LowDebt struct {
	source FundamentalsSource
}

// NewLowDebt creates the low-debt rule reading reports from source.
func NewLowDebt(source FundamentalsSource) Strategy {
	return &LowDebt{source: source}
}

// Name implements Strategy.
func (s *LowDebt) Name() string {
	return "Low_Debt"
}

// Description implements Strategy.
func (s *LowDebt) Description() string {
	return "Low Debt: liability-to-asset ratio <= 50%"
}

// Evaluate implements Strategy.
func (s *LowDebt) Evaluate(ctx context.Context, code string, series types.BarSeries) (bool, types.Metrics) {
	last, ok := series.Last()
	if !ok {
		return false, nil
	}

	record, err := s.source.GetBalanceData(ctx, code)
	if err != nil || record.IsNone() {
		return false, nil
	}

	balance := record.Unwrap()
	if balance.LiabilityToAsset.IsNone() {
		return false, nil
	}

	ratio := normalizePercent(balance.LiabilityToAsset.Unwrap())
	if ratio > debtThreshold {
		return false, nil
	}

	return true, types.Metrics{
		"price":            last.Close,
		"liabilityToAsset": fmt.Sprintf("%.2f%%", ratio),
		"statDate":         balance.StatDate,
	}
}
