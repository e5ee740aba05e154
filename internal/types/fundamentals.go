package types

import "github.com/moznion/go-optional"

// GrowthData is one quarterly growth report row for an instrument.
type GrowthData struct {
	Code    string
	Year    int
	Quarter int
	// YOYNI is the year-over-year net profit growth for the period.
	YOYNI optional.Option[float64]
	// StatDate is the reporting period end date, YYYY-MM-DD.
	StatDate string
}

// ProfitData is one profitability report row for an instrument.
type ProfitData struct {
	Code string
	// ROE may arrive as a fraction (0.15) or as a percent (15.0).
	ROE      optional.Option[float64]
	StatDate string
}

// BalanceData is one balance-sheet report row for an instrument.
type BalanceData struct {
	Code string
	// LiabilityToAsset may arrive as a fraction or as a percent.
	LiabilityToAsset optional.Option[float64]
	StatDate         string
}
