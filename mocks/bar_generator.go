package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/moznion/go-optional"

	"github.com/omnialpha/stock-selector/internal/types"
)

// BarGenerator generates realistic daily bar series for testing and
// benchmarking.
type BarGenerator struct {
	rng *rand.Rand
}

// NewBarGenerator creates a new BarGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewBarGenerator(seed int64) *BarGenerator {
	return &BarGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how a bar series is generated.
type GeneratorConfig struct {
	// StartDate is the date of the first bar.
	StartDate time.Time
	// Count is the number of daily bars to generate.
	Count int
	// InitialPrice is the starting close price.
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical daily volatility).
	Volatility float64
	// Trend is the drift factor (-0.01 to 0.01 for bearish to bullish).
	Trend float64
	// VolumeBase is the average volume per bar.
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0).
	VolumeVariance float64
	// Turnover, when set, is stamped onto every bar.
	Turnover optional.Option[float64]
	// PETTM, when set, is stamped onto every bar.
	PETTM optional.Option[float64]
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartDate:      time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Count:          60,
		InitialPrice:   100.0,
		Volatility:     0.01,
		Trend:          0.0,
		VolumeBase:     10000,
		VolumeVariance: 0.3,
	}
}

// Generate produces an ascending daily series under the configuration.
func (g *BarGenerator) Generate(config GeneratorConfig) types.BarSeries {
	series := make(types.BarSeries, 0, config.Count)
	price := config.InitialPrice

	for i := 0; i < config.Count; i++ {
		previous := price
		move := config.Trend + config.Volatility*g.rng.NormFloat64()
		price = math.Max(0.01, price*(1+move))

		volume := config.VolumeBase * (1 + config.VolumeVariance*(2*g.rng.Float64()-1))

		pctChg := 0.0
		if previous > 0 {
			pctChg = (price - previous) / previous * 100
		}

		series = append(series, types.Bar{
			Date:     config.StartDate.AddDate(0, 0, i),
			Close:    price,
			Volume:   volume,
			PctChg:   pctChg,
			Turnover: config.Turnover,
			PETTM:    config.PETTM,
		})
	}

	return series
}
