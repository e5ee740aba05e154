package dataprovider

import (
	"context"
	"time"

	"github.com/moznion/go-optional"

	"github.com/omnialpha/stock-selector/internal/types"
)

// Provider is the market-data boundary the screener depends on. Login
// and Logout bracket a scan session; every Login must be paired with a
// Logout on all exit paths.
//
// GetDailyBars returns the trailing history ending at the evaluation
// date; an empty series means no usable history and is a skip, not an
// error. The fundamental lookups return None when the vendor has no
// record for the instrument.
type Provider interface {
	Login(ctx context.Context) error
	Logout() error
	// GetLatestTradingDate returns the most recent date with stored bars.
	GetLatestTradingDate(ctx context.Context) (time.Time, error)
	// GetIndexConstituents returns the default index membership as of date.
	GetIndexConstituents(ctx context.Context, date time.Time) ([]string, error)
	GetDailyBars(ctx context.Context, code string, date time.Time) (types.BarSeries, error)
	GetGrowthData(ctx context.Context, code string, year, quarter int) (optional.Option[types.GrowthData], error)
	GetProfitData(ctx context.Context, code string) (optional.Option[types.ProfitData], error)
	GetBalanceData(ctx context.Context, code string) (optional.Option[types.BalanceData], error)
}
