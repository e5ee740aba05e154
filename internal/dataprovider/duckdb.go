package dataprovider

import (
	"context"
	"database/sql"
	"slices"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/omnialpha/stock-selector/internal/logger"
	"github.com/omnialpha/stock-selector/internal/types"
	"github.com/omnialpha/stock-selector/pkg/errors"
)

// defaultLookback is the trailing window fetched per instrument; 60
// daily bars comfortably covers the longest strategy lookback.
const defaultLookback = 60

// DuckDBProvider serves bars and fundamental reports from a local DuckDB
// research database.
type DuckDBProvider struct {
	db       *sql.DB
	log      *logger.Logger
	sq       squirrel.StatementBuilderType
	lookback int
}

// NewDuckDBProvider opens the research database at path. Use ":memory:"
// for an ephemeral database.
func NewDuckDBProvider(path string, log *logger.Logger) (*DuckDBProvider, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open research database", err)
	}

	return &DuckDBProvider{
		db:       db,
		log:      log,
		sq:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		lookback: defaultLookback,
	}, nil
}

// Login implements Provider. It verifies the connection and ensures the
// schema exists, bracketing the scan session together with Logout.
func (p *DuckDBProvider) Login(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeSessionFailed, "login failed", err)
	}

	if err := p.ensureSchema(ctx); err != nil {
		return err
	}

	p.log.Debug("data provider session opened")

	return nil
}

// Logout implements Provider.
func (p *DuckDBProvider) Logout() error {
	p.log.Debug("data provider session closed")

	return p.db.Close()
}

func (p *DuckDBProvider) ensureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS daily_bars (
			code VARCHAR NOT NULL,
			date TIMESTAMP NOT NULL,
			close DOUBLE NOT NULL,
			volume DOUBLE NOT NULL,
			pct_chg DOUBLE NOT NULL,
			turn DOUBLE,
			is_st VARCHAR,
			pe_ttm DOUBLE,
			pb_mrq DOUBLE,
			yoy_ni DOUBLE,
			roe DOUBLE,
			liability_to_asset DOUBLE
		);
		CREATE TABLE IF NOT EXISTS index_constituents (
			date TIMESTAMP NOT NULL,
			code VARCHAR NOT NULL
		);
		CREATE TABLE IF NOT EXISTS growth_data (
			code VARCHAR NOT NULL,
			year INTEGER NOT NULL,
			quarter INTEGER NOT NULL,
			yoy_ni DOUBLE,
			stat_date VARCHAR
		);
		CREATE TABLE IF NOT EXISTS profit_data (
			code VARCHAR NOT NULL,
			roe DOUBLE,
			stat_date VARCHAR
		);
		CREATE TABLE IF NOT EXISTS balance_data (
			code VARCHAR NOT NULL,
			liability_to_asset DOUBLE,
			stat_date VARCHAR
		);
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to create schema", err)
	}

	return nil
}

// GetLatestTradingDate implements Provider.
func (p *DuckDBProvider) GetLatestTradingDate(ctx context.Context) (time.Time, error) {
	var latest sql.NullTime

	row := p.db.QueryRowContext(ctx, `SELECT MAX(date) FROM daily_bars`)
	if err := row.Scan(&latest); err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query latest trading date", err)
	}

	if !latest.Valid {
		return time.Time{}, errors.New(errors.ErrCodeDataNotFound, "no trading dates stored")
	}

	return latest.Time, nil
}

// GetIndexConstituents implements Provider. It returns the membership
// snapshot closest at or before the given date, in code order.
func (p *DuckDBProvider) GetIndexConstituents(ctx context.Context, date time.Time) ([]string, error) {
	query, args, err := p.sq.
		Select("code").
		From("index_constituents").
		Where(squirrel.Expr("date = (SELECT MAX(date) FROM index_constituents WHERE date <= ?)", date)).
		OrderBy("code").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build constituents query", err)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query index constituents", err)
	}
	defer rows.Close()

	var codes []string

	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan constituent row", err)
		}

		codes = append(codes, code)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read constituent rows", err)
	}

	return codes, nil
}

// GetDailyBars implements Provider. The stored rows are read newest
// first and reversed into the ascending series contract.
func (p *DuckDBProvider) GetDailyBars(ctx context.Context, code string, date time.Time) (types.BarSeries, error) {
	query, args, err := p.sq.
		Select("date", "close", "volume", "pct_chg", "turn", "is_st", "pe_ttm", "pb_mrq", "yoy_ni", "roe", "liability_to_asset").
		From("daily_bars").
		Where(squirrel.Eq{"code": code}).
		Where(squirrel.LtOrEq{"date": date}).
		OrderBy("date DESC").
		Limit(uint64(p.lookback)).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build bars query", err)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query daily bars for %s", code)
	}
	defer rows.Close()

	var series types.BarSeries

	for rows.Next() {
		var (
			bar                                  types.Bar
			turn, peTTM, pbMRQ, yoyNI, roe, debt sql.NullFloat64
			isST                                 sql.NullString
		)

		err := rows.Scan(&bar.Date, &bar.Close, &bar.Volume, &bar.PctChg, &turn, &isST, &peTTM, &pbMRQ, &yoyNI, &roe, &debt)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar row", err)
		}

		bar.Turnover = optionalFloat(turn)
		bar.IsST = optionalString(isST)
		bar.PETTM = optionalFloat(peTTM)
		bar.PBMRQ = optionalFloat(pbMRQ)
		bar.YOYNI = optionalFloat(yoyNI)
		bar.ROE = optionalFloat(roe)
		bar.LiabilityToAsset = optionalFloat(debt)

		series = append(series, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read bar rows", err)
	}

	slices.Reverse(series)

	p.log.Debug("fetched daily bars",
		zap.String("code", code),
		zap.Int("bars", series.Len()),
	)

	return series, nil
}

// GetGrowthData implements Provider.
func (p *DuckDBProvider) GetGrowthData(ctx context.Context, code string, year, quarter int) (optional.Option[types.GrowthData], error) {
	query, args, err := p.sq.
		Select("code", "year", "quarter", "yoy_ni", "stat_date").
		From("growth_data").
		Where(squirrel.Eq{"code": code, "year": year, "quarter": quarter}).
		Limit(1).
		ToSql()
	if err != nil {
		return optional.None[types.GrowthData](), errors.Wrap(errors.ErrCodeQueryFailed, "failed to build growth query", err)
	}

	var (
		record   types.GrowthData
		yoyNI    sql.NullFloat64
		statDate sql.NullString
	)

	row := p.db.QueryRowContext(ctx, query, args...)

	err = row.Scan(&record.Code, &record.Year, &record.Quarter, &yoyNI, &statDate)
	if err == sql.ErrNoRows {
		return optional.None[types.GrowthData](), nil
	}

	if err != nil {
		return optional.None[types.GrowthData](), errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query growth data for %s", code)
	}

	record.YOYNI = optionalFloat(yoyNI)
	record.StatDate = statDate.String

	return optional.Some(record), nil
}

// GetProfitData implements Provider.
func (p *DuckDBProvider) GetProfitData(ctx context.Context, code string) (optional.Option[types.ProfitData], error) {
	query, args, err := p.sq.
		Select("code", "roe", "stat_date").
		From("profit_data").
		Where(squirrel.Eq{"code": code}).
		OrderBy("stat_date DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return optional.None[types.ProfitData](), errors.Wrap(errors.ErrCodeQueryFailed, "failed to build profit query", err)
	}

	var (
		record   types.ProfitData
		roe      sql.NullFloat64
		statDate sql.NullString
	)

	row := p.db.QueryRowContext(ctx, query, args...)

	err = row.Scan(&record.Code, &roe, &statDate)
	if err == sql.ErrNoRows {
		return optional.None[types.ProfitData](), nil
	}

	if err != nil {
		return optional.None[types.ProfitData](), errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query profit data for %s", code)
	}

	record.ROE = optionalFloat(roe)
	record.StatDate = statDate.String

	return optional.Some(record), nil
}

// GetBalanceData implements Provider.
func (p *DuckDBProvider) GetBalanceData(ctx context.Context, code string) (optional.Option[types.BalanceData], error) {
	query, args, err := p.sq.
		Select("code", "liability_to_asset", "stat_date").
		From("balance_data").
		Where(squirrel.Eq{"code": code}).
		OrderBy("stat_date DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return optional.None[types.BalanceData](), errors.Wrap(errors.ErrCodeQueryFailed, "failed to build balance query", err)
	}

	var (
		record   types.BalanceData
		ratio    sql.NullFloat64
		statDate sql.NullString
	)

	row := p.db.QueryRowContext(ctx, query, args...)

	err = row.Scan(&record.Code, &ratio, &statDate)
	if err == sql.ErrNoRows {
		return optional.None[types.BalanceData](), nil
	}

	if err != nil {
		return optional.None[types.BalanceData](), errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query balance data for %s", code)
	}

	record.LiabilityToAsset = optionalFloat(ratio)
	record.StatDate = statDate.String

	return optional.Some(record), nil
}

func optionalFloat(v sql.NullFloat64) optional.Option[float64] {
	if !v.Valid {
		return optional.None[float64]()
	}

	return optional.Some(v.Float64)
}

func optionalString(v sql.NullString) optional.Option[string] {
	if !v.Valid {
		return optional.None[string]()
	}

	return optional.Some(v.String)
}
