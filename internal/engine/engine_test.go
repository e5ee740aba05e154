package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/omnialpha/stock-selector/internal/engine"
	"github.com/omnialpha/stock-selector/internal/logger"
	"github.com/omnialpha/stock-selector/internal/strategy"
	"github.com/omnialpha/stock-selector/internal/types"
	"github.com/omnialpha/stock-selector/mocks"
	pkgerrors "github.com/omnialpha/stock-selector/pkg/errors"
)

// stubStrategy is a fixed-outcome strategy for orchestration tests.
type stubStrategy struct {
	name    string
	matched bool
	metrics types.Metrics
}

func (s *stubStrategy) Name() string        { return s.name }
func (s *stubStrategy) Description() string { return s.name }

func (s *stubStrategy) Evaluate(context.Context, string, types.BarSeries) (bool, types.Metrics) {
	return s.matched, s.metrics
}

type EngineTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	provider *mocks.MockProvider
	engine   *engine.Engine
	ctx      context.Context
	date     time.Time
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.provider = mocks.NewMockProvider(suite.ctrl)
	suite.engine = engine.NewEngine(suite.provider, logger.NewTestLogger())
	suite.ctx = context.Background()
	suite.date = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
}

func someSeries(date time.Time) types.BarSeries {
	return types.BarSeries{{Date: date, Close: 10}}
}

func (suite *EngineTestSuite) TestEmptyPoolSkipsProvider() {
	// No EXPECT calls registered: any provider contact fails the test.
	results, err := suite.engine.Run(suite.ctx, nil, suite.date,
		[]strategy.Strategy{&stubStrategy{name: "A", matched: true}}, engine.Options{})
	suite.NoError(err)
	suite.Empty(results)
}

func (suite *EngineTestSuite) TestNoStrategiesIsError() {
	_, err := suite.engine.Run(suite.ctx, []string{"sh.600000"}, suite.date, nil, engine.Options{})
	suite.Error(err)
	suite.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeEngineNoStrategies))
}

func (suite *EngineTestSuite) TestUnknownModeIsError() {
	_, err := suite.engine.Run(suite.ctx, []string{"sh.600000"}, suite.date,
		[]strategy.Strategy{&stubStrategy{name: "A", matched: true}},
		engine.Options{Mode: engine.AggregationMode("most")})
	suite.Error(err)
	suite.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeInvalidMode))
}

func (suite *EngineTestSuite) TestFetchAmortization() {
	pool := []string{"sh.600000", "sz.000001", "sh.600519"}
	strategies := []strategy.Strategy{
		&stubStrategy{name: "A", matched: true, metrics: types.Metrics{"price": 10.0}},
		&stubStrategy{name: "B", matched: true, metrics: types.Metrics{"price": 10.0}},
	}

	// Exactly one fetch per instrument, never one per strategy.
	for _, code := range pool {
		suite.provider.EXPECT().
			GetDailyBars(gomock.Any(), code, suite.date).
			Return(someSeries(suite.date), nil).
			Times(1)
	}

	results, err := suite.engine.Run(suite.ctx, pool, suite.date, strategies, engine.Options{})
	suite.NoError(err)
	suite.Len(results, len(pool)*len(strategies))
}

func (suite *EngineTestSuite) TestSkipsInstrumentsWithoutHistory() {
	pool := []string{"sh.600000", "sz.000001", "sh.600519"}

	suite.provider.EXPECT().GetDailyBars(gomock.Any(), "sh.600000", suite.date).Return(nil, nil)
	suite.provider.EXPECT().GetDailyBars(gomock.Any(), "sz.000001", suite.date).Return(types.BarSeries{}, nil)
	suite.provider.EXPECT().GetDailyBars(gomock.Any(), "sh.600519", suite.date).Return(someSeries(suite.date), nil)

	results, err := suite.engine.Run(suite.ctx, pool, suite.date,
		[]strategy.Strategy{&stubStrategy{name: "A", matched: true}}, engine.Options{})
	suite.NoError(err)
	suite.Len(results, 1)
	suite.Equal("sh.600519", results[0].Code)
	suite.Equal("A", results[0].Strategy)
	suite.Equal(suite.date, results[0].Date)
}

func (suite *EngineTestSuite) TestRowOrdering() {
	pool := []string{"sh.600000", "sz.000001"}
	strategies := []strategy.Strategy{
		&stubStrategy{name: "A", matched: true},
		&stubStrategy{name: "B", matched: true},
	}

	for _, code := range pool {
		suite.provider.EXPECT().
			GetDailyBars(gomock.Any(), code, suite.date).
			Return(someSeries(suite.date), nil)
	}

	results, err := suite.engine.Run(suite.ctx, pool, suite.date, strategies, engine.Options{})
	suite.NoError(err)
	suite.Len(results, 4)

	// Pool order outer, strategy order inner.
	suite.Equal("sh.600000", results[0].Code)
	suite.Equal("A", results[0].Strategy)
	suite.Equal("sh.600000", results[1].Code)
	suite.Equal("B", results[1].Strategy)
	suite.Equal("sz.000001", results[2].Code)
	suite.Equal("A", results[2].Strategy)
	suite.Equal("sz.000001", results[3].Code)
	suite.Equal("B", results[3].Strategy)
}

func (suite *EngineTestSuite) TestProgressMonotonicAndComplete() {
	pool := []string{"sh.600000", "sz.000001", "sh.600519", "sz.000002"}

	for _, code := range pool {
		suite.provider.EXPECT().
			GetDailyBars(gomock.Any(), code, suite.date).
			Return(someSeries(suite.date), nil)
	}

	var fractions []float64
	onProgress := engine.OnProgress(func(fraction float64) {
		fractions = append(fractions, fraction)
	})

	_, err := suite.engine.Run(suite.ctx, pool, suite.date,
		[]strategy.Strategy{&stubStrategy{name: "A", matched: false}},
		engine.Options{OnProgress: optional.Some(onProgress)})
	suite.NoError(err)

	suite.Len(fractions, len(pool))
	for i := 1; i < len(fractions); i++ {
		suite.GreaterOrEqual(fractions[i], fractions[i-1])
	}
	suite.Equal(1.0, fractions[len(fractions)-1])
}

func (suite *EngineTestSuite) TestNoCallbackBehavesIdentically() {
	pool := []string{"sh.600000"}

	suite.provider.EXPECT().
		GetDailyBars(gomock.Any(), "sh.600000", suite.date).
		Return(someSeries(suite.date), nil)

	results, err := suite.engine.Run(suite.ctx, pool, suite.date,
		[]strategy.Strategy{&stubStrategy{name: "A", matched: true}}, engine.Options{})
	suite.NoError(err)
	suite.Len(results, 1)
}

func (suite *EngineTestSuite) TestProviderErrorPropagates() {
	pool := []string{"sh.600000", "sz.000001"}

	suite.provider.EXPECT().
		GetDailyBars(gomock.Any(), "sh.600000", suite.date).
		Return(nil, errors.New("connection reset"))

	_, err := suite.engine.Run(suite.ctx, pool, suite.date,
		[]strategy.Strategy{&stubStrategy{name: "A", matched: true}}, engine.Options{})
	suite.Error(err)
	suite.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeQueryFailed))
}

func (suite *EngineTestSuite) TestAllModeRequiresEveryStrategy() {
	pool := []string{"sh.600000"}
	strategies := []strategy.Strategy{
		&stubStrategy{name: "A", matched: true, metrics: types.Metrics{"price": 10.0}},
		&stubStrategy{name: "B", matched: false},
	}

	suite.provider.EXPECT().
		GetDailyBars(gomock.Any(), "sh.600000", suite.date).
		Return(someSeries(suite.date), nil)

	results, err := suite.engine.Run(suite.ctx, pool, suite.date, strategies,
		engine.Options{Mode: engine.ModeAll})
	suite.NoError(err)
	suite.Empty(results)
}

func (suite *EngineTestSuite) TestAllModeMergesRow() {
	pool := []string{"sh.600000"}
	strategies := []strategy.Strategy{
		&stubStrategy{name: "A", matched: true, metrics: types.Metrics{"price": 10.0, "MA5": 9.5}},
		&stubStrategy{name: "B", matched: true, metrics: types.Metrics{"price": 10.0, "turn": 6.0}},
	}

	suite.provider.EXPECT().
		GetDailyBars(gomock.Any(), "sh.600000", suite.date).
		Return(someSeries(suite.date), nil)

	results, err := suite.engine.Run(suite.ctx, pool, suite.date, strategies,
		engine.Options{Mode: engine.ModeAll})
	suite.NoError(err)
	suite.Len(results, 1)
	suite.Equal("A,B", results[0].Strategy)

	ma5, ok := results[0].Metrics.Float("MA5")
	suite.True(ok)
	suite.Equal(9.5, ma5)

	turn, ok := results[0].Metrics.Float("turn")
	suite.True(ok)
	suite.Equal(6.0, turn)
}

func (suite *EngineTestSuite) TestParallelPreservesOrder() {
	pool := []string{"sh.600000", "sz.000001", "sh.600519", "sz.000002", "sh.601318", "sz.300750"}

	for _, code := range pool {
		suite.provider.EXPECT().
			GetDailyBars(gomock.Any(), code, suite.date).
			Return(someSeries(suite.date), nil)
	}

	var fractions []float64
	onProgress := engine.OnProgress(func(fraction float64) {
		fractions = append(fractions, fraction)
	})

	results, err := suite.engine.Run(suite.ctx, pool, suite.date,
		[]strategy.Strategy{&stubStrategy{name: "A", matched: true}},
		engine.Options{Workers: 3, OnProgress: optional.Some(onProgress)})
	suite.NoError(err)
	suite.Len(results, len(pool))

	for i, code := range pool {
		suite.Equal(code, results[i].Code)
	}

	suite.Len(fractions, len(pool))
	for i := 1; i < len(fractions); i++ {
		suite.GreaterOrEqual(fractions[i], fractions[i-1])
	}
	suite.Equal(1.0, fractions[len(fractions)-1])
}

func (suite *EngineTestSuite) TestParallelProviderErrorPropagates() {
	pool := []string{"sh.600000", "sz.000001", "sh.600519", "sz.000002"}

	for _, code := range pool {
		suite.provider.EXPECT().
			GetDailyBars(gomock.Any(), code, suite.date).
			Return(nil, errors.New("connection reset")).
			MaxTimes(1)
	}

	_, err := suite.engine.Run(suite.ctx, pool, suite.date,
		[]strategy.Strategy{&stubStrategy{name: "A", matched: true}},
		engine.Options{Workers: 2})
	suite.Error(err)
	suite.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeQueryFailed))
}

func (suite *EngineTestSuite) TestParallelRootCauseNotMaskedByCancellation() {
	pool := []string{"sh.600000", "sz.000001", "sh.600519"}

	// The earlier-indexed fetch blocks until the scan is canceled and
	// then fails with the cancellation; the later-indexed fetch fails
	// with the real defect that triggers the cancel.
	suite.provider.EXPECT().
		GetDailyBars(gomock.Any(), "sh.600000", suite.date).
		DoAndReturn(func(ctx context.Context, _ string, _ time.Time) (types.BarSeries, error) {
			<-ctx.Done()

			return nil, ctx.Err()
		})
	suite.provider.EXPECT().
		GetDailyBars(gomock.Any(), "sz.000001", suite.date).
		Return(nil, errors.New("disk corrupted"))
	suite.provider.EXPECT().
		GetDailyBars(gomock.Any(), "sh.600519", suite.date).
		Return(someSeries(suite.date), nil).
		MaxTimes(1)

	_, err := suite.engine.Run(suite.ctx, pool, suite.date,
		[]strategy.Strategy{&stubStrategy{name: "A", matched: true}},
		engine.Options{Workers: 2})
	suite.Error(err)
	suite.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeQueryFailed))
	suite.ErrorContains(err, "disk corrupted")
}

func (suite *EngineTestSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	_, err := suite.engine.Run(ctx, []string{"sh.600000"}, suite.date,
		[]strategy.Strategy{&stubStrategy{name: "A", matched: true}}, engine.Options{})
	suite.Error(err)
	suite.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeScanCanceled))
}
