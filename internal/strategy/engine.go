// Package strategy implements the Global Equities Momentum decision rule.
package strategy

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gemstrategy/backend/internal/market"
	"github.com/gemstrategy/backend/internal/returns"
	"github.com/gemstrategy/backend/internal/universe"
	"github.com/gemstrategy/backend/pkg/logger"
)

// fetchMargin widens the fetched window past the lookback anchor so the
// nearest-before lookup has trading days to land on.
const fetchMargin = 14 * 24 * time.Hour

// SeriesProvider supplies price series for instruments, typically the
// price cache.
type SeriesProvider interface {
	GetOrFetch(ctx context.Context, symbol market.Symbol, from, to time.Time) (market.PriceSeries, error)
}

// Engine evaluates the GEM rule over a fixed instrument universe.
// It is stateless between invocations; every Evaluate call is independent
// and safe to run concurrently with others.
type Engine struct {
	provider       SeriesProvider
	universe       universe.Universe
	lookbackMonths int
	logger         *logger.Logger
}

// New creates a strategy engine.
func New(provider SeriesProvider, u universe.Universe, lookbackMonths int, log *logger.Logger) *Engine {
	return &Engine{
		provider:       provider,
		universe:       u,
		lookbackMonths: lookbackMonths,
		logger:         log,
	}
}

// Evaluate computes trailing returns for every instrument in the universe
// plus the benchmark, applies the GEM rule and returns a recommendation.
// Per-symbol fetches run in parallel; the engine waits for all of them
// (or the first failure) before deciding. Any failure aborts the whole
// evaluation with an *EvaluationError naming the symbol.
func (e *Engine) Evaluate(ctx context.Context, asOf time.Time) (*market.Recommendation, error) {
	from := asOf.AddDate(0, -e.lookbackMonths, 0).Add(-fetchMargin)
	to := asOf

	instruments := append([]market.Instrument{}, e.universe.Instruments...)
	instruments = append(instruments, e.universe.Benchmark)

	results := make([]market.InstrumentReturn, len(instruments))

	g, gctx := errgroup.WithContext(ctx)
	for i, inst := range instruments {
		i, inst := i, inst
		g.Go(func() error {
			series, err := e.provider.GetOrFetch(gctx, inst.Symbol, from, to)
			if err != nil {
				return &EvaluationError{Symbol: inst.Symbol, Err: err}
			}

			result, err := returns.Compute(inst.Symbol, series, asOf, e.lookbackMonths)
			if err != nil {
				return &EvaluationError{Symbol: inst.Symbol, Err: err}
			}

			results[i] = market.InstrumentReturn{Instrument: inst, Return: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	benchmark := results[len(results)-1]
	comparison := results[:len(results)-1]

	chosen, rationale := e.decide(comparison)

	e.logger.WithFields(map[string]interface{}{
		"as_of":     asOf.Format("2006-01-02"),
		"chosen":    chosen.Name,
		"rationale": rationale,
	}).Info("Strategy evaluation completed")

	return &market.Recommendation{
		AsOf:      asOf,
		Chosen:    chosen,
		Rationale: rationale,
		Returns:   comparison,
		Benchmark: benchmark,
	}, nil
}

// decide applies the GEM rule: pick the equity with the highest trailing
// return; if that return is positive recommend it, otherwise fall back to
// the best-returning bond-class instrument. Ties resolve to the earliest
// instrument in declared order, keeping the decision deterministic.
func (e *Engine) decide(results []market.InstrumentReturn) (market.Instrument, market.Rationale) {
	bestEquity := best(results, func(r market.InstrumentReturn) bool {
		return r.Instrument.Role.IsEquity()
	})

	if bestEquity.Return.Ratio > 0 {
		return bestEquity.Instrument, market.RationaleEquityMomentum
	}

	bestBond := best(results, func(r market.InstrumentReturn) bool {
		return r.Instrument.Role == market.RoleBond
	})

	return bestBond.Instrument, market.RationaleDefensive
}

// best returns the highest-return result among those matching the filter.
// Universe validation guarantees at least one match per class.
func best(results []market.InstrumentReturn, match func(market.InstrumentReturn) bool) market.InstrumentReturn {
	var top market.InstrumentReturn
	found := false
	for _, r := range results {
		if !match(r) {
			continue
		}
		if !found || r.Return.Ratio > top.Return.Ratio {
			top = r
			found = true
		}
	}
	return top
}
