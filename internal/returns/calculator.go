// Package returns computes trailing total returns over a price series.
package returns

import (
	"errors"
	"fmt"
	"time"

	"github.com/gemstrategy/backend/internal/market"
)

// ErrInsufficientData indicates the series does not cover the requested
// return window.
var ErrInsufficientData = errors.New("insufficient data for return window")

// Compute calculates the trailing lookbackMonths total return for symbol
// over the given series as of asOf. Both window anchors resolve to the
// most recent trading day at or before the target date, which tolerates
// weekends and holidays. The result is deterministic for identical inputs.
func Compute(symbol market.Symbol, series market.PriceSeries, asOf time.Time, lookbackMonths int) (market.ReturnResult, error) {
	if lookbackMonths <= 0 {
		return market.ReturnResult{}, fmt.Errorf("lookback months must be > 0, got %d", lookbackMonths)
	}

	end, ok := series.LatestOnOrBefore(asOf)
	if !ok {
		return market.ReturnResult{}, fmt.Errorf("%w: no price at or before %s",
			ErrInsufficientData, asOf.Format("2006-01-02"))
	}

	startAnchor := asOf.AddDate(0, -lookbackMonths, 0)
	start, ok := series.LatestOnOrBefore(startAnchor)
	if !ok {
		return market.ReturnResult{}, fmt.Errorf("%w: no price at or before %s",
			ErrInsufficientData, startAnchor.Format("2006-01-02"))
	}

	// Series invariant guarantees positive prices, so the ratio is
	// always well defined.
	return market.ReturnResult{
		Symbol:         symbol,
		AsOf:           asOf,
		LookbackMonths: lookbackMonths,
		Ratio:          end.Close/start.Close - 1,
		StartPrice:     start.Close,
		EndPrice:       end.Close,
		StartDate:      start.Date,
		EndDate:        end.Date,
	}, nil
}
