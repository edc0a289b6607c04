package market

import (
	"fmt"
	"sort"
	"time"
)

// Symbol identifies a tradable instrument at the quote provider,
// e.g. "iwda.uk" or "spy.us".
type Symbol string

// Role classifies an instrument within the strategy universe.
type Role string

const (
	RoleEquityDomestic      Role = "equity-domestic"
	RoleEquityInternational Role = "equity-international"
	RoleBond                Role = "bond"
	RoleBenchmark           Role = "benchmark"
)

// IsEquity reports whether the role belongs to the equity class.
func (r Role) IsEquity() bool {
	return r == RoleEquityDomestic || r == RoleEquityInternational
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleEquityDomestic, RoleEquityInternational, RoleBond, RoleBenchmark:
		return true
	}
	return false
}

// Instrument is one member of the strategy universe.
type Instrument struct {
	Name   string `json:"name" yaml:"name"`
	Symbol Symbol `json:"symbol" yaml:"symbol"`
	Role   Role   `json:"role" yaml:"role"`
}

// PricePoint is one daily observation of an instrument's adjusted close.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered sequence of daily price points.
// Invariant: dates strictly increasing, all closes positive. Dates need
// not be contiguous since non-trading days are absent.
type PriceSeries []PricePoint

// Validate checks the series invariants.
func (s PriceSeries) Validate() error {
	for i, p := range s {
		if p.Close <= 0 {
			return fmt.Errorf("price at %s is not positive: %f", p.Date.Format("2006-01-02"), p.Close)
		}
		if i > 0 && !s[i-1].Date.Before(p.Date) {
			return fmt.Errorf("dates not strictly increasing at %s", p.Date.Format("2006-01-02"))
		}
	}
	return nil
}

// LatestOnOrBefore returns the most recent point dated at or before the
// given date. The second return value is false when no such point exists.
func (s PriceSeries) LatestOnOrBefore(date time.Time) (PricePoint, bool) {
	// First index with a date strictly after the target; the point we
	// want sits just before it.
	i := sort.Search(len(s), func(i int) bool {
		return s[i].Date.After(date)
	})
	if i == 0 {
		return PricePoint{}, false
	}
	return s[i-1], true
}

// ReturnResult is the trailing total return of one instrument.
type ReturnResult struct {
	Symbol         Symbol    `json:"symbol"`
	AsOf           time.Time `json:"as_of"`
	LookbackMonths int       `json:"lookback_months"`
	Ratio          float64   `json:"ratio"`
	StartPrice     float64   `json:"start_price"`
	EndPrice       float64   `json:"end_price"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
}

// Percent returns the return as a percentage.
func (r ReturnResult) Percent() float64 {
	return r.Ratio * 100
}

// Rationale tags why the engine chose an instrument.
type Rationale string

const (
	// RationaleEquityMomentum: the best equity had positive trailing
	// return and was selected.
	RationaleEquityMomentum Rationale = "equity-momentum"

	// RationaleDefensive: every equity trailing return was negative, so
	// the engine fell back to the bond class.
	RationaleDefensive Rationale = "defensive"
)

// InstrumentReturn pairs an instrument with its computed return.
type InstrumentReturn struct {
	Instrument Instrument   `json:"instrument"`
	Return     ReturnResult `json:"return"`
}

// Recommendation is the outcome of one strategy evaluation.
type Recommendation struct {
	AsOf      time.Time          `json:"as_of"`
	Chosen    Instrument         `json:"chosen"`
	Rationale Rationale          `json:"rationale"`
	Returns   []InstrumentReturn `json:"returns"`
	Benchmark InstrumentReturn   `json:"benchmark"`
}
