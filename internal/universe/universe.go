package universe

import (
	"github.com/gemstrategy/backend/internal/market"
)

// Universe is the fixed instrument set the strategy evaluates.
type Universe struct {
	Instruments []market.Instrument `yaml:"instruments"`
	Benchmark   market.Instrument   `yaml:"benchmark"`
}

// Equities returns the equity-class instruments in declared order.
func (u Universe) Equities() []market.Instrument {
	var out []market.Instrument
	for _, inst := range u.Instruments {
		if inst.Role.IsEquity() {
			out = append(out, inst)
		}
	}
	return out
}

// Bonds returns the bond-class instruments in declared order.
func (u Universe) Bonds() []market.Instrument {
	var out []market.Instrument
	for _, inst := range u.Instruments {
		if inst.Role == market.RoleBond {
			out = append(out, inst)
		}
	}
	return out
}

// Default returns the built-in ETF universe used when no config file is
// provided.
func Default() Universe {
	return Universe{
		Instruments: []market.Instrument{
			{Name: "IWDA", Symbol: "iwda.uk", Role: market.RoleEquityDomestic},
			{Name: "EIMI", Symbol: "eimi.uk", Role: market.RoleEquityInternational},
			{Name: "CNDX", Symbol: "cndx.uk", Role: market.RoleEquityDomestic},
			{Name: "IB01", Symbol: "ib01.uk", Role: market.RoleBond},
			{Name: "CBU0", Symbol: "cbu0.uk", Role: market.RoleBond},
		},
		Benchmark: market.Instrument{
			Name:   "S&P 500 (SPY)",
			Symbol: "spy.us",
			Role:   market.RoleBenchmark,
		},
	}
}
