package universe

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gemstrategy/backend/internal/market"
)

// Load reads a universe definition from a YAML file.
// KnownFields(true) makes typos and unused fields fail immediately.
func Load(path string) (Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Universe{}, fmt.Errorf("read universe file: %w", err)
	}

	var u Universe
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&u); err != nil {
		return Universe{}, fmt.Errorf("decode universe file: %w", err)
	}

	if u.Benchmark.Role == "" {
		u.Benchmark.Role = market.RoleBenchmark
	}

	if err := Validate(u); err != nil {
		return Universe{}, fmt.Errorf("invalid universe: %w", err)
	}

	return u, nil
}

// Validate checks that a universe is usable by the strategy engine.
func Validate(u Universe) error {
	if len(u.Instruments) == 0 {
		return fmt.Errorf("no instruments defined")
	}

	seen := make(map[market.Symbol]bool)
	equities, bonds := 0, 0

	for _, inst := range u.Instruments {
		if inst.Name == "" {
			return fmt.Errorf("instrument with symbol %q has no name", inst.Symbol)
		}
		if inst.Symbol == "" {
			return fmt.Errorf("instrument %q has no symbol", inst.Name)
		}
		if !inst.Role.Valid() {
			return fmt.Errorf("instrument %q has unknown role %q", inst.Name, inst.Role)
		}
		if inst.Role == market.RoleBenchmark {
			return fmt.Errorf("instrument %q: benchmark must be declared in the benchmark field", inst.Name)
		}
		if seen[inst.Symbol] {
			return fmt.Errorf("duplicate symbol %q", inst.Symbol)
		}
		seen[inst.Symbol] = true

		if inst.Role.IsEquity() {
			equities++
		}
		if inst.Role == market.RoleBond {
			bonds++
		}
	}

	if equities == 0 {
		return fmt.Errorf("at least one equity-class instrument is required")
	}
	if bonds == 0 {
		return fmt.Errorf("at least one bond-class instrument is required")
	}

	if u.Benchmark.Symbol == "" {
		return fmt.Errorf("benchmark symbol is required")
	}
	if u.Benchmark.Role != market.RoleBenchmark {
		return fmt.Errorf("benchmark role must be %q", market.RoleBenchmark)
	}
	if seen[u.Benchmark.Symbol] {
		return fmt.Errorf("benchmark symbol %q duplicates an instrument", u.Benchmark.Symbol)
	}

	return nil
}
