package returns

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/gemstrategy/backend/internal/market"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// fixture spans just over twelve months with weekend-shaped gaps so the
// nearest-before policy is pinned explicitly.
var fixture = market.PriceSeries{
	{Date: d(2024, 1, 12), Close: 80},  // Friday
	{Date: d(2024, 1, 15), Close: 82},  // Monday
	{Date: d(2024, 6, 14), Close: 90},  // Friday
	{Date: d(2025, 1, 10), Close: 100}, // Friday
	{Date: d(2025, 1, 13), Close: 104}, // Monday
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		asOf      time.Time
		months    int
		wantStart float64
		wantEnd   float64
		wantRatio float64
	}{
		{
			// asOf Monday; anchor 2024-01-13 is a Saturday, resolves
			// back to Friday's close.
			name:      "anchor on weekend resolves to prior trading day",
			asOf:      d(2025, 1, 13),
			months:    12,
			wantStart: 80,
			wantEnd:   104,
			wantRatio: 0.3,
		},
		{
			// asOf 2025-01-15 has no trading day and resolves back to
			// Monday; the anchor lands exactly on 2024-01-15.
			name:      "exact anchor hit",
			asOf:      d(2025, 1, 15),
			months:    12,
			wantStart: 82,
			wantEnd:   104,
			wantRatio: 104.0/82.0 - 1,
		},
		{
			name:      "shorter lookback",
			asOf:      d(2025, 1, 10),
			months:    6,
			wantStart: 90,
			wantEnd:   100,
			wantRatio: 100.0/90.0 - 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute("iwda.uk", fixture, tt.asOf, tt.months)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}

			if got.Symbol != "iwda.uk" {
				t.Errorf("Symbol = %q, want iwda.uk", got.Symbol)
			}
			if got.StartPrice != tt.wantStart {
				t.Errorf("StartPrice = %f, want %f", got.StartPrice, tt.wantStart)
			}
			if got.EndPrice != tt.wantEnd {
				t.Errorf("EndPrice = %f, want %f", got.EndPrice, tt.wantEnd)
			}
			if math.Abs(got.Ratio-tt.wantRatio) > 1e-12 {
				t.Errorf("Ratio = %v, want %v", got.Ratio, tt.wantRatio)
			}
			if got.Ratio != got.EndPrice/got.StartPrice-1 {
				t.Errorf("Ratio inconsistent with prices: %v", got)
			}
		})
	}
}

func TestComputeInsufficientData(t *testing.T) {
	tests := []struct {
		name   string
		series market.PriceSeries
		asOf   time.Time
		months int
	}{
		{
			name:   "empty series",
			series: market.PriceSeries{},
			asOf:   d(2025, 1, 13),
			months: 12,
		},
		{
			name: "series starts after lookback anchor",
			series: market.PriceSeries{
				{Date: d(2024, 6, 14), Close: 90},
				{Date: d(2025, 1, 10), Close: 100},
			},
			asOf:   d(2025, 1, 13),
			months: 12,
		},
		{
			name: "no data up to the reference date",
			series: market.PriceSeries{
				{Date: d(2025, 6, 2), Close: 100},
			},
			asOf:   d(2025, 1, 13),
			months: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute("iwda.uk", tt.series, tt.asOf, tt.months)
			if !errors.Is(err, ErrInsufficientData) {
				t.Errorf("Compute() error = %v, want ErrInsufficientData", err)
			}
		})
	}
}

func TestComputeInvalidLookback(t *testing.T) {
	if _, err := Compute("iwda.uk", fixture, d(2025, 1, 13), 0); err == nil {
		t.Error("Compute() accepted zero lookback")
	}
}

func TestComputeDeterministic(t *testing.T) {
	first, err := Compute("iwda.uk", fixture, d(2025, 1, 13), 12)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	second, err := Compute("iwda.uk", fixture, d(2025, 1, 13), 12)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Compute() not deterministic: %v vs %v", first, second)
	}
}
