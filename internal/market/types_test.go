package market

import (
	"testing"
	"time"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestPriceSeriesValidate(t *testing.T) {
	tests := []struct {
		name    string
		series  PriceSeries
		wantErr bool
	}{
		{
			name: "valid ascending",
			series: PriceSeries{
				{Date: d(2025, 1, 2), Close: 100},
				{Date: d(2025, 1, 3), Close: 101},
				{Date: d(2025, 1, 6), Close: 99.5},
			},
			wantErr: false,
		},
		{
			name:    "empty",
			series:  PriceSeries{},
			wantErr: false,
		},
		{
			name: "duplicate date",
			series: PriceSeries{
				{Date: d(2025, 1, 2), Close: 100},
				{Date: d(2025, 1, 2), Close: 101},
			},
			wantErr: true,
		},
		{
			name: "out of order",
			series: PriceSeries{
				{Date: d(2025, 1, 3), Close: 100},
				{Date: d(2025, 1, 2), Close: 101},
			},
			wantErr: true,
		},
		{
			name: "non-positive price",
			series: PriceSeries{
				{Date: d(2025, 1, 2), Close: 0},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.series.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLatestOnOrBefore(t *testing.T) {
	// Friday 2025-01-03, Monday 2025-01-06, Tuesday 2025-01-07
	series := PriceSeries{
		{Date: d(2025, 1, 3), Close: 100},
		{Date: d(2025, 1, 6), Close: 102},
		{Date: d(2025, 1, 7), Close: 101},
	}

	tests := []struct {
		name     string
		date     time.Time
		want     float64
		wantFind bool
	}{
		{"exact match", d(2025, 1, 6), 102, true},
		{"saturday resolves to friday", d(2025, 1, 4), 100, true},
		{"sunday resolves to friday", d(2025, 1, 5), 100, true},
		{"after last point", d(2025, 1, 10), 101, true},
		{"before first point", d(2025, 1, 2), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := series.LatestOnOrBefore(tt.date)
			if ok != tt.wantFind {
				t.Fatalf("LatestOnOrBefore() found = %v, want %v", ok, tt.wantFind)
			}
			if ok && p.Close != tt.want {
				t.Errorf("LatestOnOrBefore() close = %f, want %f", p.Close, tt.want)
			}
		})
	}
}

func TestRoleIsEquity(t *testing.T) {
	if !RoleEquityDomestic.IsEquity() || !RoleEquityInternational.IsEquity() {
		t.Error("equity roles must report IsEquity")
	}
	if RoleBond.IsEquity() || RoleBenchmark.IsEquity() {
		t.Error("non-equity roles must not report IsEquity")
	}
}

func TestReturnResultPercent(t *testing.T) {
	r := ReturnResult{Ratio: 0.1234}
	if got := r.Percent(); got != 12.34 {
		t.Errorf("Percent() = %f, want 12.34", got)
	}
}
