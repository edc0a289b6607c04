package quote

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gemstrategy/backend/internal/market"
)

// Stooq serves English headers on stooq.com and Polish ones on stooq.pl;
// both are accepted.
var (
	dateColumns  = []string{"Date", "Data"}
	closeColumns = []string{"Close", "Zamkniecie"}
)

// parseCSV parses a Stooq daily CSV body into a price series. Rows with
// unparseable dates or non-positive prices are dropped and counted rather
// than aborting the whole series. A body with no usable header or no
// valid rows yields a *FormatError.
func parseCSV(symbol market.Symbol, r io.Reader) (market.PriceSeries, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, &FormatError{Symbol: symbol, Reason: "invalid CSV: " + err.Error()}
	}

	if len(records) == 0 {
		return nil, 0, &FormatError{Symbol: symbol, Reason: "empty response body"}
	}

	dateIdx := columnIndex(records[0], dateColumns)
	closeIdx := columnIndex(records[0], closeColumns)
	if dateIdx < 0 || closeIdx < 0 {
		return nil, 0, &FormatError{Symbol: symbol, Reason: "missing date or close column"}
	}

	var series market.PriceSeries
	dropped := 0

	for _, row := range records[1:] {
		if len(row) <= dateIdx || len(row) <= closeIdx {
			dropped++
			continue
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(row[dateIdx]))
		if err != nil {
			dropped++
			continue
		}

		closePrice, err := strconv.ParseFloat(strings.TrimSpace(row[closeIdx]), 64)
		if err != nil || closePrice <= 0 {
			dropped++
			continue
		}

		series = append(series, market.PricePoint{Date: date, Close: closePrice})
	}

	if len(series) == 0 {
		return nil, dropped, &FormatError{Symbol: symbol, Reason: "no valid price rows"}
	}

	// Stooq serves rows in ascending date order, but the series invariant
	// is enforced here rather than assumed.
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	series = dedupeDates(series)

	return series, dropped, nil
}

// columnIndex finds the first header cell matching any of the candidates.
func columnIndex(header []string, candidates []string) int {
	for i, cell := range header {
		cell = strings.TrimSpace(cell)
		for _, want := range candidates {
			if strings.EqualFold(cell, want) {
				return i
			}
		}
	}
	return -1
}

// dedupeDates drops repeated dates, keeping the last occurrence.
// Assumes the series is already sorted.
func dedupeDates(series market.PriceSeries) market.PriceSeries {
	out := series[:0]
	for _, p := range series {
		if len(out) > 0 && out[len(out)-1].Date.Equal(p.Date) {
			out[len(out)-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}
