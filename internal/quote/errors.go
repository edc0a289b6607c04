package quote

import (
	"fmt"

	"github.com/gemstrategy/backend/internal/market"
)

// FetchError indicates a transient upstream failure that survived the
// configured retries.
type FetchError struct {
	Symbol market.Symbol
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FormatError indicates a permanently malformed upstream payload.
// It is never retried: retrying will not fix a malformed response for the
// same date range.
type FormatError struct {
	Symbol market.Symbol
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed response for %s: %s", e.Symbol, e.Reason)
}
