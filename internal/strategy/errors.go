package strategy

import (
	"fmt"

	"github.com/gemstrategy/backend/internal/market"
)

// EvaluationError wraps a fetch or calculation failure and attributes it
// to the instrument that failed. Evaluations are all-or-nothing: a
// partial comparison could silently mislead the decision, so the first
// failure fails the whole evaluation.
type EvaluationError struct {
	Symbol market.Symbol
	Err    error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("strategy evaluation failed for %s: %v", e.Symbol, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
