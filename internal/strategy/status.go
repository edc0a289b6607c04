package strategy

import (
	"sync"
	"time"

	"github.com/gemstrategy/backend/internal/market"
)

// Evaluation records the outcome of one engine run for diagnostics.
type Evaluation struct {
	At        time.Time        `json:"at"`
	AsOf      time.Time        `json:"as_of"`
	Success   bool             `json:"success"`
	Error     string           `json:"error,omitempty"`
	Chosen    string           `json:"chosen,omitempty"`
	Rationale market.Rationale `json:"rationale,omitempty"`
}

// Tracker keeps the most recent evaluation outcome. It is the backing
// store for the health endpoint and is safe for concurrent use.
type Tracker struct {
	mu   sync.RWMutex
	last *Evaluation
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Record stores the outcome of an evaluation.
func (t *Tracker) Record(asOf time.Time, rec *market.Recommendation, err error) {
	ev := Evaluation{
		At:   time.Now(),
		AsOf: asOf,
	}
	if err != nil {
		ev.Error = err.Error()
	} else {
		ev.Success = true
		ev.Chosen = rec.Chosen.Name
		ev.Rationale = rec.Rationale
	}

	t.mu.Lock()
	t.last = &ev
	t.mu.Unlock()
}

// Last returns the most recent evaluation, if any.
func (t *Tracker) Last() (Evaluation, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.last == nil {
		return Evaluation{}, false
	}
	return *t.last, true
}
