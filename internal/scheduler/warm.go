package scheduler

import (
	"context"
	"time"

	"github.com/gemstrategy/backend/internal/market"
	"github.com/gemstrategy/backend/internal/strategy"
)

// Evaluator runs one strategy evaluation.
type Evaluator interface {
	Evaluate(ctx context.Context, asOf time.Time) (*market.Recommendation, error)
}

// WarmJob periodically evaluates the strategy for the current date so the
// price cache stays populated and request latency stays low. The run
// outcome feeds the health tracker like any request-driven evaluation.
type WarmJob struct {
	engine   Evaluator
	tracker  *strategy.Tracker
	schedule string
}

// NewWarmJob creates a cache warming job with the given cron schedule.
func NewWarmJob(engine Evaluator, tracker *strategy.Tracker, schedule string) *WarmJob {
	return &WarmJob{
		engine:   engine,
		tracker:  tracker,
		schedule: schedule,
	}
}

// Name returns the job name
func (j *WarmJob) Name() string {
	return "cache-warm"
}

// Schedule returns the cron schedule expression
func (j *WarmJob) Schedule() string {
	return j.schedule
}

// Run evaluates the strategy for today's date
func (j *WarmJob) Run(ctx context.Context) error {
	asOf := time.Now().UTC().Truncate(24 * time.Hour)

	rec, err := j.engine.Evaluate(ctx, asOf)
	j.tracker.Record(asOf, rec, err)
	return err
}
