package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gemstrategy/backend/internal/market"
	"github.com/gemstrategy/backend/internal/strategy"
	"github.com/gemstrategy/backend/internal/universe"
	"github.com/gemstrategy/backend/pkg/logger"
)

// Evaluator is the strategy engine as seen by the API layer.
type Evaluator interface {
	Evaluate(ctx context.Context, asOf time.Time) (*market.Recommendation, error)
}

// StrategyHandler handles strategy-related API endpoints.
// SSOT: strategy API handlers live in this struct only.
type StrategyHandler struct {
	engine         Evaluator
	universe       universe.Universe
	tracker        *strategy.Tracker
	lookbackMonths int
	logger         *logger.Logger
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(
	engine Evaluator,
	u universe.Universe,
	tracker *strategy.Tracker,
	lookbackMonths int,
	log *logger.Logger,
) *StrategyHandler {
	return &StrategyHandler{
		engine:         engine,
		universe:       u,
		tracker:        tracker,
		lookbackMonths: lookbackMonths,
		logger:         log,
	}
}

// GetRecommendation evaluates the strategy and returns a recommendation.
// GET /api/recommendation?date=YYYY-MM-DD (defaults to today)
func (h *StrategyHandler) GetRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q, want YYYY-MM-DD", dateStr))
			return
		}
		asOf = parsed
	}

	rec, err := h.engine.Evaluate(ctx, asOf)
	h.tracker.Record(asOf, rec, err)
	if err != nil {
		h.logger.WithError(err).Error("Strategy evaluation failed")

		var evalErr *strategy.EvaluationError
		if errors.As(err, &evalErr) {
			respondJSON(w, http.StatusBadGateway, map[string]string{
				"error":  "instrument data unavailable",
				"symbol": string(evalErr.Symbol),
			})
			return
		}

		respondError(w, http.StatusInternalServerError, "strategy evaluation failed")
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// GetUniverse lists the configured instruments with their roles.
// GET /api/universe
func (h *StrategyHandler) GetUniverse(w http.ResponseWriter, r *http.Request) {
	equities := h.universe.Equities()
	bonds := h.universe.Bonds()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"instruments":  h.universe.Instruments,
		"benchmark":    h.universe.Benchmark,
		"total":        len(h.universe.Instruments),
		"equity_count": len(equities),
		"bond_count":   len(bonds),
	})
}

// GetParameters describes the configured strategy.
// GET /api/strategy/parameters
func (h *StrategyHandler) GetParameters(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strategy_name": "Global Equities Momentum (GEM)",
		"description":   "Momentum strategy that holds the best-performing equity instrument, or falls back to bonds when every equity trailing return is negative",
		"parameters": map[string]interface{}{
			"lookback_months": h.lookbackMonths,
			"benchmark":       h.universe.Benchmark.Symbol,
		},
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
