package handlers

import (
	"net/http"

	"github.com/gemstrategy/backend/internal/pricecache"
	"github.com/gemstrategy/backend/internal/strategy"
)

// CacheInspector reports the state of the price cache.
type CacheInspector interface {
	Entries() []pricecache.EntryStatus
}

// HealthHandler reports service health: whether the last evaluation
// succeeded and how fresh the cache is.
type HealthHandler struct {
	tracker *strategy.Tracker
	cache   CacheInspector
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(tracker *strategy.Tracker, cache CacheInspector) *HealthHandler {
	return &HealthHandler{
		tracker: tracker,
		cache:   cache,
	}
}

// Check returns service health status.
// GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := "ok"

	body := map[string]interface{}{
		"service": "gemstrategy-api",
	}

	if last, ok := h.tracker.Last(); ok {
		body["last_evaluation"] = last
		if !last.Success {
			status = "degraded"
		}
	}

	entries := h.cache.Entries()
	fresh := 0
	for _, e := range entries {
		if e.Fresh {
			fresh++
		}
	}
	body["cache"] = map[string]interface{}{
		"entries": len(entries),
		"fresh":   fresh,
	}

	body["status"] = status
	respondJSON(w, http.StatusOK, body)
}
