package api

import (
	"net/http"
	"time"

	"storyweave/pkg/tracker"
)

// StatsHandler reports provider usage counters and process uptime.
type StatsHandler struct {
	tracker *tracker.Tracker
	started time.Time
}

func NewStatsHandler(t *tracker.Tracker) *StatsHandler {
	return &StatsHandler{
		tracker: t,
		started: time.Now(),
	}
}

type ProviderStatsDTO struct {
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	APISuccess    int64 `json:"api_success"`
	APIZeroResult int64 `json:"api_zero"`
	APIFailures   int64 `json:"api_errors"`
	HitRate       int64 `json:"hit_rate"`
}

type StatsResponse struct {
	UptimeSec int64                       `json:"uptime_sec"`
	Providers map[string]ProviderStatsDTO `json:"providers"`
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snapshot := h.tracker.Snapshot()

	resp := StatsResponse{
		UptimeSec: int64(time.Since(h.started).Seconds()),
		Providers: make(map[string]ProviderStatsDTO),
	}

	for provider, stats := range snapshot {
		totalCache := stats.CacheHits + stats.CacheMisses
		hitRate := int64(0)
		if totalCache > 0 {
			hitRate = (stats.CacheHits * 100) / totalCache
		}
		resp.Providers[provider] = ProviderStatsDTO{
			CacheHits:     stats.CacheHits,
			CacheMisses:   stats.CacheMisses,
			APISuccess:    stats.APISuccess,
			APIZeroResult: stats.APIZeroResult,
			APIFailures:   stats.APIFailures,
			HitRate:       hitRate,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
