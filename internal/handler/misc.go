package handler

import (
	"net/http"
	"time"

	"github.com/Mr7Gabriel/clone-x-app/internal/service"
)

// trendingTopics is the static explore-tab list. There is no real trend
// computation behind it.
var trendingTopics = []string{
	"Flutter Development",
	"React Native",
	"Mobile Apps",
	"Programming",
	"JavaScript",
	"TypeScript",
	"Node.js",
	"MongoDB",
	"MySQL",
	"API Development",
}

// HandleTrending returns the trending topic list.
//
// HTTP: GET /api/trending
func HandleTrending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"success": true, "trends": trendingTopics})
}

// HandleHealth is the liveness probe.
//
// HTTP: GET /api/health
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		"success":   true,
		"message":   "X Clone API Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleNotFound is the fallback for unknown routes.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "Endpoint not found"})
}

// StatsHandler exposes the aggregate row counts.
type StatsHandler struct {
	stats *service.StatsService
}

func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// HandleStats returns the table counts.
//
// HTTP: GET /api/stats
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "stats": stats})
}
