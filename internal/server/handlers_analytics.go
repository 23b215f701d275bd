package server

import (
	"net/http"

	"github.com/jonathan/resource-manager/internal/allocation"
)

// AnalyticsResponse is the body of GET /analytics.
type AnalyticsResponse struct {
	Analytics allocation.AnalyticsSnapshot `json:"analytics"`
	Engineers []allocation.Engineer        `json:"engineers"`
	Projects  []allocation.Project         `json:"projects"`
}

// handleAnalytics aggregates the whole team and returns the filtered engineer and project lists.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	f, err := queryFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	raw, err := s.store.LoadSnapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	snap := allocation.NewSnapshot(raw)

	engineers, projects := allocation.FilterEntities(snap.Engineers, snap.Projects, f)
	writeJSON(w, http.StatusOK, AnalyticsResponse{
		Analytics: allocation.Aggregate(snap.Engineers, snap.Projects, snap.Assignments),
		Engineers: engineers,
		Projects:  projects,
	})
}
