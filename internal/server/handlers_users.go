package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resource-manager/internal/allocation"
	"github.com/jonathan/resource-manager/internal/server/middleware"
	"github.com/jonathan/resource-manager/internal/types"
)

// ---------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------

func requestSession(r *http.Request) (middleware.Session, error) {
	sess, err := middleware.SessionFrom(r.Context())
	if err != nil {
		return middleware.Session{}, &ErrForbidden{Reason: "no session"}
	}
	return sess, nil
}

// queryFilter reads the search, skill and status query parameters.
func queryFilter(r *http.Request) (allocation.Filter, error) {
	q := r.URL.Query()
	f := allocation.Filter{
		Search: strings.TrimSpace(q.Get("search")),
		Skill:  strings.TrimSpace(q.Get("skill")),
		Status: types.ProjectStatus(strings.TrimSpace(q.Get("status"))),
	}
	switch f.Status {
	case "", types.StatusPlanning, types.StatusActive, types.StatusCompleted:
		return f, nil
	default:
		return f, &ErrValidation{Field: "status", Message: "must be planning, active or completed"}
	}
}

// queryAsOf reads the as_of query parameter, defaulting to today.
func (s *Server) queryAsOf(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return s.now(), nil
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		return time.Time{}, &ErrValidation{Field: "as_of", Message: "expected YYYY-MM-DD"}
	}
	return d.Time, nil
}

// ---------------------------------------------------------------------
// User Handlers
// ---------------------------------------------------------------------

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	sess, err := requestSession(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := s.userService.GetUser(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	sess, err := requestSession(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !sess.IsManager() && sess.UserID != id {
		writeError(w, r, &ErrForbidden{Reason: "engineers may only view their own profile"})
		return
	}

	user, err := s.userService.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleListEngineers returns the engineers matching the search and skill filters.
func (s *Server) handleListEngineers(w http.ResponseWriter, r *http.Request) {
	f, err := queryFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	engineers, _ := allocation.FilterEntities(allocation.NormalizeEngineers(users), nil, f)
	writeJSON(w, http.StatusOK, engineers)
}

// handleEngineerCapacity reports an engineer's availability on the as_of date.
func (s *Server) handleEngineerCapacity(w http.ResponseWriter, r *http.Request) {
	sess, err := requestSession(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !sess.IsManager() && sess.UserID != id {
		writeError(w, r, &ErrForbidden{Reason: "engineers may only view their own capacity"})
		return
	}
	asOf, err := s.queryAsOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	record, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if record == nil || !record.IsEngineer() {
		writeError(w, r, &ErrNotFound{Resource: "engineer", ID: id})
		return
	}
	assignments, err := s.store.ListAssignmentsByEngineer(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	report := allocation.Report(
		allocation.NormalizeEngineer(record.User),
		allocation.NormalizeAssignments(assignments),
		asOf,
	)
	writeJSON(w, http.StatusOK, report)
}
