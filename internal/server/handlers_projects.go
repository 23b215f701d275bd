package server

import (
	"context"
	"net/http"

	"github.com/jonathan/resource-manager/internal/allocation"
	"github.com/jonathan/resource-manager/internal/server/middleware"
	"github.com/jonathan/resource-manager/internal/types"
)

// ---------------------------------------------------------------------
// Project Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	sess, err := requestSession(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req types.CreateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	managerID := sess.UserID
	p := &types.Project{
		Name:           req.Name,
		Description:    req.Description,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		RequiredSkills: allocation.CleanSkills(req.RequiredSkills),
		TeamSize:       req.TeamSize,
		Status:         types.StatusPlanning,
		ManagerID:      &managerID,
	}
	if req.Status != nil {
		p.Status = *req.Status
	}

	id, err := s.store.CreateProject(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.loadProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	requestLogger(r.Context()).WithField("project_id", id).Info("project created")
	writeJSON(w, http.StatusCreated, created)
}

// handleListProjects returns every project to managers and only assigned projects to engineers.
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	sess, err := requestSession(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	f, err := queryFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var projects []types.Project
	if sess.IsManager() {
		projects, err = s.store.ListProjects(r.Context())
	} else {
		projects, err = s.store.ListProjectsForEngineer(r.Context(), sess.UserID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, filterProjects(projects, f))
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
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

	p, err := s.loadProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.authorizeProject(r.Context(), sess, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req types.UpdateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	p, err := s.loadProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	req.Apply(p)
	p.RequiredSkills = allocation.CleanSkills(p.RequiredSkills)
	if err := checkDateOrder(p.StartDate, p.EndDate); err != nil {
		writeError(w, r, err)
		return
	}

	ok, err := s.store.UpdateProject(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, &ErrNotFound{Resource: "project", ID: id})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok, err := s.store.DeleteProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, &ErrNotFound{Resource: "project", ID: id})
		return
	}
	requestLogger(r.Context()).WithField("project_id", id).Info("project deleted")
	w.WriteHeader(http.StatusNoContent)
}

// handleProjectCandidates lists every engineer with capacity and skill match for the project.
func (s *Server) handleProjectCandidates(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	asOf, err := s.queryAsOf(r)
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
	project := allocation.FindProject(snap.Projects, id)
	if project == nil {
		writeError(w, r, &ErrNotFound{Resource: "project", ID: id})
		return
	}
	writeJSON(w, http.StatusOK, allocation.Candidates(project, snap.Engineers, snap.Assignments, asOf))
}

func (s *Server) loadProject(ctx context.Context, id int64) (*types.Project, error) {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &ErrNotFound{Resource: "project", ID: id}
	}
	return p, nil
}

// authorizeProject lets managers see every project and engineers only those they are assigned to.
func (s *Server) authorizeProject(ctx context.Context, sess middleware.Session, projectID int64) error {
	if sess.IsManager() {
		return nil
	}
	assigned, err := s.store.HasAssignment(ctx, sess.UserID, projectID)
	if err != nil {
		return err
	}
	if !assigned {
		return &ErrForbidden{Reason: "not assigned to this project"}
	}
	return nil
}

// filterProjects applies the search and status filters, keeping the stored representation.
func filterProjects(projects []types.Project, f allocation.Filter) []types.Project {
	_, matched := allocation.FilterEntities(nil, allocation.NormalizeProjects(projects), f)
	keep := make(map[int64]struct{}, len(matched))
	for _, p := range matched {
		keep[p.ID] = struct{}{}
	}
	out := make([]types.Project, 0, len(matched))
	for _, p := range projects {
		if _, ok := keep[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

func checkDateOrder(start, end *types.Date) error {
	if start == nil || end == nil || start.IsZero() || end.IsZero() {
		return nil
	}
	if end.Before(start.Time) {
		return &ErrValidation{Field: "endDate", Message: "must not be before startDate"}
	}
	return nil
}
