package server

import (
	"context"
	"net/http"

	"github.com/jonathan/resource-manager/internal/allocation"
	"github.com/jonathan/resource-manager/internal/types"
	"github.com/sirupsen/logrus"
)

// ---------------------------------------------------------------------
// Assignment Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req types.CreateAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	ctx := r.Context()
	engineer, err := s.store.GetUser(ctx, req.EngineerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if engineer == nil || !engineer.IsEngineer() {
		writeError(w, r, &ErrValidation{Field: "engineerId", Message: "engineer does not exist"})
		return
	}
	project, err := s.store.GetProject(ctx, req.ProjectID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if project == nil {
		writeError(w, r, &ErrValidation{Field: "projectId", Message: "project does not exist"})
		return
	}

	allocationPct := req.AllocationPercentage
	a := &types.Assignment{
		EngineerID:           req.EngineerID,
		ProjectID:            req.ProjectID,
		AllocationPercentage: &allocationPct,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Role:                 req.Role,
	}
	id, err := s.store.CreateAssignment(ctx, a)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.loadAssignment(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.warnIfOverAllocated(ctx, engineer.User)
	requestLogger(ctx).WithFields(logrus.Fields{
		"assignment_id": id,
		"engineer_id":   req.EngineerID,
		"project_id":    req.ProjectID,
	}).Info("assignment created")
	writeJSON(w, http.StatusCreated, created)
}

// handleListAssignments returns every assignment to managers and only their own to engineers.
func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	sess, err := requestSession(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var assignments []types.Assignment
	if sess.IsManager() {
		assignments, err = s.store.ListAssignments(r.Context())
	} else {
		assignments, err = s.store.ListAssignmentsByEngineer(r.Context(), sess.UserID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (s *Server) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
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

	a, err := s.loadAssignment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !sess.IsManager() && a.EngineerID != sess.UserID {
		writeError(w, r, &ErrForbidden{Reason: "not your assignment"})
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleUpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req types.UpdateAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, validationError(err))
		return
	}

	a, err := s.loadAssignment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	req.Apply(a)
	if err := checkDateOrder(a.StartDate, a.EndDate); err != nil {
		writeError(w, r, err)
		return
	}

	ok, err := s.store.UpdateAssignment(r.Context(), a)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, &ErrNotFound{Resource: "assignment", ID: id})
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok, err := s.store.DeleteAssignment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, &ErrNotFound{Resource: "assignment", ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) loadAssignment(ctx context.Context, id int64) (*types.Assignment, error) {
	a, err := s.store.GetAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, &ErrNotFound{Resource: "assignment", ID: id}
	}
	return a, nil
}

// warnIfOverAllocated logs when the engineer's active assignments exceed their capacity.
// Over-allocation is allowed; it is reported, not rejected.
func (s *Server) warnIfOverAllocated(ctx context.Context, engineer types.User) {
	assignments, err := s.store.ListAssignmentsByEngineer(ctx, engineer.ID)
	if err != nil {
		requestLogger(ctx).WithError(err).Warn("capacity check skipped")
		return
	}
	available := allocation.AvailableCapacity(
		allocation.NormalizeEngineer(engineer),
		allocation.NormalizeAssignments(assignments),
		s.now(),
	)
	if available < 0 {
		requestLogger(ctx).WithFields(logrus.Fields{
			"engineer_id": engineer.ID,
			"available":   available,
		}).Warn("engineer is over-allocated")
	}
}
