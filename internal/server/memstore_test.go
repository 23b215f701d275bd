package server

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/resource-manager/internal/db"
	"github.com/jonathan/resource-manager/internal/types"
)

// memStore is an in-memory Store for handler tests.
type memStore struct {
	mu          sync.Mutex
	nextID      int64
	users       map[int64]*db.UserRecord
	projects    map[int64]*types.Project
	assignments map[int64]*types.Assignment
	pingErr     error
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[int64]*db.UserRecord),
		projects:    make(map[int64]*types.Project),
		assignments: make(map[int64]*types.Assignment),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

func (m *memStore) CreateUser(_ context.Context, u *types.User, hash string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return 0, db.ErrDuplicate
		}
	}
	rec := &db.UserRecord{User: *u, PasswordHash: hash}
	rec.ID = m.id()
	rec.CreatedAt = time.Now()
	m.users[rec.ID] = rec
	return rec.ID, nil
}

func (m *memStore) GetUser(_ context.Context, id int64) (*db.UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*db.UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (m *memStore) ListUsers(context.Context) ([]types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.User, 0, len(m.users))
	for _, id := range sortedKeys(m.users) {
		out = append(out, m.users[id].User)
	}
	return out, nil
}

func (m *memStore) CreateProject(_ context.Context, p *types.Project) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.ID = m.id()
	m.projects[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memStore) GetProject(_ context.Context, id int64) (*types.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) ListProjects(context.Context) ([]types.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Project, 0, len(m.projects))
	for _, id := range sortedKeys(m.projects) {
		out = append(out, *m.projects[id])
	}
	return out, nil
}

func (m *memStore) ListProjectsForEngineer(ctx context.Context, engineerID int64) ([]types.Project, error) {
	all, _ := m.ListProjects(ctx)
	out := make([]types.Project, 0)
	for _, p := range all {
		if ok, _ := m.HasAssignment(ctx, engineerID, p.ID); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) UpdateProject(_ context.Context, p *types.Project) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[p.ID]; !ok {
		return false, nil
	}
	cp := *p
	m.projects[p.ID] = &cp
	return true, nil
}

func (m *memStore) DeleteProject(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return false, nil
	}
	delete(m.projects, id)
	for aid, a := range m.assignments {
		if a.ProjectID == id {
			delete(m.assignments, aid)
		}
	}
	return true, nil
}

func (m *memStore) CreateAssignment(_ context.Context, a *types.Assignment) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	cp.ID = m.id()
	m.assignments[cp.ID] = &cp
	return cp.ID, nil
}

// enrich fills the joined names. Caller holds the lock.
func (m *memStore) enrich(a types.Assignment) types.Assignment {
	if u, ok := m.users[a.EngineerID]; ok {
		name := u.Name
		a.EngineerName = &name
	}
	if p, ok := m.projects[a.ProjectID]; ok {
		name := p.Name
		a.ProjectName = &name
	}
	return a
}

func (m *memStore) GetAssignment(_ context.Context, id int64) (*types.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.assignments[id]; ok {
		cp := m.enrich(*a)
		return &cp, nil
	}
	return nil, nil
}

func (m *memStore) ListAssignments(context.Context) ([]types.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Assignment, 0, len(m.assignments))
	for _, id := range sortedKeys(m.assignments) {
		out = append(out, m.enrich(*m.assignments[id]))
	}
	return out, nil
}

func (m *memStore) ListAssignmentsByEngineer(ctx context.Context, engineerID int64) ([]types.Assignment, error) {
	all, _ := m.ListAssignments(ctx)
	out := make([]types.Assignment, 0)
	for _, a := range all {
		if a.EngineerID == engineerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) UpdateAssignment(_ context.Context, a *types.Assignment) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assignments[a.ID]; !ok {
		return false, nil
	}
	cp := *a
	m.assignments[a.ID] = &cp
	return true, nil
}

func (m *memStore) DeleteAssignment(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assignments[id]; !ok {
		return false, nil
	}
	delete(m.assignments, id)
	return true, nil
}

func (m *memStore) HasAssignment(_ context.Context, engineerID, projectID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assignments {
		if a.EngineerID == engineerID && a.ProjectID == projectID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) LoadSnapshot(ctx context.Context) (*types.Snapshot, error) {
	if m.pingErr != nil {
		return nil, errors.New("store unavailable")
	}
	users, _ := m.ListUsers(ctx)
	projects, _ := m.ListProjects(ctx)
	assignments, _ := m.ListAssignments(ctx)
	return &types.Snapshot{Users: users, Projects: projects, Assignments: assignments}, nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
