// Package types provides the wire and storage shapes shared by the store, the API and the engine.
package types

import "time"

// Role is the access role of a user.
type Role string

const (
	RoleEngineer Role = "engineer"
	RoleManager  Role = "manager"
)

// Seniority is an engineer's seniority level.
type Seniority string

const (
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	StatusPlanning  ProjectStatus = "planning"
	StatusActive    ProjectStatus = "active"
	StatusCompleted ProjectStatus = "completed"
)

// DefaultMaxCapacity is the capacity given to engineers registered without one.
const DefaultMaxCapacity = 100

// User is a registered account. Engineer-only fields are optional.
type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        Role       `json:"role"`
	Skills      []string   `json:"skills,omitempty"`
	Seniority   *Seniority `json:"seniority,omitempty"`
	MaxCapacity *int       `json:"maxCapacity,omitempty"`
	Department  *string    `json:"department,omitempty"`
	CreatedAt   time.Time  `json:"createdAt,omitempty"`
}

// IsEngineer reports whether the user can be assigned to projects.
func (u *User) IsEngineer() bool {
	return u != nil && u.Role == RoleEngineer
}

// Project is a unit of work engineers are assigned to.
type Project struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	Description    *string       `json:"description,omitempty"`
	StartDate      *Date         `json:"startDate,omitempty"`
	EndDate        *Date         `json:"endDate,omitempty"`
	RequiredSkills []string      `json:"requiredSkills,omitempty"`
	TeamSize       *int          `json:"teamSize,omitempty"`
	Status         ProjectStatus `json:"status"`
	ManagerID      *int64        `json:"managerId,omitempty"`
}

// Assignment commits a share of an engineer's capacity to a project.
type Assignment struct {
	ID                   int64   `json:"id"`
	EngineerID           int64   `json:"engineerId"`
	ProjectID            int64   `json:"projectId"`
	AllocationPercentage *int    `json:"allocationPercentage,omitempty"`
	StartDate            *Date   `json:"startDate,omitempty"`
	EndDate              *Date   `json:"endDate,omitempty"`
	Role                 *string `json:"role,omitempty"`

	// Populated on list responses only.
	EngineerName *string `json:"engineerName,omitempty"`
	ProjectName  *string `json:"projectName,omitempty"`
}

// Snapshot is the set of collections the allocation engine works on.
type Snapshot struct {
	Users       []User       `json:"users"`
	Projects    []Project    `json:"projects"`
	Assignments []Assignment `json:"assignments"`
}
