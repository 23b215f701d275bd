package types

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the date-range rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterStructValidation(dateRangeValidation,
			CreateProjectRequest{}, UpdateProjectRequest{},
			CreateAssignmentRequest{}, UpdateAssignmentRequest{})
	})
	return validate
}

// dateRangeValidation rejects an end date before the start date when both are present.
func dateRangeValidation(sl validator.StructLevel) {
	var start, end *Date
	switch r := sl.Current().Interface().(type) {
	case CreateProjectRequest:
		start, end = r.StartDate, r.EndDate
	case UpdateProjectRequest:
		start, end = r.StartDate, r.EndDate
	case CreateAssignmentRequest:
		start, end = r.StartDate, r.EndDate
	case UpdateAssignmentRequest:
		start, end = r.StartDate, r.EndDate
	default:
		return
	}
	if start != nil && end != nil && !start.IsZero() && !end.IsZero() && end.Before(start.Time) {
		sl.ReportError(end, "EndDate", "endDate", "gtefield", "StartDate")
	}
}

// CreateProjectRequest is the body of POST /projects.
type CreateProjectRequest struct {
	Name           string         `json:"name" validate:"required,min=1"`
	Description    *string        `json:"description,omitempty"`
	StartDate      *Date          `json:"startDate,omitempty"`
	EndDate        *Date          `json:"endDate,omitempty"`
	RequiredSkills []string       `json:"requiredSkills,omitempty" validate:"omitempty,dive,required"`
	TeamSize       *int           `json:"teamSize,omitempty" validate:"omitempty,min=1"`
	Status         *ProjectStatus `json:"status,omitempty" validate:"omitempty,oneof=planning active completed"`
}

// UpdateProjectRequest is the body of PUT /projects/{id}. Absent fields are left unchanged.
type UpdateProjectRequest struct {
	Name           *string        `json:"name,omitempty" validate:"omitempty,min=1"`
	Description    *string        `json:"description,omitempty"`
	StartDate      *Date          `json:"startDate,omitempty"`
	EndDate        *Date          `json:"endDate,omitempty"`
	RequiredSkills []string       `json:"requiredSkills,omitempty" validate:"omitempty,dive,required"`
	TeamSize       *int           `json:"teamSize,omitempty" validate:"omitempty,min=1"`
	Status         *ProjectStatus `json:"status,omitempty" validate:"omitempty,oneof=planning active completed"`
}

// Apply merges the set fields of the request into p.
func (r *UpdateProjectRequest) Apply(p *Project) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.StartDate != nil {
		p.StartDate = r.StartDate
	}
	if r.EndDate != nil {
		p.EndDate = r.EndDate
	}
	if r.RequiredSkills != nil {
		p.RequiredSkills = r.RequiredSkills
	}
	if r.TeamSize != nil {
		p.TeamSize = r.TeamSize
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
}

// CreateAssignmentRequest is the body of POST /assignments.
type CreateAssignmentRequest struct {
	EngineerID           int64   `json:"engineerId" validate:"required,gt=0"`
	ProjectID            int64   `json:"projectId" validate:"required,gt=0"`
	AllocationPercentage int     `json:"allocationPercentage" validate:"required,min=1,max=100"`
	StartDate            *Date   `json:"startDate,omitempty"`
	EndDate              *Date   `json:"endDate,omitempty"`
	Role                 *string `json:"role,omitempty"`
}

// UpdateAssignmentRequest is the body of PUT /assignments/{id}.
type UpdateAssignmentRequest struct {
	AllocationPercentage *int    `json:"allocationPercentage,omitempty" validate:"omitempty,min=1,max=100"`
	StartDate            *Date   `json:"startDate,omitempty"`
	EndDate              *Date   `json:"endDate,omitempty"`
	Role                 *string `json:"role,omitempty"`
}

// Apply merges the set fields of the request into a.
func (r *UpdateAssignmentRequest) Apply(a *Assignment) {
	if r.AllocationPercentage != nil {
		a.AllocationPercentage = r.AllocationPercentage
	}
	if r.StartDate != nil {
		a.StartDate = r.StartDate
	}
	if r.EndDate != nil {
		a.EndDate = r.EndDate
	}
	if r.Role != nil {
		a.Role = r.Role
	}
}

// Validate validates the CreateProjectRequest using the validator.
func (r *CreateProjectRequest) Validate() error {
	return Validator().Struct(r)
}

// Validate validates the UpdateProjectRequest using the validator.
func (r *UpdateProjectRequest) Validate() error {
	return Validator().Struct(r)
}

// Validate validates the CreateAssignmentRequest using the validator.
func (r *CreateAssignmentRequest) Validate() error {
	return Validator().Struct(r)
}

// Validate validates the UpdateAssignmentRequest using the validator.
func (r *UpdateAssignmentRequest) Validate() error {
	return Validator().Struct(r)
}
