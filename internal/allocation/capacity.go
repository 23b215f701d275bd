package allocation

import (
	"time"

	"github.com/jonathan/resource-manager/internal/types"
)

const maxUtilization = 100

// AvailableCapacity returns the engineer's maxCapacity minus the allocation of every assignment
// of theirs that is active on asOf. A zero asOf means now.
//
// The result is not clamped: a negative value means the engineer is over-allocated.
func AvailableCapacity(engineer Engineer, assignments []Assignment, asOf time.Time) int {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	allocated := 0
	for i := range assignments {
		a := &assignments[i]
		if a.EngineerID == engineer.ID && IsActive(*a, asOf) {
			allocated += a.AllocationPercentage
		}
	}
	return engineer.MaxCapacity - allocated
}

// Utilization is the engineer's total allocation over all of their assignments, past and future,
// clamped to [0, 100]. Unlike AvailableCapacity it is a display figure and hides over-allocation.
func Utilization(engineer Engineer, assignments []Assignment) int {
	total := 0
	for i := range assignments {
		if assignments[i].EngineerID == engineer.ID {
			total += assignments[i].AllocationPercentage
		}
	}
	return clampUtilization(total)
}

// IsActive reports whether a has no end date or ends on or after the calendar day of asOf.
func IsActive(a Assignment, asOf time.Time) bool {
	if a.EndDate == nil {
		return true
	}
	return !calendarDay(a.EndDate.Time).Before(calendarDay(asOf))
}

// EngineerAssignments returns the assignments of one engineer, in input order.
func EngineerAssignments(engineerID int64, assignments []Assignment) []Assignment {
	out := make([]Assignment, 0)
	for i := range assignments {
		if assignments[i].EngineerID == engineerID {
			out = append(out, assignments[i])
		}
	}
	return out
}

// ActiveAssignments returns the assignments of one engineer that are active on asOf.
func ActiveAssignments(engineerID int64, assignments []Assignment, asOf time.Time) []Assignment {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	out := make([]Assignment, 0)
	for i := range assignments {
		if assignments[i].EngineerID == engineerID && IsActive(assignments[i], asOf) {
			out = append(out, assignments[i])
		}
	}
	return out
}

// EmploymentType labels a maxCapacity value.
func EmploymentType(maxCapacity int) string {
	switch maxCapacity {
	case 100:
		return "Full-time"
	case 50:
		return "Part-time"
	default:
		return "Unknown"
	}
}

func clampUtilization(v int) int {
	if v > maxUtilization {
		return maxUtilization
	}
	if v < 0 {
		return 0
	}
	return v
}

// calendarDay drops the clock part of t, keeping the date as seen in t's own location.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CapacityReport summarizes one engineer's load on a given day.
type CapacityReport struct {
	EngineerID        int64        `json:"engineerId"`
	Name              string       `json:"name"`
	AsOf              string       `json:"asOf"`
	MaxCapacity       int          `json:"maxCapacity"`
	AvailableCapacity int          `json:"availableCapacity"`
	Utilization       int          `json:"utilization"`
	EmploymentType    string       `json:"employmentType"`
	ActiveAssignments []Assignment `json:"activeAssignments"`
}

// Report builds the CapacityReport of engineer on asOf. A zero asOf means now.
func Report(engineer Engineer, assignments []Assignment, asOf time.Time) CapacityReport {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	return CapacityReport{
		EngineerID:        engineer.ID,
		Name:              engineer.Name,
		AsOf:              asOf.Format(types.DateLayout),
		MaxCapacity:       engineer.MaxCapacity,
		AvailableCapacity: AvailableCapacity(engineer, assignments, asOf),
		Utilization:       Utilization(engineer, assignments),
		EmploymentType:    EmploymentType(engineer.MaxCapacity),
		ActiveAssignments: ActiveAssignments(engineer.ID, assignments, asOf),
	}
}
