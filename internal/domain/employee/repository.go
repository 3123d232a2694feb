package employee

import (
	"context"
	"time"
)

// EmployeeRepository is the slice of the person directory the attendance
// core consults.
type EmployeeRepository interface {
	// GetByID retrieves an employee with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// Exists reports whether the employee is known to the directory.
	Exists(ctx context.Context, id string, companyID string) (bool, error)

	// UpdateLastKnownLocation pushes the most recent position to the
	// directory. Fire-and-forget: callers log failures and move on.
	UpdateLastKnownLocation(ctx context.Context, id string, latitude, longitude float64, at time.Time) error
}
