package employee

import "time"

type Employee struct {
	ID           string
	CompanyID    string
	BranchID     string
	FullName     string
	EmployeeCode string

	// Last known location, maintained fire-and-forget by the attendance
	// flow; not load-bearing for any invariant.
	LastLatitude   *float64
	LastLongitude  *float64
	LastLocationAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
