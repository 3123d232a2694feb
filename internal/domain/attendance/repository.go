package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records and their
// tracking trail. All methods take companyID to prevent cross-company access.
type AttendanceRepository interface {
	// CreateCheckIn inserts the day's record. The (employee_id, date) pair
	// is protected by a unique index; a concurrent duplicate insert is
	// reported with created=false and must be surfaced as AlreadyCheckedIn.
	CreateCheckIn(ctx context.Context, att Attendance) (result Attendance, created bool, err error)

	// GetByEmployeeAndDate retrieves the record for one employee and day,
	// or nil when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Attendance, error)

	// GetByID retrieves a record by ID with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// CompleteCheckOut writes the check-out fields. The update is guarded by
	// clock_out IS NULL; completed=false means a concurrent check-out won.
	CompleteCheckOut(ctx context.Context, att Attendance) (completed bool, err error)

	// Update applies an admin correction (status, clock times, work hours).
	Update(ctx context.Context, att Attendance) error

	// List retrieves records with filters and pagination (admin).
	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)

	// GetMyAttendance retrieves records for a specific employee.
	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter, companyID string) ([]Attendance, int64, error)

	// AppendTracking appends one position sample to a record's trail.
	AppendTracking(ctx context.Context, entry TrackingEntry) (TrackingEntry, error)

	// ListTracking returns a record's trail in insertion order.
	ListTracking(ctx context.Context, attendanceID string) ([]TrackingEntry, error)
}
