package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
// Identity (employee, company) is taken from the JWT claims in ctx.
type AttendanceService interface {
	// CheckIn opens the day's record after the device trust check passes.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes the day's record and fixes the total duration.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// UpdateLocation appends a tracking sample to the day's record.
	UpdateLocation(ctx context.Context, req UpdateLocationRequest) (LocationUpdateResponse, error)

	// GetTodayAttendance returns today's record, or nil when none exists.
	GetTodayAttendance(ctx context.Context) (*AttendanceResponse, error)

	// GetMyAttendance retrieves records for the authenticated employee.
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves records with filters (admin/manager).
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single record by ID.
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// GetTracking lists a record's location trail with compliance stats.
	GetTracking(ctx context.Context, id string) (TrackingResponse, error)

	// UpdateAttendance applies an admin correction.
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
}
