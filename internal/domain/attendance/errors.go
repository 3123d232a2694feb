package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrDeviceNotApproved = errors.New("this device is not approved for attendance")
	ErrTrustCheckTimeout = errors.New("device trust check timed out, please retry")

	// Check-out / tracking errors
	ErrCheckInRequired   = errors.New("you have not checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
