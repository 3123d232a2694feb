package attendance

import (
	"math"
	"time"

	"github.com/hadirly/attendance-backend-go/internal/domain/geofence"
)

// Status of a day's attendance record. The check-in flow only ever assigns
// Present (inside the geofence) or Pending (outside, flagged for manual
// review). The remaining statuses are assigned through the admin update
// operation; the service never infers them.
type Status string

const (
	StatusPresent Status = "present"
	StatusPending Status = "pending"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	StatusOnLeave Status = "on_leave"
	StatusAbsent  Status = "absent"
)

// AssignableStatuses are the values the admin update operation accepts.
var AssignableStatuses = []string{
	string(StatusPresent), string(StatusPending), string(StatusLate),
	string(StatusHalfDay), string(StatusOnLeave), string(StatusAbsent),
}

// Attendance is one employee's record for one calendar date. The pair
// (EmployeeID, Date) is unique; ClockIn and ClockOut are immutable once set.
// The geofence fields snapshot the perimeter resolved at check-in so that
// check-out and location updates evaluate against the same perimeter even if
// the branch geofence changes mid-day.
type Attendance struct {
	ID         string
	EmployeeID string
	CompanyID  string
	BranchID   string
	Date       time.Time

	ClockIn               *time.Time
	ClockInLatitude       *float64
	ClockInLongitude      *float64
	ClockInAccuracy       *float64
	ClockInWithinGeofence *bool
	ClockInDistanceM      *float64
	ClockInDeviceInfo     *string
	ClockInNotes          *string

	ClockOut               *time.Time
	ClockOutLatitude       *float64
	ClockOutLongitude      *float64
	ClockOutAccuracy       *float64
	ClockOutWithinGeofence *bool
	ClockOutDistanceM      *float64
	ClockOutDeviceInfo     *string
	ClockOutNotes          *string

	WorkHours *float64
	Status    Status

	GeofenceLabel     string
	GeofenceLatitude  float64
	GeofenceLongitude float64
	GeofenceRadiusM   float64
	CustomPremiseUsed bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for listings
	EmployeeName *string
}

// TrackingEntry is one append-only position sample tied to a record.
// Entries are never removed or reordered; they exist for audit only and are
// never read back to drive a state transition.
type TrackingEntry struct {
	ID             string
	AttendanceID   string
	RecordedAt     time.Time
	Latitude       float64
	Longitude      float64
	Accuracy       *float64
	WithinGeofence bool
	DistanceM      float64
}

// GeofenceSpec rebuilds the perimeter snapshotted at check-in.
func (a *Attendance) GeofenceSpec() geofence.Spec {
	return geofence.Spec{
		Latitude:     a.GeofenceLatitude,
		Longitude:    a.GeofenceLongitude,
		RadiusMeters: a.GeofenceRadiusM,
		Label:        a.GeofenceLabel,
	}
}

// GeofenceSource reports which perimeter source the record was opened with.
func (a *Attendance) GeofenceSource() geofence.Source {
	if a.CustomPremiseUsed {
		return geofence.SourceCustomPremise
	}
	return geofence.SourceBranch
}

// HasCheckedIn reports whether the day's session was opened.
func (a *Attendance) HasCheckedIn() bool {
	return a != nil && a.ClockIn != nil
}

// HasCheckedOut reports whether the day's session was closed.
func (a *Attendance) HasCheckedOut() bool {
	return a != nil && a.ClockOut != nil
}

// StatusForEvaluation derives the check-in status from a membership check.
func StatusForEvaluation(eval geofence.Evaluation) Status {
	if eval.IsWithin {
		return StatusPresent
	}
	return StatusPending
}

// ComputeWorkHours returns the session duration in hours, rounded to two
// decimals (half away from zero). Callers guarantee out >= in because
// check-out is rejected unless it chronologically follows check-in.
func ComputeWorkHours(in, out time.Time) float64 {
	hours := out.Sub(in).Hours()
	return math.Round(hours*100) / 100
}

// DayKey truncates an instant to its calendar date in the given location.
// The returned value is midnight UTC of that local date, which is what the
// DATE column stores.
func DayKey(instant time.Time, loc *time.Location) time.Time {
	local := instant.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
