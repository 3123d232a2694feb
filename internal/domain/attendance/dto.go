package attendance

import (
	"fmt"
	"strings"

	"github.com/hadirly/attendance-backend-go/internal/domain/geofence"
	"github.com/hadirly/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// Position is a client-reported location.
type Position struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

func (p *Position) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	if !validator.IsValidLatitude(p.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "position.latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if !validator.IsValidLongitude(p.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "position.longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if p.Accuracy != nil && *p.Accuracy < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "position.accuracy",
			Message: "accuracy must not be negative",
		})
	}
	return errs
}

// Coordinate converts the payload into the geofence domain type.
func (p *Position) Coordinate() geofence.Coordinate {
	return geofence.Coordinate{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Accuracy:  p.Accuracy,
	}
}

// Device identifies the requesting device. The fingerprint is an opaque
// client-computed identifier consumed by the trust gate; Name and Platform
// are stored on the record as human-readable device info.
type Device struct {
	Fingerprint string `json:"fingerprint"`
	Name        string `json:"name"`
	Platform    string `json:"platform,omitempty"`
}

func (d *Device) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	if !validator.IsValidFingerprint(d.Fingerprint) {
		errs = append(errs, validator.ValidationError{
			Field:   "device.fingerprint",
			Message: "fingerprint must be 16-128 characters of [A-Za-z0-9._:-]",
		})
	}
	if validator.IsEmpty(d.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "device.name",
			Message: "device name is required",
		})
	}
	return errs
}

// Info renders the device description stored on the record.
func (d *Device) Info() string {
	if d.Platform == "" {
		return d.Name
	}
	return fmt.Sprintf("%s (%s)", d.Name, d.Platform)
}

func validateCustomPremise(premise *geofence.CustomPremise, errs validator.ValidationErrors) validator.ValidationErrors {
	if premise == nil {
		return errs
	}
	if (premise.Latitude == nil) != (premise.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "custom_premise",
			Message: "custom premise must carry both latitude and longitude, or neither",
		})
	}
	if premise.Latitude != nil && !validator.IsValidLatitude(*premise.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "custom_premise.latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if premise.Longitude != nil && !validator.IsValidLongitude(*premise.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "custom_premise.longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if premise.RadiusMeters != nil && *premise.RadiusMeters < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "custom_premise.radius_meters",
			Message: "radius must be at least 1 meter",
		})
	}
	return errs
}

type CheckInRequest struct {
	Position      Position                `json:"position"`
	Device        Device                  `json:"device"`
	Notes         *string                 `json:"notes,omitempty"`
	CustomPremise *geofence.CustomPremise `json:"custom_premise,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = r.Position.validate(errs)
	errs = r.Device.validate(errs)
	errs = validateCustomPremise(r.CustomPremise, errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Position Position `json:"position"`
	Device   Device   `json:"device"`
	Notes    *string  `json:"notes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = r.Position.validate(errs)
	errs = r.Device.validate(errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLocationRequest struct {
	Position Position `json:"position"`
}

func (r *UpdateLocationRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = r.Position.validate(errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LocationUpdateResponse is returned by UpdateLocation; the full record is
// intentionally not echoed back for a tracking ping.
type LocationUpdateResponse struct {
	IsWithinGeofence bool    `json:"is_within_geofence"`
	DistanceMeters   float64 `json:"distance_meters"`
	RecordedAt       string  `json:"recorded_at"`
}

type GeofenceResponse struct {
	Label        string  `json:"label"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	CustomUsed   bool    `json:"custom_premise_used"`
}

type ClockEventResponse struct {
	Time           string   `json:"time"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Accuracy       *float64 `json:"accuracy,omitempty"`
	WithinGeofence bool     `json:"within_geofence"`
	DistanceMeters float64  `json:"distance_meters"`
	DeviceInfo     *string  `json:"device_info,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

type AttendanceResponse struct {
	ID           string              `json:"id"`
	EmployeeID   string              `json:"employee_id"`
	EmployeeName *string             `json:"employee_name,omitempty"`
	BranchID     string              `json:"branch_id"`
	Date         string              `json:"date"`
	CheckIn      *ClockEventResponse `json:"check_in,omitempty"`
	CheckOut     *ClockEventResponse `json:"check_out,omitempty"`
	WorkHours    *float64            `json:"work_hours,omitempty"`
	Status       string              `json:"status"`
	Geofence     GeofenceResponse    `json:"geofence"`
	CreatedAt    string              `json:"created_at"`
	UpdatedAt    string              `json:"updated_at"`
}

type TrackingEntryResponse struct {
	RecordedAt     string   `json:"recorded_at"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Accuracy       *float64 `json:"accuracy,omitempty"`
	WithinGeofence bool     `json:"within_geofence"`
	DistanceMeters float64  `json:"distance_meters"`
}

// TrackingResponse lists a record's audit trail plus the share of samples
// that fell inside the geofence, for compliance statistics.
type TrackingResponse struct {
	AttendanceID        string                  `json:"attendance_id"`
	Entries             []TrackingEntryResponse `json:"entries"`
	SampleCount         int                     `json:"sample_count"`
	WithinGeofenceRatio float64                 `json:"within_geofence_ratio"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ========================================
// FILTERS
// ========================================

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	BranchID   *string `json:"branch_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`    // date, clock_in, clock_out, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func validateFilterDates(date, startDate, endDate *string, errs validator.ValidationErrors) validator.ValidationErrors {
	if date != nil && *date != "" {
		if _, valid := validator.IsValidDate(*date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}
	if startDate != nil && *startDate != "" {
		if _, valid := validator.IsValidDate(*startDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if endDate != nil && *endDate != "" {
		if _, valid := validator.IsValidDate(*endDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	return errs
}

func validatePagination(page, limit *int, errs validator.ValidationErrors) validator.ValidationErrors {
	if *page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if *page == 0 {
		*page = 1
	}
	if *limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if *limit == 0 {
		*limit = 20
	}
	if *limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}
	return errs
}

func validateSort(sortBy, sortOrder *string, validFields []string, errs validator.ValidationErrors) validator.ValidationErrors {
	if *sortBy != "" {
		if !validator.IsInSlice(*sortBy, validFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: " + strings.Join(validFields, ", "),
			})
		}
	} else {
		*sortBy = "date"
	}
	if *sortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(*sortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		*sortOrder = "desc"
	}
	return errs
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = validatePagination(&f.Page, &f.Limit, errs)
	errs = validateFilterDates(f.Date, f.StartDate, f.EndDate, errs)
	errs = validateSort(&f.SortBy, &f.SortOrder, []string{"date", "clock_in", "clock_out", "status"}, errs)

	if f.Status != nil && !validator.IsInSlice(*f.Status, AssignableStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(AssignableStatuses, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MyAttendanceFilter struct {
	Date      *string `json:"date,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Status    *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = validatePagination(&f.Page, &f.Limit, errs)
	errs = validateFilterDates(f.Date, f.StartDate, f.EndDate, errs)
	errs = validateSort(&f.SortBy, &f.SortOrder, []string{"date", "clock_in", "clock_out", "status"}, errs)

	if f.Status != nil && !validator.IsInSlice(*f.Status, AssignableStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(AssignableStatuses, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAttendanceRequest is the admin correction path. It is also the only
// way a record reaches late/half_day/on_leave/absent; the check-in flow never
// assigns those.
type UpdateAttendanceRequest struct {
	ID           string  `json:"-"`
	Status       *string `json:"status,omitempty"`
	ClockInTime  *string `json:"clock_in_time,omitempty"`  // RFC3339
	ClockOutTime *string `json:"clock_out_time,omitempty"` // RFC3339
	Notes        *string `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !validator.IsInSlice(strings.ToLower(*r.Status), AssignableStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(AssignableStatuses, ", "),
		})
	}
	if r.ClockInTime != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockInTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in_time",
				Message: "clock_in_time must be an RFC3339 timestamp",
			})
		}
	}
	if r.ClockOutTime != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out_time",
				Message: "clock_out_time must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
