package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirly/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirly/attendance-backend-go/internal/domain/device"
	"github.com/hadirly/attendance-backend-go/internal/domain/employee"
	"github.com/hadirly/attendance-backend-go/internal/domain/geofence"
	"github.com/hadirly/attendance-backend-go/internal/domain/master/branch"
	"github.com/hadirly/attendance-backend-go/internal/pkg/database"
	"github.com/hadirly/attendance-backend-go/internal/pkg/sse"
	"github.com/hadirly/attendance-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	employee.EmployeeRepository
	branch.BranchRepository
	trustGate device.TrustGate
	hub       *sse.Hub

	trustTimeout time.Duration
	clock        func() time.Time
}

// NewAttendanceService wires the attendance flow. A nil clock defaults to
// time.Now; tests inject a fixed clock to pin day boundaries.
func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	branchRepo branch.BranchRepository,
	trustGate device.TrustGate,
	hub *sse.Hub,
	trustTimeout time.Duration,
	clock func() time.Time,
) attendance.AttendanceService {
	if clock == nil {
		clock = time.Now
	}
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		BranchRepository:     branchRepo,
		trustGate:            trustGate,
		hub:                  hub,
		trustTimeout:         trustTimeout,
		clock:                clock,
	}
}

func identityFromContext(ctx context.Context) (employeeID, companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, companyID, nil
}

// requireApprovedDevice consults the trust gate under the configured timeout.
// Expiry is surfaced as a retryable timeout; any verdict other than approved
// is a hard rejection.
func (a *AttendanceServiceImpl) requireApprovedDevice(ctx context.Context, employeeID, fingerprint string) error {
	gateCtx, cancel := context.WithTimeout(ctx, a.trustTimeout)
	defer cancel()

	verdict, err := a.trustGate.Verdict(gateCtx, employeeID, fingerprint)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return attendance.ErrTrustCheckTimeout
		}
		return fmt.Errorf("failed to query device trust gate: %w", err)
	}

	if verdict != device.StatusApproved {
		return attendance.ErrDeviceNotApproved
	}

	return nil
}

// branchLocation loads the branch's timezone, falling back to UTC when the
// stored name does not resolve.
func branchLocation(b branch.Branch) *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return loc
}

// pushLastKnownLocation updates the employee directory and notifies SSE
// subscribers. Fire-and-forget: failures are logged, never surfaced, and the
// attendance record is already committed when this runs.
func (a *AttendanceServiceImpl) pushLastKnownLocation(employeeID string, pos attendance.Position, at time.Time, event string, payload interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.EmployeeRepository.UpdateLastKnownLocation(ctx, employeeID, pos.Latitude, pos.Longitude, at); err != nil {
			slog.Error("failed to push last known location", "employee_id", employeeID, "error", err)
		}

		a.hub.Publish(employeeID, sse.Event{
			EmployeeID: employeeID,
			Event:      event,
			Data:       payload,
		})
	}()
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, companyID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.requireApprovedDevice(ctx, employeeID, req.Device.Fingerprint); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	br, err := a.BranchRepository.GetByID(ctx, emp.BranchID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock().UTC()
	date := attendance.DayKey(now, branchLocation(br))

	// Resolved once here; the spec is snapshotted onto the record so
	// check-out and location updates keep evaluating the same perimeter.
	resolved := geofence.Resolve(br.Geofence(), req.CustomPremise)
	eval := geofence.Evaluate(req.Position.Coordinate(), resolved.Spec)

	deviceInfo := req.Device.Info()
	within := eval.IsWithin

	record := attendance.Attendance{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		BranchID:   emp.BranchID,
		Date:       date,

		ClockIn:               &now,
		ClockInLatitude:       &req.Position.Latitude,
		ClockInLongitude:      &req.Position.Longitude,
		ClockInAccuracy:       req.Position.Accuracy,
		ClockInWithinGeofence: &within,
		ClockInDistanceM:      &eval.DistanceMeters,
		ClockInDeviceInfo:     &deviceInfo,
		ClockInNotes:          req.Notes,

		Status: attendance.StatusForEvaluation(eval),

		GeofenceLabel:     resolved.Label,
		GeofenceLatitude:  resolved.Latitude,
		GeofenceLongitude: resolved.Longitude,
		GeofenceRadiusM:   resolved.RadiusMeters,
		CustomPremiseUsed: resolved.Source == geofence.SourceCustomPremise,
	}

	var created attendance.Attendance
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		result, ok, err := a.AttendanceRepository.CreateCheckIn(txCtx, record)
		if err != nil {
			return err
		}
		if !ok {
			return attendance.ErrAlreadyCheckedIn
		}

		if _, err := a.AttendanceRepository.AppendTracking(txCtx, attendance.TrackingEntry{
			AttendanceID:   result.ID,
			RecordedAt:     now,
			Latitude:       req.Position.Latitude,
			Longitude:      req.Position.Longitude,
			Accuracy:       req.Position.Accuracy,
			WithinGeofence: eval.IsWithin,
			DistanceM:      eval.DistanceMeters,
		}); err != nil {
			return err
		}

		created = result
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	resp := toAttendanceResponse(created)
	a.pushLastKnownLocation(employeeID, req.Position, now, sse.EventCheckIn, resp)

	return resp, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, companyID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.requireApprovedDevice(ctx, employeeID, req.Device.Fingerprint); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	br, err := a.BranchRepository.GetByID(ctx, emp.BranchID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock().UTC()
	date := attendance.DayKey(now, branchLocation(br))

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !record.HasCheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrCheckInRequired
	}
	if record.HasCheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	// The perimeter snapshotted at check-in, not a fresh branch fetch: the
	// branch geofence may have changed since the session opened.
	eval := geofence.Evaluate(req.Position.Coordinate(), record.GeofenceSpec())

	clockOut := now
	if clockOut.Before(*record.ClockIn) {
		// Host clock skew: never record a session that ends before it began.
		clockOut = *record.ClockIn
	}
	workHours := attendance.ComputeWorkHours(*record.ClockIn, clockOut)

	deviceInfo := req.Device.Info()
	within := eval.IsWithin

	record.ClockOut = &clockOut
	record.ClockOutLatitude = &req.Position.Latitude
	record.ClockOutLongitude = &req.Position.Longitude
	record.ClockOutAccuracy = req.Position.Accuracy
	record.ClockOutWithinGeofence = &within
	record.ClockOutDistanceM = &eval.DistanceMeters
	record.ClockOutDeviceInfo = &deviceInfo
	record.ClockOutNotes = req.Notes
	record.WorkHours = &workHours

	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		completed, err := a.AttendanceRepository.CompleteCheckOut(txCtx, *record)
		if err != nil {
			return err
		}
		if !completed {
			return attendance.ErrAlreadyCheckedOut
		}

		_, err = a.AttendanceRepository.AppendTracking(txCtx, attendance.TrackingEntry{
			AttendanceID:   record.ID,
			RecordedAt:     clockOut,
			Latitude:       req.Position.Latitude,
			Longitude:      req.Position.Longitude,
			Accuracy:       req.Position.Accuracy,
			WithinGeofence: eval.IsWithin,
			DistanceM:      eval.DistanceMeters,
		})
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	resp := toAttendanceResponse(*record)
	a.pushLastKnownLocation(employeeID, req.Position, clockOut, sse.EventCheckOut, resp)

	return resp, nil
}

// UpdateLocation implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateLocation(ctx context.Context, req attendance.UpdateLocationRequest) (attendance.LocationUpdateResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LocationUpdateResponse{}, err
	}

	employeeID, companyID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.LocationUpdateResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return attendance.LocationUpdateResponse{}, err
	}

	br, err := a.BranchRepository.GetByID(ctx, emp.BranchID, companyID)
	if err != nil {
		return attendance.LocationUpdateResponse{}, err
	}

	now := a.clock().UTC()
	date := attendance.DayKey(now, branchLocation(br))

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date, companyID)
	if err != nil {
		return attendance.LocationUpdateResponse{}, err
	}
	if !record.HasCheckedIn() {
		return attendance.LocationUpdateResponse{}, attendance.ErrCheckInRequired
	}

	eval := geofence.Evaluate(req.Position.Coordinate(), record.GeofenceSpec())

	if _, err := a.AttendanceRepository.AppendTracking(ctx, attendance.TrackingEntry{
		AttendanceID:   record.ID,
		RecordedAt:     now,
		Latitude:       req.Position.Latitude,
		Longitude:      req.Position.Longitude,
		Accuracy:       req.Position.Accuracy,
		WithinGeofence: eval.IsWithin,
		DistanceM:      eval.DistanceMeters,
	}); err != nil {
		return attendance.LocationUpdateResponse{}, err
	}

	resp := attendance.LocationUpdateResponse{
		IsWithinGeofence: eval.IsWithin,
		DistanceMeters:   eval.DistanceMeters,
		RecordedAt:       now.Format(time.RFC3339),
	}
	a.pushLastKnownLocation(employeeID, req.Position, now, sse.EventLocationUpdate, resp)

	return resp, nil
}

// GetTodayAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodayAttendance(ctx context.Context) (*attendance.AttendanceResponse, error) {
	employeeID, companyID, err := identityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	br, err := a.BranchRepository.GetByID(ctx, emp.BranchID, companyID)
	if err != nil {
		return nil, err
	}

	date := attendance.DayKey(a.clock().UTC(), branchLocation(br))

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date, companyID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	resp := toAttendanceResponse(*record)
	return &resp, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	employeeID, companyID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.GetMyAttendance(ctx, employeeID, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return toListResponse(records, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	_, companyID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return toListResponse(records, total, filter.Page, filter.Limit), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	_, companyID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(record), nil
}

// GetTracking implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTracking(ctx context.Context, id string) (attendance.TrackingResponse, error) {
	_, companyID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.TrackingResponse{}, err
	}

	// Company isolation happens here; the trail itself is keyed by record.
	record, err := a.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.TrackingResponse{}, err
	}

	entries, err := a.AttendanceRepository.ListTracking(ctx, record.ID)
	if err != nil {
		return attendance.TrackingResponse{}, err
	}

	resp := attendance.TrackingResponse{
		AttendanceID: record.ID,
		Entries:      make([]attendance.TrackingEntryResponse, 0, len(entries)),
		SampleCount:  len(entries),
	}

	within := 0
	for _, e := range entries {
		if e.WithinGeofence {
			within++
		}
		resp.Entries = append(resp.Entries, attendance.TrackingEntryResponse{
			RecordedAt:     e.RecordedAt.Format(time.RFC3339),
			Latitude:       e.Latitude,
			Longitude:      e.Longitude,
			Accuracy:       e.Accuracy,
			WithinGeofence: e.WithinGeofence,
			DistanceMeters: e.DistanceM,
		})
	}
	if len(entries) > 0 {
		resp.WithinGeofenceRatio = math.Round(float64(within)/float64(len(entries))*100) / 100
	}

	return resp, nil
}

// UpdateAttendance implements attendance.AttendanceService. This is the admin
// correction path and the only way a record reaches late/half_day/on_leave/
// absent.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	_, companyID, err := identityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.Status != nil {
		record.Status = attendance.Status(*req.Status)
	}
	if req.ClockInTime != nil {
		t, err := time.Parse(time.RFC3339, *req.ClockInTime)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse clock_in_time: %w", err)
		}
		utc := t.UTC()
		record.ClockIn = &utc
	}
	if req.ClockOutTime != nil {
		t, err := time.Parse(time.RFC3339, *req.ClockOutTime)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse clock_out_time: %w", err)
		}
		utc := t.UTC()
		record.ClockOut = &utc
	}
	if req.Notes != nil {
		record.ClockInNotes = req.Notes
	}

	if record.ClockIn != nil && record.ClockOut != nil {
		if record.ClockOut.Before(*record.ClockIn) {
			return attendance.AttendanceResponse{}, fmt.Errorf("clock_out_time must not precede clock_in_time")
		}
		hours := attendance.ComputeWorkHours(*record.ClockIn, *record.ClockOut)
		record.WorkHours = &hours
	}

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(record), nil
}

// ========================================
// RESPONSE MAPPING
// ========================================

func clockEvent(t *time.Time, lat, lon, accuracy *float64, within *bool, distance *float64, deviceInfo, notes *string) *attendance.ClockEventResponse {
	if t == nil {
		return nil
	}
	resp := &attendance.ClockEventResponse{
		Time:       t.Format(time.RFC3339),
		DeviceInfo: deviceInfo,
		Notes:      notes,
	}
	if lat != nil {
		resp.Latitude = *lat
	}
	if lon != nil {
		resp.Longitude = *lon
	}
	resp.Accuracy = accuracy
	if within != nil {
		resp.WithinGeofence = *within
	}
	if distance != nil {
		resp.DistanceMeters = *distance
	}
	return resp
}

func toAttendanceResponse(a attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		BranchID:     a.BranchID,
		Date:         a.Date.Format("2006-01-02"),
		CheckIn: clockEvent(a.ClockIn, a.ClockInLatitude, a.ClockInLongitude, a.ClockInAccuracy,
			a.ClockInWithinGeofence, a.ClockInDistanceM, a.ClockInDeviceInfo, a.ClockInNotes),
		CheckOut: clockEvent(a.ClockOut, a.ClockOutLatitude, a.ClockOutLongitude, a.ClockOutAccuracy,
			a.ClockOutWithinGeofence, a.ClockOutDistanceM, a.ClockOutDeviceInfo, a.ClockOutNotes),
		WorkHours: a.WorkHours,
		Status:    string(a.Status),
		Geofence: attendance.GeofenceResponse{
			Label:        a.GeofenceLabel,
			Latitude:     a.GeofenceLatitude,
			Longitude:    a.GeofenceLongitude,
			RadiusMeters: a.GeofenceRadiusM,
			CustomUsed:   a.CustomPremiseUsed,
		},
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

func toListResponse(records []attendance.Attendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	resp := attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		Attendances: make([]attendance.AttendanceResponse, 0, len(records)),
	}
	if limit > 0 {
		resp.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	for _, r := range records {
		resp.Attendances = append(resp.Attendances, toAttendanceResponse(r))
	}
	return resp
}
