package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hadirly/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.company_id, a.branch_id, a.date,
	a.clock_in, a.clock_in_latitude, a.clock_in_longitude, a.clock_in_accuracy,
	a.clock_in_within_geofence, a.clock_in_distance_m, a.clock_in_device_info, a.clock_in_notes,
	a.clock_out, a.clock_out_latitude, a.clock_out_longitude, a.clock_out_accuracy,
	a.clock_out_within_geofence, a.clock_out_distance_m, a.clock_out_device_info, a.clock_out_notes,
	a.work_hours, a.status,
	a.geofence_label, a.geofence_latitude, a.geofence_longitude, a.geofence_radius_m,
	a.custom_premise_used, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, withEmployee bool) (attendance.Attendance, error) {
	var att attendance.Attendance
	dest := []interface{}{
		&att.ID, &att.EmployeeID, &att.CompanyID, &att.BranchID, &att.Date,
		&att.ClockIn, &att.ClockInLatitude, &att.ClockInLongitude, &att.ClockInAccuracy,
		&att.ClockInWithinGeofence, &att.ClockInDistanceM, &att.ClockInDeviceInfo, &att.ClockInNotes,
		&att.ClockOut, &att.ClockOutLatitude, &att.ClockOutLongitude, &att.ClockOutAccuracy,
		&att.ClockOutWithinGeofence, &att.ClockOutDistanceM, &att.ClockOutDeviceInfo, &att.ClockOutNotes,
		&att.WorkHours, &att.Status,
		&att.GeofenceLabel, &att.GeofenceLatitude, &att.GeofenceLongitude, &att.GeofenceRadiusM,
		&att.CustomPremiseUsed, &att.CreatedAt, &att.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &att.EmployeeName)
	}
	err := row.Scan(dest...)
	return att, err
}

// CreateCheckIn implements attendance.AttendanceRepository.
// The unique index on (employee_id, date) makes the first check-in of the day
// a race-free insert: a concurrent duplicate sees the conflict and returns
// created=false instead of a second row.
func (a *attendanceRepository) CreateCheckIn(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, company_id, branch_id, date,
			clock_in, clock_in_latitude, clock_in_longitude, clock_in_accuracy,
			clock_in_within_geofence, clock_in_distance_m, clock_in_device_info, clock_in_notes,
			status, geofence_label, geofence_latitude, geofence_longitude, geofence_radius_m,
			custom_premise_used, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW(), NOW()
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.CompanyID,
		att.BranchID,
		att.Date,
		att.ClockIn,
		att.ClockInLatitude,
		att.ClockInLongitude,
		att.ClockInAccuracy,
		att.ClockInWithinGeofence,
		att.ClockInDistanceM,
		att.ClockInDeviceInfo,
		att.ClockInNotes,
		att.Status,
		att.GeofenceLabel,
		att.GeofenceLatitude,
		att.GeofenceLongitude,
		att.GeofenceRadiusM,
		att.CustomPremiseUsed,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost the uniqueness race: a record for this day already exists.
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, true, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.date = $2
		  AND a.company_id = $3
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, companyID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for this day yet
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `,
			e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.company_id = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id, companyID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// CompleteCheckOut implements attendance.AttendanceRepository.
// The clock_out IS NULL guard makes the close idempotent under races: the
// second of two concurrent check-outs affects zero rows.
func (a *attendanceRepository) CompleteCheckOut(ctx context.Context, att attendance.Attendance) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			clock_out = $1,
			clock_out_latitude = $2,
			clock_out_longitude = $3,
			clock_out_accuracy = $4,
			clock_out_within_geofence = $5,
			clock_out_distance_m = $6,
			clock_out_device_info = $7,
			clock_out_notes = $8,
			work_hours = $9,
			updated_at = NOW()
		WHERE id = $10 AND clock_out IS NULL
	`

	tag, err := q.Exec(ctx, query,
		att.ClockOut,
		att.ClockOutLatitude,
		att.ClockOutLongitude,
		att.ClockOutAccuracy,
		att.ClockOutWithinGeofence,
		att.ClockOutDistanceM,
		att.ClockOutDeviceInfo,
		att.ClockOutNotes,
		att.WorkHours,
		att.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to complete check-out: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			clock_in = $1,
			clock_out = $2,
			work_hours = $3,
			status = $4,
			updated_at = NOW()
		WHERE id = $5 AND company_id = $6
	`

	tag, err := q.Exec(ctx, query,
		att.ClockIn,
		att.ClockOut,
		att.WorkHours,
		att.Status,
		att.ID,
		att.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

func buildAttendanceWhere(employeeID, branchID, date, startDate, endDate, status *string, companyID string) (string, []interface{}) {
	where := "a.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if employeeID != nil && *employeeID != "" {
		where += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *employeeID)
		argIdx++
	}
	if branchID != nil && *branchID != "" {
		where += fmt.Sprintf(" AND a.branch_id = $%d", argIdx)
		args = append(args, *branchID)
		argIdx++
	}
	if date != nil && *date != "" {
		where += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *date)
		argIdx++
	}
	if startDate != nil && *startDate != "" {
		where += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *startDate)
		argIdx++
	}
	if endDate != nil && *endDate != "" {
		where += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *endDate)
		argIdx++
	}
	if status != nil && *status != "" {
		where += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *status)
	}

	return where, args
}

func orderClause(sortBy, sortOrder string) string {
	field := "a.date"
	switch sortBy {
	case "clock_in":
		field = "a.clock_in"
	case "clock_out":
		field = "a.clock_out"
	case "status":
		field = "a.status"
	}
	order := "DESC"
	if strings.ToLower(sortOrder) == "asc" {
		order = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s, a.id %s", field, order, order)
}

func (a *attendanceRepository) listWhere(ctx context.Context, where string, args []interface{}, sortBy, sortOrder string, page, limit int) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s,
			e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		%s
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, where, orderClause(sortBy, sortOrder), len(args)+1, len(args)+2)

	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return result, total, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	where, args := buildAttendanceWhere(filter.EmployeeID, filter.BranchID, filter.Date, filter.StartDate, filter.EndDate, filter.Status, companyID)
	return a.listWhere(ctx, where, args, filter.SortBy, filter.SortOrder, filter.Page, filter.Limit)
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	where, args := buildAttendanceWhere(&employeeID, nil, filter.Date, filter.StartDate, filter.EndDate, filter.Status, companyID)
	return a.listWhere(ctx, where, args, filter.SortBy, filter.SortOrder, filter.Page, filter.Limit)
}

// AppendTracking implements attendance.AttendanceRepository.
// uuidv7 keys keep the trail ordered by insertion even when two samples
// share a recorded_at timestamp.
func (a *attendanceRepository) AppendTracking(ctx context.Context, entry attendance.TrackingEntry) (attendance.TrackingEntry, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO location_tracking (
			id, attendance_id, recorded_at, latitude, longitude, accuracy,
			within_geofence, distance_m
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		entry.AttendanceID,
		entry.RecordedAt,
		entry.Latitude,
		entry.Longitude,
		entry.Accuracy,
		entry.WithinGeofence,
		entry.DistanceM,
	).Scan(&entry.ID)

	if err != nil {
		return attendance.TrackingEntry{}, fmt.Errorf("failed to append tracking entry: %w", err)
	}

	return entry, nil
}

// ListTracking implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListTracking(ctx context.Context, attendanceID string) ([]attendance.TrackingEntry, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, attendance_id, recorded_at, latitude, longitude, accuracy,
			   within_geofence, distance_m
		FROM location_tracking
		WHERE attendance_id = $1
		ORDER BY recorded_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking entries: %w", err)
	}
	defer rows.Close()

	var entries []attendance.TrackingEntry
	for rows.Next() {
		var e attendance.TrackingEntry
		if err := rows.Scan(
			&e.ID, &e.AttendanceID, &e.RecordedAt, &e.Latitude, &e.Longitude,
			&e.Accuracy, &e.WithinGeofence, &e.DistanceM,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tracking entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracking entries: %w", err)
	}

	return entries, nil
}
