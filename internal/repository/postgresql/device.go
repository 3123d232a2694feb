package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hadirly/attendance-backend-go/internal/domain/device"
	"github.com/hadirly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type deviceRepositoryImpl struct {
	db *database.DB
}

func NewDeviceRepository(db *database.DB) device.DeviceRepository {
	return &deviceRepositoryImpl{db: db}
}

const deviceColumns = `d.id, d.employee_id, d.company_id, d.fingerprint, d.name, d.platform,
	d.status, d.last_seen_at, d.approved_by, d.approved_at, d.created_at, d.updated_at`

func scanDevice(row pgx.Row, withEmployee bool) (device.Device, error) {
	var d device.Device
	dest := []interface{}{
		&d.ID, &d.EmployeeID, &d.CompanyID, &d.Fingerprint, &d.Name, &d.Platform,
		&d.Status, &d.LastSeenAt, &d.ApprovedBy, &d.ApprovedAt, &d.CreatedAt, &d.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &d.EmployeeName)
	}
	err := row.Scan(dest...)
	return d, err
}

// GetByFingerprint implements device.DeviceRepository.
func (r *deviceRepositoryImpl) GetByFingerprint(ctx context.Context, employeeID string, fingerprint string) (*device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + deviceColumns + `
		FROM devices d
		WHERE d.employee_id = $1 AND d.fingerprint = $2
	`

	d, err := scanDevice(q.QueryRow(ctx, query, employeeID, fingerprint), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Never seen this device
		}
		return nil, fmt.Errorf("failed to get device by fingerprint: %w", err)
	}

	return &d, nil
}

// Create implements device.DeviceRepository.
// ON CONFLICT returns the existing row so two concurrent registrations of
// the same device converge on one record.
func (r *deviceRepositoryImpl) Create(ctx context.Context, d device.Device) (device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO devices (id, employee_id, company_id, fingerprint, name, platform, status, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (employee_id, fingerprint) DO UPDATE SET updated_at = NOW()
		RETURNING id, status, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		d.EmployeeID, d.CompanyID, d.Fingerprint, d.Name, d.Platform, d.Status,
	).Scan(&d.ID, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return device.Device{}, fmt.Errorf("failed to create device: %w", err)
	}

	return d, nil
}

// GetByID implements device.DeviceRepository.
func (r *deviceRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + deviceColumns + `
		FROM devices d
		WHERE d.id = $1 AND d.company_id = $2
	`

	d, err := scanDevice(q.QueryRow(ctx, query, id, companyID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return device.Device{}, device.ErrDeviceNotFound
		}
		return device.Device{}, fmt.Errorf("failed to get device by ID: %w", err)
	}

	return d, nil
}

// ListByEmployee implements device.DeviceRepository.
func (r *deviceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + deviceColumns + `
		FROM devices d
		WHERE d.employee_id = $1
		ORDER BY d.created_at DESC
	`

	return r.queryDevices(ctx, q, query, false, employeeID)
}

// ListPending implements device.DeviceRepository.
func (r *deviceRepositoryImpl) ListPending(ctx context.Context, companyID string) ([]device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + deviceColumns + `,
			e.full_name AS employee_name
		FROM devices d
		LEFT JOIN employees e ON e.id = d.employee_id
		WHERE d.company_id = $1 AND d.status = 'pending'
		ORDER BY d.created_at ASC
	`

	return r.queryDevices(ctx, q, query, true, companyID)
}

func (r *deviceRepositoryImpl) queryDevices(ctx context.Context, q database.Querier, query string, withEmployee bool, args ...interface{}) ([]device.Device, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []device.Device
	for rows.Next() {
		d, err := scanDevice(rows, withEmployee)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device row: %w", err)
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate device rows: %w", err)
	}

	return devices, nil
}

// SetStatus implements device.DeviceRepository.
func (r *deviceRepositoryImpl) SetStatus(ctx context.Context, id string, status device.TrustStatus, approvedBy string) (device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE devices d SET
			status = $1,
			approved_by = $2,
			approved_at = NOW(),
			updated_at = NOW()
		WHERE d.id = $3
		RETURNING ` + deviceColumns

	d, err := scanDevice(q.QueryRow(ctx, query, status, approvedBy, id), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return device.Device{}, device.ErrDeviceNotFound
		}
		return device.Device{}, fmt.Errorf("failed to set device status: %w", err)
	}

	return d, nil
}

// TouchLastSeen implements device.DeviceRepository.
func (r *deviceRepositoryImpl) TouchLastSeen(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE devices SET last_seen_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to touch device last seen: %w", err)
	}

	return nil
}
