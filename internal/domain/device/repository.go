package device

import (
	"context"
)

// DeviceRepository defines data access for registered devices.
type DeviceRepository interface {
	// GetByFingerprint retrieves an employee's device by fingerprint, or
	// nil when the device has never been seen.
	GetByFingerprint(ctx context.Context, employeeID string, fingerprint string) (*Device, error)

	// Create registers a device. A concurrent duplicate registration for
	// the same (employee, fingerprint) returns the existing row.
	Create(ctx context.Context, d Device) (Device, error)

	// GetByID retrieves a device by ID with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Device, error)

	// ListByEmployee returns all devices registered to one employee.
	ListByEmployee(ctx context.Context, employeeID string) ([]Device, error)

	// ListPending returns devices awaiting approval for a company.
	ListPending(ctx context.Context, companyID string) ([]Device, error)

	// SetStatus transitions a device's trust status (approve/reject).
	SetStatus(ctx context.Context, id string, status TrustStatus, approvedBy string) (Device, error)

	// TouchLastSeen records that the device was used.
	TouchLastSeen(ctx context.Context, id string) error
}
