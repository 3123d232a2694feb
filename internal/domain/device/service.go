package device

import (
	"context"
)

// TrustGate is the verdict interface the attendance flow consumes. Only the
// query contract lives here; the approval workflow is DeviceService.
type TrustGate interface {
	// Verdict returns the trust status for an employee's device. Absent
	// devices yield StatusUnknown, never an error.
	Verdict(ctx context.Context, employeeID string, fingerprint string) (TrustStatus, error)
}

// DeviceService manages device registration and the approval workflow
// around the trust gate.
type DeviceService interface {
	TrustGate

	// RequestApproval registers an unrecognized device as pending and
	// returns its record ID.
	RequestApproval(ctx context.Context, req RequestApprovalRequest) (RequestApprovalResponse, error)

	// ListMyDevices returns the authenticated employee's devices.
	ListMyDevices(ctx context.Context) ([]DeviceResponse, error)

	// ListPending returns devices awaiting approval (admin).
	ListPending(ctx context.Context) ([]DeviceResponse, error)

	// Approve marks a pending device as trusted (admin).
	Approve(ctx context.Context, id string) (DeviceResponse, error)

	// Reject removes trust from a device (admin).
	Reject(ctx context.Context, id string) (DeviceResponse, error)
}
