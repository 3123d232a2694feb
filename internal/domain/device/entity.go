package device

import "time"

// TrustStatus is the verdict the attendance flow consumes. Only
// StatusApproved permits a check-in; every other verdict is a hard
// rejection, never a soft warning.
type TrustStatus string

const (
	StatusApproved TrustStatus = "approved"
	StatusPending  TrustStatus = "pending"
	StatusNew      TrustStatus = "new"
	StatusUnknown  TrustStatus = "unknown"

	// StatusRejected is storage-only: a rejected device surfaces through
	// the gate as StatusUnknown.
	StatusRejected TrustStatus = "rejected"
)

// Device is one registered device for one employee. The fingerprint is an
// opaque identifier computed by the client; how it is derived is out of
// scope here.
type Device struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	Fingerprint string
	Name        string
	Platform    *string
	Status      TrustStatus
	LastSeenAt  *time.Time
	ApprovedBy  *string
	ApprovedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for listings
	EmployeeName *string
}
