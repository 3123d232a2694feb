package device

import (
	"github.com/hadirly/attendance-backend-go/internal/pkg/validator"
)

// RequestApprovalRequest registers an unrecognized device and asks for
// admin approval.
type RequestApprovalRequest struct {
	Fingerprint string  `json:"fingerprint"`
	Name        string  `json:"name"`
	Platform    *string `json:"platform,omitempty"`
}

func (r *RequestApprovalRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidFingerprint(r.Fingerprint) {
		errs = append(errs, validator.ValidationError{
			Field:   "fingerprint",
			Message: "fingerprint must be 16-128 characters of [A-Za-z0-9._:-]",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "device name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeviceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Fingerprint  string  `json:"fingerprint"`
	Name         string  `json:"name"`
	Platform     *string `json:"platform,omitempty"`
	Status       string  `json:"status"`
	LastSeenAt   *string `json:"last_seen_at,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// RequestApprovalResponse returns the registered device record ID so the
// client can poll its approval state.
type RequestApprovalResponse struct {
	DeviceID string `json:"device_id"`
	Status   string `json:"status"`
}
