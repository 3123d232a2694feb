package device

import "errors"

// Device domain errors
var (
	ErrDeviceNotFound          = errors.New("device not found")
	ErrDeviceAlreadyRegistered = errors.New("device already registered for this employee")
	ErrDeviceAlreadyProcessed  = errors.New("device has already been approved or rejected")
)
