package device

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirly/attendance-backend-go/internal/domain/device"
	"github.com/hadirly/attendance-backend-go/internal/pkg/sse"
)

type DeviceServiceImpl struct {
	device.DeviceRepository
	hub *sse.Hub
}

func NewDeviceService(deviceRepo device.DeviceRepository, hub *sse.Hub) device.DeviceService {
	return &DeviceServiceImpl{
		DeviceRepository: deviceRepo,
		hub:              hub,
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

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// Verdict implements device.TrustGate. An unseen fingerprint yields
// StatusUnknown; a rejected device also surfaces as StatusUnknown so callers
// cannot distinguish revoked trust from an unregistered device.
func (s *DeviceServiceImpl) Verdict(ctx context.Context, employeeID string, fingerprint string) (device.TrustStatus, error) {
	d, err := s.DeviceRepository.GetByFingerprint(ctx, employeeID, fingerprint)
	if err != nil {
		return device.StatusUnknown, err
	}
	if d == nil {
		return device.StatusUnknown, nil
	}

	// Usage bookkeeping only; a failure must not block the verdict.
	if err := s.DeviceRepository.TouchLastSeen(ctx, d.ID); err != nil {
		slog.Error("failed to touch device last seen", "device_id", d.ID, "error", err)
	}

	switch d.Status {
	case device.StatusApproved, device.StatusPending, device.StatusNew:
		return d.Status, nil
	default:
		return device.StatusUnknown, nil
	}
}

// RequestApproval implements device.DeviceService.
func (s *DeviceServiceImpl) RequestApproval(ctx context.Context, req device.RequestApprovalRequest) (device.RequestApprovalResponse, error) {
	if err := req.Validate(); err != nil {
		return device.RequestApprovalResponse{}, err
	}

	employeeID, companyID, err := identityFromContext(ctx)
	if err != nil {
		return device.RequestApprovalResponse{}, err
	}

	existing, err := s.DeviceRepository.GetByFingerprint(ctx, employeeID, req.Fingerprint)
	if err != nil {
		return device.RequestApprovalResponse{}, err
	}
	if existing != nil {
		// Re-registration is idempotent; approved and pending devices keep
		// their state instead of being demoted.
		return device.RequestApprovalResponse{
			DeviceID: existing.ID,
			Status:   string(existing.Status),
		}, nil
	}

	created, err := s.DeviceRepository.Create(ctx, device.Device{
		EmployeeID:  employeeID,
		CompanyID:   companyID,
		Fingerprint: req.Fingerprint,
		Name:        req.Name,
		Platform:    req.Platform,
		Status:      device.StatusPending,
	})
	if err != nil {
		return device.RequestApprovalResponse{}, err
	}

	s.hub.Publish(employeeID, sse.Event{
		EmployeeID: employeeID,
		Event:      sse.EventDevicePending,
		Data:       toDeviceResponse(created),
	})

	return device.RequestApprovalResponse{
		DeviceID: created.ID,
		Status:   string(created.Status),
	}, nil
}

// ListMyDevices implements device.DeviceService.
func (s *DeviceServiceImpl) ListMyDevices(ctx context.Context) ([]device.DeviceResponse, error) {
	employeeID, _, err := identityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	devices, err := s.DeviceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	return toDeviceResponses(devices), nil
}

// ListPending implements device.DeviceService.
func (s *DeviceServiceImpl) ListPending(ctx context.Context) ([]device.DeviceResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return nil, fmt.Errorf("company_id claim is missing or invalid")
	}

	devices, err := s.DeviceRepository.ListPending(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return toDeviceResponses(devices), nil
}

// Approve implements device.DeviceService.
func (s *DeviceServiceImpl) Approve(ctx context.Context, id string) (device.DeviceResponse, error) {
	return s.transition(ctx, id, device.StatusApproved)
}

// Reject implements device.DeviceService.
func (s *DeviceServiceImpl) Reject(ctx context.Context, id string) (device.DeviceResponse, error) {
	return s.transition(ctx, id, device.StatusRejected)
}

func (s *DeviceServiceImpl) transition(ctx context.Context, id string, status device.TrustStatus) (device.DeviceResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return device.DeviceResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return device.DeviceResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return device.DeviceResponse{}, err
	}

	current, err := s.DeviceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return device.DeviceResponse{}, err
	}
	if current.Status == status {
		return device.DeviceResponse{}, device.ErrDeviceAlreadyProcessed
	}

	updated, err := s.DeviceRepository.SetStatus(ctx, id, status, userID)
	if err != nil {
		return device.DeviceResponse{}, err
	}

	return toDeviceResponse(updated), nil
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func toDeviceResponse(d device.Device) device.DeviceResponse {
	return device.DeviceResponse{
		ID:           d.ID,
		EmployeeID:   d.EmployeeID,
		EmployeeName: d.EmployeeName,
		Fingerprint:  d.Fingerprint,
		Name:         d.Name,
		Platform:     d.Platform,
		Status:       string(d.Status),
		LastSeenAt:   timePtrToString(d.LastSeenAt),
		ApprovedAt:   timePtrToString(d.ApprovedAt),
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
	}
}

func toDeviceResponses(devices []device.Device) []device.DeviceResponse {
	responses := make([]device.DeviceResponse, 0, len(devices))
	for _, d := range devices {
		responses = append(responses, toDeviceResponse(d))
	}
	return responses
}
