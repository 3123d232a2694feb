package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hadirly/attendance-backend-go/internal/domain/device"
	"github.com/hadirly/attendance-backend-go/internal/handler/http/response"
)

type DeviceHandler interface {
	RequestApproval(w http.ResponseWriter, r *http.Request)
	ListMyDevices(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type deviceHandlerImpl struct {
	deviceService device.DeviceService
}

func NewDeviceHandler(deviceService device.DeviceService) DeviceHandler {
	return &deviceHandlerImpl{
		deviceService: deviceService,
	}
}

// RequestApproval implements DeviceHandler.
func (h *deviceHandlerImpl) RequestApproval(w http.ResponseWriter, r *http.Request) {
	var req device.RequestApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode device approval request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.deviceService.RequestApproval(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Device registered, awaiting approval", result)
}

// ListMyDevices implements DeviceHandler.
func (h *deviceHandlerImpl) ListMyDevices(w http.ResponseWriter, r *http.Request) {
	result, err := h.deviceService.ListMyDevices(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPending implements DeviceHandler.
func (h *deviceHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	result, err := h.deviceService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements DeviceHandler.
func (h *deviceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.deviceService.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Device approved", result)
}

// Reject implements DeviceHandler.
func (h *deviceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.deviceService.Reject(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Device rejected", result)
}
