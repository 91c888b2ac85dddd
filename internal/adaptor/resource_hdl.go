package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"resource-booking/internal/dto/request"
	"resource-booking/internal/dto/response"
	"resource-booking/internal/usecase"
	"resource-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ResourceHandler struct {
	service usecase.ResourceService
	booking usecase.BookingService
	log     *zap.Logger
}

func NewResourceHandler(service usecase.ResourceService, booking usecase.BookingService, log *zap.Logger) *ResourceHandler {
	return &ResourceHandler{
		service: service,
		booking: booking,
		log:     log.With(zap.String("handler", "resource")),
	}
}

// CreateResource handles POST /api/resources
func (h *ResourceHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var req request.ResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resource, err := h.service.CreateResource(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create resource")
		return
	}

	utils.ResponseCreated(w, "success", resource)
}

// GetResources handles GET /api/resources
func (h *ResourceHandler) GetResources(w http.ResponseWriter, r *http.Request) {
	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	// Filter by status (optional)
	var statusFilter *string
	if status := query.Get("status"); status != "" {
		statusFilter = &status
	}

	resources, err := h.service.GetResources(r.Context(), req, statusFilter)
	if err != nil {
		h.handleServiceError(w, err, "get resources")
		return
	}

	utils.ResponseSuccess(w, "success", resources)
}

// GetResourceByID handles GET /api/resources/{id}
func (h *ResourceHandler) GetResourceByID(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")
	if resourceID == "" {
		utils.ResponseBadRequest(w, "Resource ID is required", nil)
		return
	}

	resource, err := h.service.GetResourceByID(r.Context(), resourceID)
	if err != nil {
		h.handleServiceError(w, err, "get resource by ID")
		return
	}

	utils.ResponseSuccess(w, "success", resource)
}

// UpdateResource handles PUT /api/resources/{id}
func (h *ResourceHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")
	if resourceID == "" {
		utils.ResponseBadRequest(w, "Resource ID is required", nil)
		return
	}

	var req request.ResourceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resource, err := h.service.UpdateResource(r.Context(), resourceID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update resource")
		return
	}

	utils.ResponseSuccess(w, "success", resource)
}

// DeleteResource handles DELETE /api/resources/{id}
func (h *ResourceHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")
	if resourceID == "" {
		utils.ResponseBadRequest(w, "Resource ID is required", nil)
		return
	}

	if err := h.service.DeleteResource(r.Context(), resourceID); err != nil {
		h.handleServiceError(w, err, "delete resource")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CheckAvailability handles GET /api/resources/{id}/availability
// Requires query params: ?start_time=...&end_time=... (RFC 3339)
func (h *ResourceHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")
	if resourceID == "" {
		utils.ResponseBadRequest(w, "Resource ID is required", nil)
		return
	}

	id, err := uuid.Parse(resourceID)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid resource ID format", nil)
		return
	}

	query := r.URL.Query()
	startStr := query.Get("start_time")
	endStr := query.Get("end_time")
	if startStr == "" || endStr == "" {
		utils.ResponseBadRequest(w, "Both start_time and end_time query parameters are required", nil)
		return
	}

	startTime, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid start_time format, expected RFC 3339", nil)
		return
	}

	endTime, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid end_time format, expected RFC 3339", nil)
		return
	}

	if !startTime.Before(endTime) {
		utils.ResponseBadRequest(w, "start_time must be before end_time", nil)
		return
	}

	available, err := h.booking.CheckAvailability(r.Context(), id, startTime, endTime)
	if err != nil {
		h.handleServiceError(w, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", response.AvailabilityResponse{
		ResourceID: resourceID,
		StartTime:  startTime,
		EndTime:    endTime,
		Available:  available,
	})
}

// GetResourceStats handles GET /api/resources/{id}/stats
// Optional query params: ?start_date=...&end_date=... (RFC 3339)
func (h *ResourceHandler) GetResourceStats(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")
	if resourceID == "" {
		utils.ResponseBadRequest(w, "Resource ID is required", nil)
		return
	}

	query := r.URL.Query()
	stats, err := h.service.GetResourceStats(r.Context(), resourceID,
		query.Get("start_date"),
		query.Get("end_date"),
	)
	if err != nil {
		h.handleServiceError(w, err, "get resource stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// handleServiceError maps resource service errors to HTTP responses
func (h *ResourceHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
