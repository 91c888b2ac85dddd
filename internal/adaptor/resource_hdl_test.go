package adaptor_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceCRUDEndpoints(t *testing.T) {
	router := newTestRouter(t)

	resourceID := createResource(t, router, "available")

	// Get by ID
	rec := doJSON(t, router, http.MethodGet, "/api/resources/"+resourceID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "Meeting Room A", data["name"])

	// List with pagination envelope
	rec = doJSON(t, router, http.MethodGet, "/api/resources?page=1&per_page=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope = decodeEnvelope(t, rec)
	listing := envelope.Data.(map[string]any)
	pagination := listing["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["total"])

	// Update replaces mutable fields
	rec = doJSON(t, router, http.MethodPut, "/api/resources/"+resourceID, map[string]any{
		"name":   "Meeting Room B",
		"type":   "room",
		"status": "under_maintenance",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	envelope = decodeEnvelope(t, rec)
	updated := envelope.Data.(map[string]any)
	assert.Equal(t, "Meeting Room B", updated["name"])
	assert.Equal(t, "under_maintenance", updated["status"])

	// Delete, then the resource is gone
	rec = doJSON(t, router, http.MethodDelete, "/api/resources/"+resourceID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/resources/"+resourceID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResourceEndpoints_Validation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/resources", map[string]any{
		"name":   "",
		"type":   "room",
		"status": "available",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/resources", map[string]any{
		"name":   "Room",
		"type":   "room",
		"status": "sideways",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailabilityEndpoint(t *testing.T) {
	router := newTestRouter(t)
	resourceID := createResource(t, router, "available")

	rec := doJSON(t, router, http.MethodPost, "/api/resource-bookings", map[string]any{
		"resource_id": resourceID,
		"start_time":  "2025-01-01T09:00:00Z",
		"end_time":    "2025-01-01T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	check := func(start, end string) bool {
		path := fmt.Sprintf("/api/resources/%s/availability?start_time=%s&end_time=%s", resourceID, start, end)
		rec := doJSON(t, router, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		envelope := decodeEnvelope(t, rec)
		data := envelope.Data.(map[string]any)
		return data["available"].(bool)
	}

	assert.False(t, check("2025-01-01T09:30:00Z", "2025-01-01T10:30:00Z"))
	assert.True(t, check("2025-01-01T10:00:00Z", "2025-01-01T11:00:00Z"))

	// Missing params
	rec = doJSON(t, router, http.MethodGet, "/api/resources/"+resourceID+"/availability", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Inverted interval
	rec = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/resources/%s/availability?start_time=%s&end_time=%s",
			resourceID, "2025-01-01T11:00:00Z", "2025-01-01T10:00:00Z"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown resource reads as unavailable, not an error
	rec = doJSON(t, router, http.MethodGet,
		"/api/resources/7f9c24e5-35a1-4d7b-8f12-aa33bb44cc55/availability?start_time=2025-01-01T09:00:00Z&end_time=2025-01-01T10:00:00Z", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data := envelope.Data.(map[string]any)
	assert.False(t, data["available"].(bool))
}

func TestStatsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	resourceID := createResource(t, router, "available")

	rec := doJSON(t, router, http.MethodPost, "/api/resource-bookings", map[string]any{
		"resource_id": resourceID,
		"start_time":  "2025-01-01T09:00:00Z",
		"end_time":    "2025-01-01T17:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	path := fmt.Sprintf("/api/resources/%s/stats?start_date=%s&end_date=%s",
		resourceID, "2025-01-01T00:00:00Z", "2025-01-02T00:00:00Z")
	rec = doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	stats := envelope.Data.(map[string]any)
	assert.Equal(t, float64(1), stats["total_bookings"])
	assert.Equal(t, 8.0, stats["total_hours"])
	assert.Equal(t, 100.0, stats["utilization_percentage"])

	// Unknown resource is a 404
	rec = doJSON(t, router, http.MethodGet,
		"/api/resources/7f9c24e5-35a1-4d7b-8f12-aa33bb44cc55/stats", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
