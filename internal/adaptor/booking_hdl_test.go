package adaptor_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"resource-booking/internal/data/repository"
	"resource-booking/internal/wire"
	"resource-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	repo := repository.NewMemoryRepository(zap.NewNop())
	app := wire.Wiring(repo, &utils.Config{}, zap.NewNop())
	return app.Router
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var envelope utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func createResource(t *testing.T, router *chi.Mux, status string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/resources", map[string]any{
		"name":   "Meeting Room A",
		"type":   "room",
		"status": status,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	id, ok := data["id"].(string)
	require.True(t, ok)
	return id
}

func TestCreateBookingEndpoint(t *testing.T) {
	router := newTestRouter(t)
	resourceID := createResource(t, router, "available")

	rec := doJSON(t, router, http.MethodPost, "/api/resource-bookings", map[string]any{
		"resource_id": resourceID,
		"start_time":  "2025-01-01T09:00:00Z",
		"end_time":    "2025-01-01T10:00:00Z",
		"notes":       "standup",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Status)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, resourceID, data["resource_id"])
	assert.Equal(t, "confirmed", data["status"])
	assert.NotEmpty(t, data["id"])
}

func TestCreateBookingEndpoint_Conflict(t *testing.T) {
	router := newTestRouter(t)
	resourceID := createResource(t, router, "available")

	payload := map[string]any{
		"resource_id": resourceID,
		"start_time":  "2025-01-01T09:00:00Z",
		"end_time":    "2025-01-01T10:00:00Z",
	}

	rec := doJSON(t, router, http.MethodPost, "/api/resource-bookings", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same slot again
	rec = doJSON(t, router, http.MethodPost, "/api/resource-bookings", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Touching slot is fine
	rec = doJSON(t, router, http.MethodPost, "/api/resource-bookings", map[string]any{
		"resource_id": resourceID,
		"start_time":  "2025-01-01T10:00:00Z",
		"end_time":    "2025-01-01T11:00:00Z",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateBookingEndpoint_UnknownResourceIsConflict(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/resource-bookings", map[string]any{
		"resource_id": "7f9c24e5-35a1-4d7b-8f12-aa33bb44cc55",
		"start_time":  "2025-01-01T09:00:00Z",
		"end_time":    "2025-01-01T10:00:00Z",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateBookingEndpoint_Validation(t *testing.T) {
	router := newTestRouter(t)
	resourceID := createResource(t, router, "available")

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"missing resource_id", map[string]any{
			"start_time": "2025-01-01T09:00:00Z",
			"end_time":   "2025-01-01T10:00:00Z",
		}},
		{"bad resource_id", map[string]any{
			"resource_id": "not-a-uuid",
			"start_time":  "2025-01-01T09:00:00Z",
			"end_time":    "2025-01-01T10:00:00Z",
		}},
		{"unparseable timestamps", map[string]any{
			"resource_id": resourceID,
			"start_time":  "yesterday",
			"end_time":    "tomorrow",
		}},
		{"inverted interval", map[string]any{
			"resource_id": resourceID,
			"start_time":  "2025-01-01T10:00:00Z",
			"end_time":    "2025-01-01T09:00:00Z",
		}},
		{"bad status", map[string]any{
			"resource_id": resourceID,
			"start_time":  "2025-01-01T09:00:00Z",
			"end_time":    "2025-01-01T10:00:00Z",
			"status":      "pending",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/resource-bookings", tt.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetBookingsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	resourceID := createResource(t, router, "available")
	otherID := createResource(t, router, "available")

	for _, id := range []string{resourceID, otherID} {
		rec := doJSON(t, router, http.MethodPost, "/api/resource-bookings", map[string]any{
			"resource_id": id,
			"start_time":  "2025-01-01T09:00:00Z",
			"end_time":    "2025-01-01T10:00:00Z",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/resource-bookings?resource_id="+resourceID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope.Data.([]any)
	require.True(t, ok)
	require.Len(t, data, 1)

	booking, ok := data[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, resourceID, booking["resource_id"])
}

func TestCancelBookingEndpoint(t *testing.T) {
	router := newTestRouter(t)
	resourceID := createResource(t, router, "available")

	rec := doJSON(t, router, http.MethodPost, "/api/resource-bookings", map[string]any{
		"resource_id": resourceID,
		"start_time":  "2025-01-01T09:00:00Z",
		"end_time":    "2025-01-01T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope.Data.(map[string]any)
	bookingID := data["id"].(string)

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/resource-bookings/%s/cancel", bookingID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope = decodeEnvelope(t, rec)
	cancelled := envelope.Data.(map[string]any)
	assert.Equal(t, "cancelled", cancelled["status"])

	// Cancelling twice still succeeds
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/resource-bookings/%s/cancel", bookingID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Unknown booking is a 404
	rec = doJSON(t, router, http.MethodPut, "/api/resource-bookings/7f9c24e5-35a1-4d7b-8f12-aa33bb44cc55/cancel", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
