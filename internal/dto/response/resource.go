package response

import (
	"encoding/json"
	"time"

	"resource-booking/internal/data/entity"
)

type ResourceResponse struct {
	ID                   string                `json:"id"`
	Name                 string                `json:"name"`
	Type                 string                `json:"type"`
	Description          *string               `json:"description,omitempty"`
	Status               entity.ResourceStatus `json:"status"`
	Capacity             *int                  `json:"capacity,omitempty"`
	AssignedUsers        []string              `json:"assigned_users,omitempty"`
	AvailabilitySchedule json.RawMessage       `json:"availability_schedule,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

type AvailabilityResponse struct {
	ResourceID string    `json:"resource_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Available  bool      `json:"available"`
}

type ResourceStatsResponse struct {
	ResourceID            string      `json:"resource_id"`
	TotalBookings         int         `json:"total_bookings"`
	TotalHours            float64     `json:"total_hours"`
	UtilizationPercentage float64     `json:"utilization_percentage"`
	Period                StatsPeriod `json:"period"`
}

type StatsPeriod struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Helper converters
func ResourceToResponse(resource *entity.Resource) ResourceResponse {
	return ResourceResponse{
		ID:                   resource.ID.String(),
		Name:                 resource.Name,
		Type:                 resource.Type,
		Description:          resource.Description,
		Status:               resource.Status,
		Capacity:             resource.Capacity,
		AssignedUsers:        resource.AssignedUsers,
		AvailabilitySchedule: resource.AvailabilitySchedule,
		CreatedAt:            resource.CreatedAt,
		UpdatedAt:            resource.UpdatedAt,
	}
}
