package request

import "encoding/json"

type ResourceRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Type        string  `json:"type" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Status      string  `json:"status" validate:"required,oneof=available booked under_maintenance"`
	Capacity    *int    `json:"capacity,omitempty" validate:"omitempty,min=1"`
	// Opaque to the availability engine; stored as given.
	AssignedUsers        []string        `json:"assigned_users,omitempty" validate:"omitempty,dive,uuid4"`
	AvailabilitySchedule json.RawMessage `json:"availability_schedule,omitempty"`
}

// ResourceUpdateRequest replaces all mutable fields; the resource ID and
// created_at are immutable.
type ResourceUpdateRequest struct {
	Name                 string          `json:"name" validate:"required,min=1,max=100"`
	Type                 string          `json:"type" validate:"required,min=1,max=100"`
	Description          *string         `json:"description,omitempty" validate:"omitempty,max=500"`
	Status               string          `json:"status" validate:"required,oneof=available booked under_maintenance"`
	Capacity             *int            `json:"capacity,omitempty" validate:"omitempty,min=1"`
	AssignedUsers        []string        `json:"assigned_users,omitempty" validate:"omitempty,dive,uuid4"`
	AvailabilitySchedule json.RawMessage `json:"availability_schedule,omitempty"`
}
