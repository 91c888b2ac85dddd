package entity

import (
	"encoding/json"
)

type ResourceStatus string

const (
	ResourceStatusAvailable        ResourceStatus = "available"
	ResourceStatusBooked           ResourceStatus = "booked"
	ResourceStatusUnderMaintenance ResourceStatus = "under_maintenance"
)

type Resource struct {
	Base
	Name        string         `db:"name"`
	Type        string         `db:"type"`
	Description *string        `db:"description"`
	Status      ResourceStatus `db:"status"`
	Capacity    *int           `db:"capacity"`
	// AssignedUsers and AvailabilitySchedule are stored as-is; the
	// availability engine never interprets them.
	AssignedUsers        []string        `db:"assigned_users"`
	AvailabilitySchedule json.RawMessage `db:"availability_schedule"`
}
