package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ResourceBooking is soft-deleted: cancelling flips Status to cancelled and
// keeps the row. Bookings are physically removed only when their resource is
// deleted.
type ResourceBooking struct {
	BaseSimple
	ResourceID uuid.UUID     `db:"resource_id"`
	StartTime  time.Time     `db:"start_time"`
	EndTime    time.Time     `db:"end_time"`
	Status     BookingStatus `db:"status"`
	Notes      *string       `db:"notes"`
}
