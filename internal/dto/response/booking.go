package response

import (
	"time"

	"resource-booking/internal/data/entity"
)

type BookingResponse struct {
	ID         string               `json:"id"`
	ResourceID string               `json:"resource_id"`
	StartTime  time.Time            `json:"start_time"`
	EndTime    time.Time            `json:"end_time"`
	Status     entity.BookingStatus `json:"status"`
	Notes      *string              `json:"notes,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// Helper converters
func BookingToResponse(booking *entity.ResourceBooking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		ResourceID: booking.ResourceID.String(),
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		Status:     booking.Status,
		Notes:      booking.Notes,
		CreatedAt:  booking.CreatedAt,
	}
}
