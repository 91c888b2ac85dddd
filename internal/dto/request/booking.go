package request

type CreateResourceBookingRequest struct {
	ResourceID string  `json:"resource_id" validate:"required,uuid4"`
	StartTime  string  `json:"start_time" validate:"required"`
	EndTime    string  `json:"end_time" validate:"required"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=confirmed cancelled"`
}
