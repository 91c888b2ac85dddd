package adaptor

import (
	"resource-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Resource *ResourceHandler
	Booking  *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Resource: NewResourceHandler(service.Resource, service.Booking, log),
		Booking:  NewBookingHandler(service.Booking, log),
	}
}
