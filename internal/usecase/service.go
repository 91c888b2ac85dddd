package usecase

import (
	"resource-booking/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	Resource ResourceService
	Booking  BookingService
}

func NewService(repo *repository.Repository, log *zap.Logger) *Service {
	booking := NewBookingService(repo, log)

	return &Service{
		Resource: NewResourceService(repo, booking, log),
		Booking:  booking,
	}
}
