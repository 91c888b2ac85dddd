package repository

import (
	"resource-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Resource ResourceRepository
	Booking  BookingRepository
}

// NewRepository wires the postgres-backed repositories.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Resource: NewResourceRepository(db, log),
		Booking:  NewBookingRepository(db, log),
	}
}

// NewMemoryRepository wires the in-memory repositories. This is the default
// store: everything lives in process memory and is discarded on restart.
func NewMemoryRepository(log *zap.Logger) *Repository {
	return &Repository{
		Resource: NewMemoryResourceRepository(log),
		Booking:  NewMemoryBookingRepository(log),
	}
}
