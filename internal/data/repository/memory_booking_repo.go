package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"resource-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memoryBookingRepository keeps bookings in a mutex-guarded map. Cancelled
// bookings stay in the map until their resource is deleted, so memory grows
// with every booking created.
type memoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]entity.ResourceBooking
	log      *zap.Logger
}

func NewMemoryBookingRepository(log *zap.Logger) BookingRepository {
	return &memoryBookingRepository{
		bookings: make(map[uuid.UUID]entity.ResourceBooking),
		log:      log.With(zap.String("repository", "booking_memory")),
	}
}

func (r *memoryBookingRepository) Create(ctx context.Context, booking *entity.ResourceBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[booking.ID]; exists {
		return fmt.Errorf("booking %s already exists", booking.ID.String())
	}

	r.bookings[booking.ID] = *booking
	return nil
}

func (r *memoryBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ResourceBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}

	return &booking, nil
}

func (r *memoryBookingRepository) FindActiveByResourceID(ctx context.Context, resourceID uuid.UUID) ([]*entity.ResourceBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []*entity.ResourceBooking
	for _, booking := range r.bookings {
		if booking.ResourceID != resourceID || booking.Status == entity.BookingStatusCancelled {
			continue
		}
		b := booking
		bookings = append(bookings, &b)
	}

	sortBookingsByStart(bookings)
	return bookings, nil
}

func (r *memoryBookingRepository) FindAll(ctx context.Context, filter BookingFilter) ([]*entity.ResourceBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []*entity.ResourceBooking
	for _, booking := range r.bookings {
		if booking.Status == entity.BookingStatusCancelled {
			continue
		}
		if filter.ResourceID != nil && booking.ResourceID != *filter.ResourceID {
			continue
		}
		// Window filter: include the booking if its interval overlaps the
		// window at all.
		if filter.StartDate != nil && !booking.EndTime.After(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && !booking.StartTime.Before(*filter.EndDate) {
			continue
		}
		b := booking
		bookings = append(bookings, &b)
	}

	sortBookingsByStart(bookings)
	return bookings, nil
}

func (r *memoryBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s not found", id.String())
	}

	booking.Status = status
	r.bookings[id] = booking
	return nil
}

func (r *memoryBookingRepository) DeleteByResourceID(ctx context.Context, resourceID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for id, booking := range r.bookings {
		if booking.ResourceID == resourceID {
			delete(r.bookings, id)
			count++
		}
	}

	r.log.Info("Bookings purged for resource",
		zap.String("resource_id", resourceID.String()),
		zap.Int64("count", count),
	)
	return nil
}

func sortBookingsByStart(bookings []*entity.ResourceBooking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})
}
