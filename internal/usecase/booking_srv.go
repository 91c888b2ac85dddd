package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resource-booking/internal/data/entity"
	"resource-booking/internal/data/repository"
	"resource-booking/internal/dto/request"
	"resource-booking/internal/dto/response"
	"resource-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// CheckAvailability reports whether the resource can be booked for
	// [startTime, endTime). An unknown resource is unavailable, not an error.
	CheckAvailability(ctx context.Context, resourceID uuid.UUID, startTime, endTime time.Time) (bool, error)

	CreateBooking(ctx context.Context, req *request.CreateResourceBookingRequest) (*response.BookingResponse, error)
	GetBookings(ctx context.Context, resourceID, startDate, endDate string) ([]response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)

	// PurgeResourceBookings removes every booking of a resource. Called by
	// the resource-deletion cascade.
	PurgeResourceBookings(ctx context.Context, resourceID uuid.UUID) error
}

type bookingService struct {
	repo  *repository.Repository
	locks *resourceLocks
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		locks: newResourceLocks(),
		log:   log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CheckAvailability(ctx context.Context, resourceID uuid.UUID, startTime, endTime time.Time) (bool, error) {
	resource, err := s.repo.Resource.FindByID(ctx, resourceID)
	if err != nil {
		s.log.Error("Failed to load resource for availability check",
			zap.Error(err),
			zap.String("resource_id", resourceID.String()),
		)
		return false, fmt.Errorf("check availability for resource %s: %w", resourceID.String(), err)
	}

	// Unknown resource is reported as unavailable rather than an error.
	if resource == nil {
		return false, nil
	}

	// Maintenance overrides any open interval.
	if resource.Status == entity.ResourceStatusUnderMaintenance {
		return false, nil
	}

	bookings, err := s.repo.Booking.FindActiveByResourceID(ctx, resourceID)
	if err != nil {
		return false, fmt.Errorf("check availability for resource %s: %w", resourceID.String(), err)
	}

	for _, booking := range bookings {
		if intervalConflicts(startTime, endTime, booking.StartTime, booking.EndTime) {
			return false, nil
		}
	}

	return true, nil
}

// intervalConflicts tests the request interval against an existing booking
// using half-open [start, end) semantics, so touching intervals do not
// conflict. Three cases: request starts inside the booking, request ends
// inside the booking, request fully contains the booking.
func intervalConflicts(reqStart, reqEnd, bookingStart, bookingEnd time.Time) bool {
	startsInside := !reqStart.Before(bookingStart) && reqStart.Before(bookingEnd)
	endsInside := reqEnd.After(bookingStart) && !reqEnd.After(bookingEnd)
	contains := !bookingStart.Before(reqStart) && !bookingEnd.After(reqEnd)

	return startsInside || endsInside || contains
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateResourceBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	resourceID, err := uuid.Parse(req.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("invalid resource ID format %s: %w", req.ResourceID, err)
	}

	startTime, endTime, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	// Check and insert under the resource's lock so two racing requests for
	// the same slot cannot both pass the availability check.
	unlock := s.locks.lock(resourceID)
	defer unlock()

	available, err := s.CheckAvailability(ctx, resourceID, startTime, endTime)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("resource %s is not available for the requested time slot", req.ResourceID)
	}

	status := entity.BookingStatusConfirmed
	if req.Status != nil {
		status = entity.BookingStatus(*req.Status)
	}

	booking := &entity.ResourceBooking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ResourceID: resourceID,
		StartTime:  startTime,
		EndTime:    endTime,
		Status:     status,
		Notes:      req.Notes,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("resource_id", req.ResourceID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("resource_id", req.ResourceID),
		zap.Time("start_time", startTime),
		zap.Time("end_time", endTime),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookings(ctx context.Context, resourceID, startDate, endDate string) ([]response.BookingResponse, error) {
	var filter repository.BookingFilter

	if resourceID != "" {
		id, err := uuid.Parse(resourceID)
		if err != nil {
			return nil, fmt.Errorf("invalid resource ID format %s: %w", resourceID, err)
		}
		filter.ResourceID = &id
	}

	if startDate != "" {
		start, err := time.Parse(time.RFC3339, startDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %s: %w", startDate, err)
		}
		filter.StartDate = &start
	}

	if endDate != "" {
		end, err := time.Parse(time.RFC3339, endDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %s: %w", endDate, err)
		}
		filter.EndDate = &end
	}

	bookings, err := s.repo.Booking.FindAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to get bookings", zap.Error(err))
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking)
	}

	s.log.Info("Bookings retrieved",
		zap.Int("count", len(bookings)),
		zap.String("resource_id", resourceID),
	)

	return bookingResponses, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	// Cancelling an already-cancelled booking re-applies the status and
	// succeeds; cancellation is one-way and terminal.
	if err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	booking.Status = entity.BookingStatusCancelled

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("resource_id", booking.ResourceID.String()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) PurgeResourceBookings(ctx context.Context, resourceID uuid.UUID) error {
	unlock := s.locks.lock(resourceID)
	defer unlock()

	if err := s.repo.Booking.DeleteByResourceID(ctx, resourceID); err != nil {
		return fmt.Errorf("purge bookings for resource %s: %w", resourceID.String(), err)
	}

	return nil
}

// parseInterval parses both timestamps and rejects empty or inverted
// intervals up front, so invalid dates never reach the overlap arithmetic.
func parseInterval(startStr, endStr string) (time.Time, time.Time, error) {
	startTime, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time %s: %w", startStr, err)
	}

	endTime, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time %s: %w", endStr, err)
	}

	if !startTime.Before(endTime) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid interval: start time %s must be before end time %s", startStr, endStr)
	}

	return startTime, endTime, nil
}

// resourceLocks hands out one mutex per resource ID so the availability
// check and the insert run as a single critical section per resource.
type resourceLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newResourceLocks() *resourceLocks {
	return &resourceLocks{
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (l *resourceLocks) lock(resourceID uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[resourceID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[resourceID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
