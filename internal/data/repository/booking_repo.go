package repository

import (
	"context"
	"fmt"
	"time"

	"resource-booking/internal/data/entity"
	"resource-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter narrows FindAll. StartDate/EndDate select bookings whose
// interval overlaps the filter window at all.
type BookingFilter struct {
	ResourceID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.ResourceBooking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ResourceBooking, error)

	// FindActiveByResourceID returns the resource's non-cancelled bookings.
	FindActiveByResourceID(ctx context.Context, resourceID uuid.UUID) ([]*entity.ResourceBooking, error)

	// FindAll returns non-cancelled bookings matching the filter.
	FindAll(ctx context.Context, filter BookingFilter) ([]*entity.ResourceBooking, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error

	// DeleteByResourceID purges every booking of a resource, cancelled ones
	// included. Only the resource-deletion cascade calls this.
	DeleteByResourceID(ctx context.Context, resourceID uuid.UUID) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.ResourceBooking) error {
	query := `
		INSERT INTO resource_bookings (id, resource_id, start_time, end_time, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ResourceID,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.Notes,
		booking.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("resource_id", booking.ResourceID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ResourceBooking, error) {
	query := `
		SELECT id, resource_id, start_time, end_time, status, notes, created_at
		FROM resource_bookings
		WHERE id = $1
	`

	var booking entity.ResourceBooking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ResourceID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.Notes,
		&booking.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindActiveByResourceID(ctx context.Context, resourceID uuid.UUID) ([]*entity.ResourceBooking, error) {
	query := `
		SELECT id, resource_id, start_time, end_time, status, notes, created_at
		FROM resource_bookings
		WHERE resource_id = $1 AND status <> 'cancelled'
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, resourceID)
	if err != nil {
		r.log.Error("Failed to find active bookings by resource ID",
			zap.Error(err),
			zap.String("resource_id", resourceID.String()),
		)
		return nil, fmt.Errorf("find active bookings by resource ID %s: %w", resourceID.String(), err)
	}
	defer rows.Close()

	return scanBookings(rows, r.log)
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter) ([]*entity.ResourceBooking, error) {
	query := `
		SELECT id, resource_id, start_time, end_time, status, notes, created_at
		FROM resource_bookings
		WHERE status <> 'cancelled'
		  AND ($1::uuid IS NULL OR resource_id = $1)
		  AND ($2::timestamptz IS NULL OR end_time > $2)
		  AND ($3::timestamptz IS NULL OR start_time < $3)
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, filter.ResourceID, filter.StartDate, filter.EndDate)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows, r.log)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE resource_bookings SET status = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) DeleteByResourceID(ctx context.Context, resourceID uuid.UUID) error {
	query := `DELETE FROM resource_bookings WHERE resource_id = $1`

	result, err := r.db.Exec(ctx, query, resourceID)
	if err != nil {
		r.log.Error("Failed to delete bookings by resource ID",
			zap.Error(err),
			zap.String("resource_id", resourceID.String()),
		)
		return fmt.Errorf("delete bookings for resource %s: %w", resourceID.String(), err)
	}

	r.log.Info("Bookings purged for resource",
		zap.String("resource_id", resourceID.String()),
		zap.Int64("count", result.RowsAffected()),
	)
	return nil
}

func scanBookings(rows pgx.Rows, log *zap.Logger) ([]*entity.ResourceBooking, error) {
	var bookings []*entity.ResourceBooking
	for rows.Next() {
		var booking entity.ResourceBooking
		err := rows.Scan(
			&booking.ID,
			&booking.ResourceID,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.Notes,
			&booking.CreatedAt,
		)
		if err != nil {
			log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}
