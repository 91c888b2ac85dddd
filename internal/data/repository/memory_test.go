package repository

import (
	"context"
	"testing"
	"time"

	"resource-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBooking(resourceID uuid.UUID, start, end string, status entity.BookingStatus) *entity.ResourceBooking {
	startTime, _ := time.Parse(time.RFC3339, start)
	endTime, _ := time.Parse(time.RFC3339, end)

	return &entity.ResourceBooking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ResourceID: resourceID,
		StartTime:  startTime,
		EndTime:    endTime,
		Status:     status,
	}
}

func timePtr(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return &parsed
}

func TestMemoryBookingRepository_FindAllExcludesCancelled(t *testing.T) {
	repo := NewMemoryBookingRepository(zap.NewNop())
	ctx := context.Background()
	resourceID := uuid.New()

	confirmed := newBooking(resourceID, "2025-01-01T09:00:00Z", "2025-01-01T10:00:00Z", entity.BookingStatusConfirmed)
	cancelled := newBooking(resourceID, "2025-01-01T11:00:00Z", "2025-01-01T12:00:00Z", entity.BookingStatusCancelled)
	require.NoError(t, repo.Create(ctx, confirmed))
	require.NoError(t, repo.Create(ctx, cancelled))

	bookings, err := repo.FindAll(ctx, BookingFilter{ResourceID: &resourceID})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, confirmed.ID, bookings[0].ID)

	// Cancelled bookings stay stored and reachable by ID
	stored, err := repo.FindByID(ctx, cancelled.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.BookingStatusCancelled, stored.Status)
}

func TestMemoryBookingRepository_FindAllWindowOverlap(t *testing.T) {
	repo := NewMemoryBookingRepository(zap.NewNop())
	ctx := context.Background()
	resourceID := uuid.New()

	inside := newBooking(resourceID, "2025-01-01T09:00:00Z", "2025-01-01T10:00:00Z", entity.BookingStatusConfirmed)
	straddling := newBooking(resourceID, "2025-01-01T23:00:00Z", "2025-01-02T01:00:00Z", entity.BookingStatusConfirmed)
	outside := newBooking(resourceID, "2025-01-05T09:00:00Z", "2025-01-05T10:00:00Z", entity.BookingStatusConfirmed)
	touching := newBooking(resourceID, "2025-01-02T00:00:00Z", "2025-01-02T01:00:00Z", entity.BookingStatusConfirmed)

	for _, b := range []*entity.ResourceBooking{inside, straddling, outside, touching} {
		require.NoError(t, repo.Create(ctx, b))
	}

	bookings, err := repo.FindAll(ctx, BookingFilter{
		ResourceID: &resourceID,
		StartDate:  timePtr(t, "2025-01-01T00:00:00Z"),
		EndDate:    timePtr(t, "2025-01-02T00:00:00Z"),
	})
	require.NoError(t, err)

	ids := make(map[uuid.UUID]bool)
	for _, b := range bookings {
		ids[b.ID] = true
	}

	assert.True(t, ids[inside.ID])
	assert.True(t, ids[straddling.ID], "booking straddling the window edge overlaps it")
	assert.False(t, ids[outside.ID])
	assert.False(t, ids[touching.ID], "booking starting exactly at window end does not overlap")
}

func TestMemoryBookingRepository_UpdateStatus(t *testing.T) {
	repo := NewMemoryBookingRepository(zap.NewNop())
	ctx := context.Background()

	booking := newBooking(uuid.New(), "2025-01-01T09:00:00Z", "2025-01-01T10:00:00Z", entity.BookingStatusConfirmed)
	require.NoError(t, repo.Create(ctx, booking))

	require.NoError(t, repo.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled))

	stored, err := repo.FindByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCancelled, stored.Status)

	err = repo.UpdateStatus(ctx, uuid.New(), entity.BookingStatusCancelled)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMemoryBookingRepository_DeleteByResourceID(t *testing.T) {
	repo := NewMemoryBookingRepository(zap.NewNop())
	ctx := context.Background()
	resourceID := uuid.New()
	otherID := uuid.New()

	mine := newBooking(resourceID, "2025-01-01T09:00:00Z", "2025-01-01T10:00:00Z", entity.BookingStatusConfirmed)
	mineCancelled := newBooking(resourceID, "2025-01-02T09:00:00Z", "2025-01-02T10:00:00Z", entity.BookingStatusCancelled)
	other := newBooking(otherID, "2025-01-01T09:00:00Z", "2025-01-01T10:00:00Z", entity.BookingStatusConfirmed)

	for _, b := range []*entity.ResourceBooking{mine, mineCancelled, other} {
		require.NoError(t, repo.Create(ctx, b))
	}

	require.NoError(t, repo.DeleteByResourceID(ctx, resourceID))

	// Cancelled bookings are purged too
	stored, err := repo.FindByID(ctx, mineCancelled.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	// Other resources are untouched
	stored, err = repo.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestMemoryResourceRepository_CRUD(t *testing.T) {
	repo := NewMemoryResourceRepository(zap.NewNop())
	ctx := context.Background()

	now := time.Now()
	resource := &entity.Resource{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:   "Meeting Room A",
		Type:   "room",
		Status: entity.ResourceStatusAvailable,
	}

	require.NoError(t, repo.Create(ctx, resource))

	// Duplicate IDs are rejected
	err := repo.Create(ctx, resource)
	require.Error(t, err)

	stored, err := repo.FindByID(ctx, resource.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Meeting Room A", stored.Name)

	// The store hands out copies, not references into the map
	stored.Name = "Mutated"
	again, err := repo.FindByID(ctx, resource.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meeting Room A", again.Name)

	resource.Status = entity.ResourceStatusBooked
	require.NoError(t, repo.Update(ctx, resource))

	updated, err := repo.FindByID(ctx, resource.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ResourceStatusBooked, updated.Status)

	require.NoError(t, repo.Delete(ctx, resource.ID))

	gone, err := repo.FindByID(ctx, resource.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	err = repo.Delete(ctx, resource.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMemoryResourceRepository_FindAllFilterAndPaging(t *testing.T) {
	repo := NewMemoryResourceRepository(zap.NewNop())
	ctx := context.Background()

	statuses := []entity.ResourceStatus{
		entity.ResourceStatusAvailable,
		entity.ResourceStatusAvailable,
		entity.ResourceStatusUnderMaintenance,
	}
	for i, status := range statuses {
		now := time.Now().Add(time.Duration(i) * time.Millisecond)
		require.NoError(t, repo.Create(ctx, &entity.Resource{
			Base:   entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Name:   "Room",
			Type:   "room",
			Status: status,
		}))
	}

	all, err := repo.FindAll(ctx, 10, 0, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	maintenance := entity.ResourceStatusUnderMaintenance
	filtered, err := repo.FindAll(ctx, 10, 0, &maintenance)
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	count, err := repo.CountAll(ctx, &maintenance)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	paged, err := repo.FindAll(ctx, 2, 0, nil)
	require.NoError(t, err)
	assert.Len(t, paged, 2)

	rest, err := repo.FindAll(ctx, 2, 2, nil)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	empty, err := repo.FindAll(ctx, 2, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
