package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"resource-booking/internal/data/entity"
	"resource-booking/internal/data/repository"
	"resource-booking/internal/dto/request"
	"resource-booking/internal/dto/response"
	"resource-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// statsHoursPerDay is the theoretical daily booking capacity used by the
// utilization formula. The resource's own availability schedule is stored but
// never consulted here.
const statsHoursPerDay = 8

// defaultStatsPeriodDays is the stats window when the caller supplies no
// date range.
const defaultStatsPeriodDays = 30

type ResourceService interface {
	CreateResource(ctx context.Context, req *request.ResourceRequest) (*response.ResourceResponse, error)
	GetResources(ctx context.Context, req *request.PaginatedRequest, statusFilter *string) (*response.PaginatedResponse[response.ResourceResponse], error)
	GetResourceByID(ctx context.Context, resourceID string) (*response.ResourceResponse, error)
	UpdateResource(ctx context.Context, resourceID string, req *request.ResourceUpdateRequest) (*response.ResourceResponse, error)

	// DeleteResource removes the resource and purges all its bookings,
	// cancelled ones included.
	DeleteResource(ctx context.Context, resourceID string) error

	GetResourceStats(ctx context.Context, resourceID, startDate, endDate string) (*response.ResourceStatsResponse, error)
}

type resourceService struct {
	repo    *repository.Repository
	booking BookingService
	log     *zap.Logger
}

func NewResourceService(repo *repository.Repository, booking BookingService, log *zap.Logger) ResourceService {
	return &resourceService{
		repo:    repo,
		booking: booking,
		log:     log.With(zap.String("service", "resource")),
	}
}

func (s *resourceService) CreateResource(ctx context.Context, req *request.ResourceRequest) (*response.ResourceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create resource validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	resource := &entity.Resource{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:                 req.Name,
		Type:                 req.Type,
		Description:          req.Description,
		Status:               entity.ResourceStatus(req.Status),
		Capacity:             req.Capacity,
		AssignedUsers:        req.AssignedUsers,
		AvailabilitySchedule: req.AvailabilitySchedule,
	}

	if err := s.repo.Resource.Create(ctx, resource); err != nil {
		s.log.Error("Failed to create resource",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create resource: %w", err)
	}

	s.log.Info("Resource created",
		zap.String("resource_id", resource.ID.String()),
		zap.String("name", resource.Name),
		zap.String("type", resource.Type),
	)

	resp := response.ResourceToResponse(resource)
	return &resp, nil
}

func (s *resourceService) GetResources(ctx context.Context, req *request.PaginatedRequest, statusFilter *string) (*response.PaginatedResponse[response.ResourceResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	var status *entity.ResourceStatus
	if statusFilter != nil {
		st := entity.ResourceStatus(*statusFilter)
		status = &st
	}

	resources, err := s.repo.Resource.FindAll(ctx, limit, offset, status)
	if err != nil {
		s.log.Error("Failed to get resources",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get resources: %w", err)
	}

	total, err := s.repo.Resource.CountAll(ctx, status)
	if err != nil {
		s.log.Error("Failed to count resources", zap.Error(err))
		return nil, fmt.Errorf("count resources: %w", err)
	}

	resourceResponses := make([]response.ResourceResponse, len(resources))
	for i, resource := range resources {
		resourceResponses[i] = response.ResourceToResponse(resource)
	}

	s.log.Info("Resources retrieved",
		zap.Int("count", len(resources)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(resourceResponses, req.Page, req.PerPage, total), nil
}

func (s *resourceService) GetResourceByID(ctx context.Context, resourceID string) (*response.ResourceResponse, error) {
	id, err := uuid.Parse(resourceID)
	if err != nil {
		return nil, fmt.Errorf("invalid resource ID format %s: %w", resourceID, err)
	}

	resource, err := s.repo.Resource.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get resource by ID",
			zap.Error(err),
			zap.String("resource_id", resourceID),
		)
		return nil, fmt.Errorf("get resource %s: %w", resourceID, err)
	}

	if resource == nil {
		return nil, fmt.Errorf("resource %s not found", resourceID)
	}

	resp := response.ResourceToResponse(resource)
	return &resp, nil
}

func (s *resourceService) UpdateResource(ctx context.Context, resourceID string, req *request.ResourceUpdateRequest) (*response.ResourceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update resource validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(resourceID)
	if err != nil {
		return nil, fmt.Errorf("invalid resource ID format %s: %w", resourceID, err)
	}

	resource, err := s.repo.Resource.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update resource %s: %w", resourceID, err)
	}
	if resource == nil {
		return nil, fmt.Errorf("resource %s not found", resourceID)
	}

	// Full replace of mutable fields. ID and CreatedAt are immutable;
	// UpdatedAt advances on every mutation.
	resource.Name = req.Name
	resource.Type = req.Type
	resource.Description = req.Description
	resource.Status = entity.ResourceStatus(req.Status)
	resource.Capacity = req.Capacity
	resource.AssignedUsers = req.AssignedUsers
	resource.AvailabilitySchedule = req.AvailabilitySchedule
	resource.UpdatedAt = time.Now()

	if err := s.repo.Resource.Update(ctx, resource); err != nil {
		s.log.Error("Failed to update resource",
			zap.Error(err),
			zap.String("resource_id", resourceID),
		)
		return nil, fmt.Errorf("update resource %s: %w", resourceID, err)
	}

	s.log.Info("Resource updated",
		zap.String("resource_id", resourceID),
		zap.String("name", resource.Name),
		zap.String("status", string(resource.Status)),
	)

	resp := response.ResourceToResponse(resource)
	return &resp, nil
}

func (s *resourceService) DeleteResource(ctx context.Context, resourceID string) error {
	id, err := uuid.Parse(resourceID)
	if err != nil {
		return fmt.Errorf("invalid resource ID format %s: %w", resourceID, err)
	}

	resource, err := s.repo.Resource.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete resource %s: %w", resourceID, err)
	}
	if resource == nil {
		return fmt.Errorf("resource %s not found", resourceID)
	}

	// Purge bookings first so a failed resource delete never leaves the
	// resource without its booking history.
	if err := s.booking.PurgeResourceBookings(ctx, id); err != nil {
		s.log.Error("Failed to purge bookings for resource",
			zap.Error(err),
			zap.String("resource_id", resourceID),
		)
		return err
	}

	if err := s.repo.Resource.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete resource",
			zap.Error(err),
			zap.String("resource_id", resourceID),
		)
		return fmt.Errorf("delete resource %s: %w", resourceID, err)
	}

	s.log.Info("Resource deleted with booking cascade",
		zap.String("resource_id", resourceID),
		zap.String("name", resource.Name),
	)

	return nil
}

func (s *resourceService) GetResourceStats(ctx context.Context, resourceID, startDate, endDate string) (*response.ResourceStatsResponse, error) {
	id, err := uuid.Parse(resourceID)
	if err != nil {
		return nil, fmt.Errorf("invalid resource ID format %s: %w", resourceID, err)
	}

	resource, err := s.repo.Resource.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get resource stats %s: %w", resourceID, err)
	}
	if resource == nil {
		return nil, fmt.Errorf("resource %s not found", resourceID)
	}

	now := time.Now()
	periodStart := now.AddDate(0, 0, -defaultStatsPeriodDays)
	periodEnd := now
	daysInPeriod := float64(defaultStatsPeriodDays)

	if startDate != "" && endDate != "" {
		start, err := time.Parse(time.RFC3339, startDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %s: %w", startDate, err)
		}
		end, err := time.Parse(time.RFC3339, endDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %s: %w", endDate, err)
		}
		if !start.Before(end) {
			return nil, fmt.Errorf("invalid period: start date %s must be before end date %s", startDate, endDate)
		}

		periodStart = start
		periodEnd = end
		daysInPeriod = math.Ceil(end.Sub(start).Hours() / 24)
	}

	bookings, err := s.repo.Booking.FindAll(ctx, repository.BookingFilter{
		ResourceID: &id,
		StartDate:  &periodStart,
		EndDate:    &periodEnd,
	})
	if err != nil {
		s.log.Error("Failed to load bookings for stats",
			zap.Error(err),
			zap.String("resource_id", resourceID),
		)
		return nil, fmt.Errorf("get resource stats %s: %w", resourceID, err)
	}

	var totalHours float64
	for _, booking := range bookings {
		totalHours += booking.EndTime.Sub(booking.StartTime).Hours()
	}

	// Each day is assumed to offer a fixed 8-hour capacity regardless of the
	// resource's configured schedule.
	utilization := totalHours / (daysInPeriod * statsHoursPerDay) * 100

	stats := &response.ResourceStatsResponse{
		ResourceID:            resourceID,
		TotalBookings:         len(bookings),
		TotalHours:            round2(totalHours),
		UtilizationPercentage: round2(utilization),
		Period: response.StatsPeriod{
			StartDate: periodStart,
			EndDate:   periodEnd,
		},
	}

	s.log.Info("Resource stats computed",
		zap.String("resource_id", resourceID),
		zap.Int("total_bookings", stats.TotalBookings),
		zap.Float64("total_hours", stats.TotalHours),
		zap.Float64("utilization_percentage", stats.UtilizationPercentage),
	)

	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
