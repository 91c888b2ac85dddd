package repository

import (
	"context"
	"fmt"

	"resource-booking/internal/data/entity"
	"resource-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *entity.Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error)
	FindAll(ctx context.Context, limit, offset int, statusFilter *entity.ResourceStatus) ([]*entity.Resource, error)
	CountAll(ctx context.Context, statusFilter *entity.ResourceStatus) (int64, error)
	Update(ctx context.Context, resource *entity.Resource) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type resourceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewResourceRepository(db database.PgxIface, log *zap.Logger) ResourceRepository {
	return &resourceRepository{
		db:  db,
		log: log.With(zap.String("repository", "resource")),
	}
}

func (r *resourceRepository) Create(ctx context.Context, resource *entity.Resource) error {
	query := `
		INSERT INTO resources (id, name, type, description, status, capacity, assigned_users, availability_schedule, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		resource.ID,
		resource.Name,
		resource.Type,
		resource.Description,
		resource.Status,
		resource.Capacity,
		resource.AssignedUsers,
		resource.AvailabilitySchedule,
		resource.CreatedAt,
		resource.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create resource",
			zap.Error(err),
			zap.String("resource_id", resource.ID.String()),
			zap.String("name", resource.Name),
		)
		return fmt.Errorf("create resource %s: %w", resource.ID.String(), err)
	}

	return nil
}

func (r *resourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	query := `
		SELECT id, name, type, description, status, capacity, assigned_users, availability_schedule, created_at, updated_at
		FROM resources
		WHERE id = $1
	`

	var resource entity.Resource
	err := r.db.QueryRow(ctx, query, id).Scan(
		&resource.ID,
		&resource.Name,
		&resource.Type,
		&resource.Description,
		&resource.Status,
		&resource.Capacity,
		&resource.AssignedUsers,
		&resource.AvailabilitySchedule,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find resource by ID",
			zap.Error(err),
			zap.String("resource_id", id.String()),
		)
		return nil, fmt.Errorf("find resource by ID %s: %w", id.String(), err)
	}

	return &resource, nil
}

func (r *resourceRepository) FindAll(ctx context.Context, limit, offset int, statusFilter *entity.ResourceStatus) ([]*entity.Resource, error) {
	query := `
		SELECT id, name, type, description, status, capacity, assigned_users, availability_schedule, created_at, updated_at
		FROM resources
		WHERE ($3::text IS NULL OR status = $3)
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset, statusFilter)
	if err != nil {
		r.log.Error("Failed to find resources",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find resources: %w", err)
	}
	defer rows.Close()

	var resources []*entity.Resource
	for rows.Next() {
		var resource entity.Resource
		err := rows.Scan(
			&resource.ID,
			&resource.Name,
			&resource.Type,
			&resource.Description,
			&resource.Status,
			&resource.Capacity,
			&resource.AssignedUsers,
			&resource.AvailabilitySchedule,
			&resource.CreatedAt,
			&resource.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan resource row", zap.Error(err))
			return nil, fmt.Errorf("scan resource row: %w", err)
		}
		resources = append(resources, &resource)
	}

	return resources, nil
}

func (r *resourceRepository) CountAll(ctx context.Context, statusFilter *entity.ResourceStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM resources WHERE ($1::text IS NULL OR status = $1)`

	var count int64
	err := r.db.QueryRow(ctx, query, statusFilter).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count resources", zap.Error(err))
		return 0, fmt.Errorf("count resources: %w", err)
	}

	return count, nil
}

func (r *resourceRepository) Update(ctx context.Context, resource *entity.Resource) error {
	query := `
		UPDATE resources
		SET name = $2, type = $3, description = $4, status = $5, capacity = $6,
		    assigned_users = $7, availability_schedule = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		resource.ID,
		resource.Name,
		resource.Type,
		resource.Description,
		resource.Status,
		resource.Capacity,
		resource.AssignedUsers,
		resource.AvailabilitySchedule,
		resource.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update resource",
			zap.Error(err),
			zap.String("resource_id", resource.ID.String()),
		)
		return fmt.Errorf("update resource %s: %w", resource.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("resource %s not found", resource.ID.String())
	}

	return nil
}

func (r *resourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM resources WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete resource",
			zap.Error(err),
			zap.String("resource_id", id.String()),
		)
		return fmt.Errorf("delete resource %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("resource %s not found", id.String())
	}

	r.log.Info("Resource deleted", zap.String("resource_id", id.String()))
	return nil
}
