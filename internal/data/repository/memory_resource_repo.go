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

// memoryResourceRepository keeps resources in a mutex-guarded map. The map is
// owned exclusively by the repository; entities are copied on the way in and
// out so callers never hold references into the store.
type memoryResourceRepository struct {
	mu        sync.RWMutex
	resources map[uuid.UUID]entity.Resource
	log       *zap.Logger
}

func NewMemoryResourceRepository(log *zap.Logger) ResourceRepository {
	return &memoryResourceRepository{
		resources: make(map[uuid.UUID]entity.Resource),
		log:       log.With(zap.String("repository", "resource_memory")),
	}
}

func (r *memoryResourceRepository) Create(ctx context.Context, resource *entity.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.resources[resource.ID]; exists {
		return fmt.Errorf("resource %s already exists", resource.ID.String())
	}

	r.resources[resource.ID] = *resource
	return nil
}

func (r *memoryResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resource, ok := r.resources[id]
	if !ok {
		return nil, nil
	}

	return &resource, nil
}

func (r *memoryResourceRepository) FindAll(ctx context.Context, limit, offset int, statusFilter *entity.ResourceStatus) ([]*entity.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var resources []*entity.Resource
	for _, resource := range r.resources {
		if statusFilter != nil && resource.Status != *statusFilter {
			continue
		}
		res := resource
		resources = append(resources, &res)
	}

	// Newest first, matching the postgres ORDER BY created_at DESC
	sort.Slice(resources, func(i, j int) bool {
		return resources[i].CreatedAt.After(resources[j].CreatedAt)
	})

	if offset >= len(resources) {
		return nil, nil
	}
	resources = resources[offset:]
	if limit > 0 && limit < len(resources) {
		resources = resources[:limit]
	}

	return resources, nil
}

func (r *memoryResourceRepository) CountAll(ctx context.Context, statusFilter *entity.ResourceStatus) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if statusFilter == nil {
		return int64(len(r.resources)), nil
	}

	var count int64
	for _, resource := range r.resources {
		if resource.Status == *statusFilter {
			count++
		}
	}

	return count, nil
}

func (r *memoryResourceRepository) Update(ctx context.Context, resource *entity.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.resources[resource.ID]; !ok {
		return fmt.Errorf("resource %s not found", resource.ID.String())
	}

	r.resources[resource.ID] = *resource
	return nil
}

func (r *memoryResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.resources[id]; !ok {
		return fmt.Errorf("resource %s not found", id.String())
	}

	delete(r.resources, id)
	r.log.Info("Resource deleted", zap.String("resource_id", id.String()))
	return nil
}
