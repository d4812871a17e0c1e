package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"
)

type ServiceRepository struct {
	mu       sync.RWMutex
	services map[string]entities.Service
}

var _ interfaces.IServiceRepository = (*ServiceRepository)(nil)

func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{services: make(map[string]entities.Service)}
}

func (r *ServiceRepository) Create(_ context.Context, s entities.Service) (entities.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[s.ID] = cloneService(s)
	return s, nil
}

func (r *ServiceRepository) GetByID(_ context.Context, id string) (entities.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[id]
	if !ok {
		return entities.Service{}, nil
	}
	return cloneService(s), nil
}

// List returns the catalog in creation order.
func (r *ServiceRepository) List(_ context.Context) ([]entities.Service, error) {
	r.mu.RLock()
	out := make([]entities.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, cloneService(s))
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b entities.Service) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (r *ServiceRepository) Update(_ context.Context, s entities.Service) (entities.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.services[s.ID]
	if !ok {
		return entities.Service{}, nil
	}
	s.CreatedAt = current.CreatedAt
	r.services[s.ID] = cloneService(s)
	return s, nil
}

func (r *ServiceRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[id]; !ok {
		return false, nil
	}
	delete(r.services, id)
	return true, nil
}

func cloneService(s entities.Service) entities.Service {
	s.Features = slices.Clone(s.Features)
	s.Benefits = slices.Clone(s.Benefits)
	s.Gallery = slices.Clone(s.Gallery)
	return s
}
