package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"
)

// AdminRepository is the in-memory admin directory.
type AdminRepository struct {
	mu      sync.RWMutex
	admins  map[string]entities.Admin // ID -> Admin
	byEmail map[string]string         // lowercased email -> ID
}

var _ interfaces.IAdminRepository = (*AdminRepository)(nil)

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{
		admins:  make(map[string]entities.Admin),
		byEmail: make(map[string]string),
	}
}

func (r *AdminRepository) Create(_ context.Context, a entities.Admin) (entities.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(a.Email)
	if _, ok := r.byEmail[key]; ok {
		return entities.Admin{}, interfaces.ErrAdminEmailTaken
	}
	r.admins[a.ID] = a
	r.byEmail[key] = a.ID
	return a, nil
}

func (r *AdminRepository) GetByID(_ context.Context, id string) (entities.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.admins[id], nil
}

func (r *AdminRepository) GetByEmail(_ context.Context, email string) (entities.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return entities.Admin{}, nil
	}
	return r.admins[id], nil
}

// List returns administrators ordered by email.
func (r *AdminRepository) List(_ context.Context) ([]entities.Admin, error) {
	r.mu.RLock()
	out := make([]entities.Admin, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, a)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b entities.Admin) int { return strings.Compare(a.Email, b.Email) })
	return out, nil
}

func (r *AdminRepository) BatchGetByIDs(_ context.Context, ids []string) (map[string]entities.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]entities.Admin, len(ids))
	for _, id := range ids {
		if a, ok := r.admins[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

// Remove drops an administrator. The admin directory has no delete operation
// exposed over HTTP; this exists so tests can produce dangling references.
func (r *AdminRepository) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.admins[id]; ok {
		delete(r.byEmail, strings.ToLower(a.Email))
		delete(r.admins, id)
	}
}
