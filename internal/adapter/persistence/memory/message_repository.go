package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"
)

type MessageRepository struct {
	mu       sync.RWMutex
	messages map[string]entities.ContactMessage
}

var _ interfaces.IMessageRepository = (*MessageRepository)(nil)

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{messages: make(map[string]entities.ContactMessage)}
}

func (r *MessageRepository) Create(_ context.Context, m entities.ContactMessage) (entities.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[m.ID] = m
	return m, nil
}

func (r *MessageRepository) GetByID(_ context.Context, id string) (entities.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.messages[id], nil
}

// List returns the inbox newest first.
func (r *MessageRepository) List(_ context.Context) ([]entities.ContactMessage, error) {
	r.mu.RLock()
	out := make([]entities.ContactMessage, 0, len(r.messages))
	for _, m := range r.messages {
		out = append(out, m)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b entities.ContactMessage) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (r *MessageRepository) MarkRead(_ context.Context, id string) (entities.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.messages[id]
	if !ok {
		return entities.ContactMessage{}, nil
	}
	m.IsRead = true
	r.messages[id] = m
	return m, nil
}

func (r *MessageRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.messages[id]; !ok {
		return false, nil
	}
	delete(r.messages, id)
	return true, nil
}
