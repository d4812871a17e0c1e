package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"
)

// QuoteRepository keeps quotes in process memory. It backs STORE_DRIVER=memory
// and the use case tests. Every stored or returned quote is a deep copy, so
// callers never share comment slices with the store.
type QuoteRepository struct {
	mu     sync.RWMutex
	quotes map[string]entities.Quote
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{quotes: make(map[string]entities.Quote)}
}

func (r *QuoteRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.quotes[q.ID]; ok {
		return entities.Quote{}, interfaces.ErrQuoteConflict
	}
	q.Version = 1
	r.quotes[q.ID] = cloneQuote(q)
	return cloneQuote(q), nil
}

func (r *QuoteRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.quotes[id]
	if !ok {
		return entities.Quote{}, nil
	}
	return cloneQuote(q), nil
}

// ListAll returns every quote, newest first.
func (r *QuoteRepository) ListAll(_ context.Context) ([]entities.Quote, error) {
	r.mu.RLock()
	out := make([]entities.Quote, 0, len(r.quotes))
	for _, q := range r.quotes {
		out = append(out, cloneQuote(q))
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b entities.Quote) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.ID > b.ID {
			return -1
		}
		if a.ID < b.ID {
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *QuoteRepository) Replace(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.quotes[q.ID]
	if !ok || current.Version != q.Version {
		return entities.Quote{}, interfaces.ErrQuoteConflict
	}
	q.Version++
	r.quotes[q.ID] = cloneQuote(q)
	return cloneQuote(q), nil
}

func (r *QuoteRepository) UpdateStatus(_ context.Context, id string, status entities.QuoteStatus) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.quotes[id]
	if !ok {
		return entities.Quote{}, nil
	}
	q.Status = status
	q.Version++
	r.quotes[id] = q
	return cloneQuote(q), nil
}

func (r *QuoteRepository) AppendComment(_ context.Context, id string, c entities.Comment) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.quotes[id]
	if !ok {
		return entities.Quote{}, nil
	}
	c.Mentions = slices.Clone(c.Mentions)
	q.Comments = append(slices.Clone(q.Comments), c)
	q.Version++
	r.quotes[id] = q
	return cloneQuote(q), nil
}

func (r *QuoteRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.quotes[id]; !ok {
		return false, nil
	}
	delete(r.quotes, id)
	return true, nil
}

func cloneQuote(q entities.Quote) entities.Quote {
	if q.Comments == nil {
		return q
	}
	comments := make([]entities.Comment, len(q.Comments))
	for i, c := range q.Comments {
		c.Mentions = slices.Clone(c.Mentions)
		comments[i] = c
	}
	q.Comments = comments
	return q
}
