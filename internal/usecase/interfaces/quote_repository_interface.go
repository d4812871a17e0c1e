package interfaces

import (
	"context"
	"errors"

	"github.com/Diilaye/batimo/internal/domain/entities"
)

// ErrQuoteConflict is returned by Replace when the stored quote no longer
// carries the version the caller read (or no longer exists).
var ErrQuoteConflict = errors.New("quote modified concurrently")

// IQuoteRepository abstracts persistence of the Quote aggregate.
//
// A quote and its comments are always read and written together. Lookups that
// miss return a zero-value Quote and a nil error.
//
// Write semantics:
//   - UpdateStatus overwrites the status in place (last write wins)
//   - AppendComment appends atomically on the store side, so concurrent appends are all kept
//   - Replace writes the whole aggregate only if q.Version still matches the stored version
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListAll(ctx context.Context) ([]entities.Quote, error)
	Replace(ctx context.Context, q entities.Quote) (entities.Quote, error)
	UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error)
	AppendComment(ctx context.Context, id string, c entities.Comment) (entities.Quote, error)
	Delete(ctx context.Context, id string) (bool, error)
}
