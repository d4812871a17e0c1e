package interfaces

import (
	"context"

	"github.com/Diilaye/batimo/internal/domain/entities"
)

// IMessageRepository abstracts persistence of the contact inbox.
type IMessageRepository interface {
	Create(ctx context.Context, m entities.ContactMessage) (entities.ContactMessage, error)
	GetByID(ctx context.Context, id string) (entities.ContactMessage, error)
	List(ctx context.Context) ([]entities.ContactMessage, error)
	MarkRead(ctx context.Context, id string) (entities.ContactMessage, error)
	Delete(ctx context.Context, id string) (bool, error)
}
