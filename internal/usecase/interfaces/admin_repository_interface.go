package interfaces

import (
	"context"
	"errors"

	"github.com/Diilaye/batimo/internal/domain/entities"
)

var ErrAdminEmailTaken = errors.New("admin email already registered")

// IAdminRepository is the admin directory store.
//
// BatchGetByIDs resolves many ids in one round trip; ids that do not exist
// are simply absent from the returned map.
type IAdminRepository interface {
	Create(ctx context.Context, a entities.Admin) (entities.Admin, error)
	GetByID(ctx context.Context, id string) (entities.Admin, error)
	GetByEmail(ctx context.Context, email string) (entities.Admin, error)
	List(ctx context.Context) ([]entities.Admin, error)
	BatchGetByIDs(ctx context.Context, ids []string) (map[string]entities.Admin, error)
}
