package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/logger"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrInvalidServiceID = errors.New("invalid service id")
)

// ServiceInput carries the editable fields of a catalog entry.
type ServiceInput struct {
	Title       string
	Description string
	Image       string
	Features    []string
	Benefits    []string
	Gallery     []entities.GalleryItem
}

type IServiceUseCase interface {
	List(ctx context.Context) ([]entities.Service, error)
	Create(ctx context.Context, in ServiceInput) (entities.Service, error)
	Update(ctx context.Context, id string, in ServiceInput) (entities.Service, error)
	Delete(ctx context.Context, id string) error
}

type ServiceUseCase struct {
	repo interfaces.IServiceRepository
	log  logger.Logger
}

var _ IServiceUseCase = (*ServiceUseCase)(nil)

func NewServiceUseCase(repo interfaces.IServiceRepository, log logger.Logger) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, log: log}
}

func (u *ServiceUseCase) List(ctx context.Context) ([]entities.Service, error) {
	return u.repo.List(ctx)
}

func (u *ServiceUseCase) Create(ctx context.Context, in ServiceInput) (entities.Service, error) {
	if err := in.validate(); err != nil {
		return entities.Service{}, err
	}
	now := time.Now().UTC()
	s := in.apply(entities.Service{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now})

	created, err := u.repo.Create(ctx, s)
	if err != nil {
		return entities.Service{}, err
	}
	u.log.Info("service created", logger.String("service_id", created.ID))
	return created, nil
}

func (u *ServiceUseCase) Update(ctx context.Context, id string, in ServiceInput) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrInvalidServiceID
	}
	if err := in.validate(); err != nil {
		return entities.Service{}, err
	}

	updated, err := u.repo.Update(ctx, in.apply(entities.Service{ID: id, UpdatedAt: time.Now().UTC()}))
	if err != nil {
		return entities.Service{}, err
	}
	if updated.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	u.log.Info("service updated", logger.String("service_id", id))
	return updated, nil
}

func (u *ServiceUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidServiceID
	}
	existed, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if existed {
		u.log.Info("service deleted", logger.String("service_id", id))
	}
	return nil
}

func (in ServiceInput) validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return newValidationError("title and description are required")
	}
	return nil
}

func (in ServiceInput) apply(s entities.Service) entities.Service {
	s.Title = strings.TrimSpace(in.Title)
	s.Description = strings.TrimSpace(in.Description)
	s.Image = strings.TrimSpace(in.Image)
	s.Features = nonNil(in.Features)
	s.Benefits = nonNil(in.Benefits)
	s.Gallery = in.Gallery
	if s.Gallery == nil {
		s.Gallery = []entities.GalleryItem{}
	}
	return s
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
