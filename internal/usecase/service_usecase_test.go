package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Diilaye/batimo/internal/adapter/persistence/memory"
	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/logger"
	mock_interfaces "github.com/Diilaye/batimo/internal/usecase/interfaces/mocks"
	"go.uber.org/mock/gomock"
)

func TestServiceUseCase_Lifecycle(t *testing.T) {
	ctx := context.Background()
	uc := NewServiceUseCase(memory.NewServiceRepository(), logger.NewNop())

	if _, err := uc.Create(ctx, ServiceInput{Title: " "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	created, err := uc.Create(ctx, ServiceInput{
		Title:       "Gros oeuvre",
		Description: "Fondations et maçonnerie",
		Features:    []string{"béton armé"},
		Gallery:     []entities.GalleryItem{{Title: "Villa", Image: "villa.jpg"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Benefits == nil || len(created.Gallery) != 1 {
		t.Fatalf("unexpected service: %+v", created)
	}

	updated, err := uc.Update(ctx, created.ID, ServiceInput{Title: "Second oeuvre", Description: "Finitions"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Second oeuvre" || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if _, err := uc.Update(ctx, "missing", ServiceInput{Title: "t", Description: "d"}); !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}

	if err := uc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ := uc.List(ctx)
	if len(list) != 0 {
		t.Fatalf("expected empty catalog, got %d", len(list))
	}
}

func TestServiceUseCase_RepositoryFailures(t *testing.T) {
	ctx := context.Background()
	in := ServiceInput{Title: "Plomberie", Description: "Installation et dépannage"}
	dbErr := errors.New("dynamodb unavailable")

	t.Run("update propagates repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRepository(ctrl)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(entities.Service{}, dbErr)

		_, err := NewServiceUseCase(repo, logger.NewNop()).Update(ctx, "svc-1", in)
		if !errors.Is(err, dbErr) {
			t.Fatalf("expected repository error, got %v", err)
		}
	})

	t.Run("update of unknown id is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRepository(ctrl)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s entities.Service) (entities.Service, error) {
				if s.ID != "svc-404" || s.Title != "Plomberie" {
					t.Fatalf("unexpected service passed to repository: %+v", s)
				}
				return entities.Service{}, nil
			})

		_, err := NewServiceUseCase(repo, logger.NewNop()).Update(ctx, " svc-404 ", in)
		if !errors.Is(err, ErrServiceNotFound) {
			t.Fatalf("expected ErrServiceNotFound, got %v", err)
		}
	})

	t.Run("delete propagates repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRepository(ctrl)
		repo.EXPECT().Delete(gomock.Any(), "svc-1").Return(false, dbErr)

		if err := NewServiceUseCase(repo, logger.NewNop()).Delete(ctx, "svc-1"); !errors.Is(err, dbErr) {
			t.Fatalf("expected repository error, got %v", err)
		}
	})

	t.Run("invalid input never reaches the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIServiceRepository(ctrl)

		uc := NewServiceUseCase(repo, logger.NewNop())
		if _, err := uc.Update(ctx, " ", in); !errors.Is(err, ErrInvalidServiceID) {
			t.Fatalf("expected ErrInvalidServiceID, got %v", err)
		}
		if _, err := uc.Update(ctx, "svc-1", ServiceInput{}); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}
