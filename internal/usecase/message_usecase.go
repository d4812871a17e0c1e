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
	ErrMessageNotFound  = errors.New("message not found")
	ErrInvalidMessageID = errors.New("invalid message id")
)

type MessageSubmission struct {
	Name    string
	Email   string
	Message string
}

// IMessageUseCase manages the contact inbox.
type IMessageUseCase interface {
	Submit(ctx context.Context, in MessageSubmission) (entities.ContactMessage, error)
	List(ctx context.Context) ([]entities.ContactMessage, error)
	GetByID(ctx context.Context, id string) (entities.ContactMessage, error)
	MarkRead(ctx context.Context, id string) (entities.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

type MessageUseCase struct {
	repo interfaces.IMessageRepository
	log  logger.Logger
}

var _ IMessageUseCase = (*MessageUseCase)(nil)

func NewMessageUseCase(repo interfaces.IMessageRepository, log logger.Logger) *MessageUseCase {
	return &MessageUseCase{repo: repo, log: log}
}

func (u *MessageUseCase) Submit(ctx context.Context, in MessageSubmission) (entities.ContactMessage, error) {
	m := entities.ContactMessage{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: time.Now().UTC(),
	}
	if m.Name == "" || m.Email == "" || m.Message == "" {
		return entities.ContactMessage{}, newValidationError("name, email and message are required")
	}

	created, err := u.repo.Create(ctx, m)
	if err != nil {
		u.log.Error("create message failed", logger.Error(err))
		return entities.ContactMessage{}, err
	}
	u.log.Info("contact message received", logger.String("message_id", created.ID))
	return created, nil
}

func (u *MessageUseCase) List(ctx context.Context) ([]entities.ContactMessage, error) {
	return u.repo.List(ctx)
}

func (u *MessageUseCase) GetByID(ctx context.Context, id string) (entities.ContactMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ContactMessage{}, ErrInvalidMessageID
	}
	m, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ContactMessage{}, err
	}
	if m.ID == "" {
		return entities.ContactMessage{}, ErrMessageNotFound
	}
	return m, nil
}

func (u *MessageUseCase) MarkRead(ctx context.Context, id string) (entities.ContactMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ContactMessage{}, ErrInvalidMessageID
	}
	m, err := u.repo.MarkRead(ctx, id)
	if err != nil {
		return entities.ContactMessage{}, err
	}
	if m.ID == "" {
		return entities.ContactMessage{}, ErrMessageNotFound
	}
	return m, nil
}

func (u *MessageUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidMessageID
	}
	existed, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if existed {
		u.log.Info("contact message deleted", logger.String("message_id", id))
	}
	return nil
}
