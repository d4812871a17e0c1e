package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/logger"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// QuoteSubmission holds the six requester fields of the public quote form.
type QuoteSubmission struct {
	Name        string
	Email       string
	Phone       string
	ProjectType string
	Budget      string
	Message     string
}

// IQuoteUseCase is the surface consumed by the HTTP boundary.
//
// Authentication happens before any of these run; the acting administrator
// id is passed explicitly where it matters (comment authorship).
//   - POST   /api/quote                               => Submit()
//   - GET    /api/quotes                              => List()
//   - GET    /api/quotes/:id                          => GetByID()
//   - PATCH  /api/quotes/:id/status                   => ChangeStatus()
//   - POST   /api/quotes/:id/comments                 => AddComment()
//   - DELETE /api/quotes/:id/comments/:comment_id     => DeleteComment()
//   - DELETE /api/quotes/:id                          => Delete()
type IQuoteUseCase interface {
	Submit(ctx context.Context, in QuoteSubmission) (entities.Quote, error)
	List(ctx context.Context) ([]entities.QuoteView, error)
	GetByID(ctx context.Context, id string) (entities.QuoteView, error)
	ChangeStatus(ctx context.Context, id, status string) (entities.QuoteView, error)
	AddComment(ctx context.Context, id, authorID, content string, mentions []string) (entities.QuoteView, error)
	DeleteComment(ctx context.Context, quoteID, commentID string) error
	Delete(ctx context.Context, id string) error
}

type QuoteUseCase struct {
	repo     interfaces.IQuoteRepository
	comments *CommentUseCase
	status   *StatusPolicy
	resolver *ReferenceResolver
	log      logger.Logger
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, admins interfaces.IAdminRepository, log logger.Logger) *QuoteUseCase {
	return &QuoteUseCase{
		repo:     repo,
		comments: NewCommentUseCase(repo, log),
		status:   NewStatusPolicy(repo, log),
		resolver: NewReferenceResolver(admins, log),
		log:      log,
	}
}

func (u *QuoteUseCase) Submit(ctx context.Context, in QuoteSubmission) (entities.Quote, error) {
	in = in.trimmed()
	if missing := in.missingFields(); len(missing) > 0 {
		return entities.Quote{}, newValidationError("missing required fields: %s", strings.Join(missing, ", "))
	}

	q := entities.Quote{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		ProjectType: in.ProjectType,
		Budget:      in.Budget,
		Message:     in.Message,
		Status:      entities.QuoteStatusPending,
		Comments:    []entities.Comment{},
		CreatedAt:   time.Now().UTC(),
	}
	created, err := u.repo.Create(ctx, q)
	if err != nil {
		u.log.Error("create quote failed", logger.Error(err))
		return entities.Quote{}, err
	}
	u.log.Info("quote submitted", logger.String("quote_id", created.ID), logger.String("project_type", created.ProjectType))
	return created, nil
}

func (u *QuoteUseCase) List(ctx context.Context) ([]entities.QuoteView, error) {
	quotes, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return u.resolver.Resolve(ctx, quotes...)
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.QuoteView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.QuoteView{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.QuoteView{}, err
	}
	if q.ID == "" {
		return entities.QuoteView{}, ErrQuoteNotFound
	}
	return u.resolveOne(ctx, q)
}

func (u *QuoteUseCase) ChangeStatus(ctx context.Context, id, status string) (entities.QuoteView, error) {
	q, err := u.status.SetStatus(ctx, id, status)
	if err != nil {
		return entities.QuoteView{}, err
	}
	return u.resolveOne(ctx, q)
}

func (u *QuoteUseCase) AddComment(ctx context.Context, id, authorID, content string, mentions []string) (entities.QuoteView, error) {
	q, err := u.comments.AddComment(ctx, id, content, authorID, mentions)
	if err != nil {
		return entities.QuoteView{}, err
	}
	return u.resolveOne(ctx, q)
}

func (u *QuoteUseCase) DeleteComment(ctx context.Context, quoteID, commentID string) error {
	_, err := u.comments.DeleteComment(ctx, quoteID, commentID)
	return err
}

// Delete removes the quote together with its comments. Deleting an unknown
// id is not reported as an error.
func (u *QuoteUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidQuoteID
	}

	existed, err := u.repo.Delete(ctx, id)
	if err != nil {
		u.log.Error("delete quote failed", logger.String("quote_id", id), logger.Error(err))
		return err
	}
	if !existed {
		u.log.Info("delete of unknown quote ignored", logger.String("quote_id", id))
		return nil
	}
	u.log.Info("quote deleted", logger.String("quote_id", id))
	return nil
}

func (u *QuoteUseCase) resolveOne(ctx context.Context, q entities.Quote) (entities.QuoteView, error) {
	views, err := u.resolver.Resolve(ctx, q)
	if err != nil {
		return entities.QuoteView{}, err
	}
	return views[0], nil
}

func (in QuoteSubmission) trimmed() QuoteSubmission {
	return QuoteSubmission{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		ProjectType: strings.TrimSpace(in.ProjectType),
		Budget:      strings.TrimSpace(in.Budget),
		Message:     strings.TrimSpace(in.Message),
	}
}

func (in QuoteSubmission) missingFields() []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", in.Name},
		{"email", in.Email},
		{"phone", in.Phone},
		{"projectType", in.ProjectType},
		{"budget", in.Budget},
		{"message", in.Message},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
