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

// maxReplaceAttempts bounds the read-filter-replace loop of DeleteComment.
const maxReplaceAttempts = 5

// CommentUseCase appends and removes comments inside a quote's own collection.
//
// Appends go through the store's atomic append, so two administrators
// commenting at the same time both keep their comment. Removal rewrites the
// collection and is guarded by the quote version.
type CommentUseCase struct {
	repo interfaces.IQuoteRepository
	log  logger.Logger
}

func NewCommentUseCase(repo interfaces.IQuoteRepository, log logger.Logger) *CommentUseCase {
	return &CommentUseCase{repo: repo, log: log}
}

func (u *CommentUseCase) AddComment(ctx context.Context, quoteID, content, authorID string, mentionIDs []string) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return entities.Quote{}, ErrEmptyCommentContent
	}
	if strings.TrimSpace(authorID) == "" {
		return entities.Quote{}, ErrMissingAuthor
	}
	mentions, err := normalizeMentions(mentionIDs)
	if err != nil {
		return entities.Quote{}, err
	}

	c := entities.Comment{
		ID:        uuid.NewString(),
		Content:   content,
		AuthorID:  authorID,
		Mentions:  mentions,
		CreatedAt: time.Now().UTC(),
	}
	updated, err := u.repo.AppendComment(ctx, quoteID, c)
	if err != nil {
		u.log.Error("append comment failed", logger.String("quote_id", quoteID), logger.Error(err))
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	u.log.Info("comment added",
		logger.String("quote_id", quoteID),
		logger.String("comment_id", c.ID),
		logger.String("author_id", authorID),
		logger.Int("mentions", len(mentions)),
	)
	return updated, nil
}

// DeleteComment removes commentID from the quote. Removing an id that is not
// in the collection succeeds without writing anything.
func (u *CommentUseCase) DeleteComment(ctx context.Context, quoteID, commentID string) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	commentID = strings.TrimSpace(commentID)
	if commentID == "" {
		return entities.Quote{}, ErrInvalidCommentID
	}

	for attempt := 1; attempt <= maxReplaceAttempts; attempt++ {
		current, err := u.repo.GetByID(ctx, quoteID)
		if err != nil {
			return entities.Quote{}, err
		}
		if current.ID == "" {
			return entities.Quote{}, ErrQuoteNotFound
		}
		if current.CommentIndex(commentID) < 0 {
			u.log.Debug("comment already absent", logger.String("quote_id", quoteID), logger.String("comment_id", commentID))
			return current, nil
		}

		updated, err := u.repo.Replace(ctx, current.WithoutComment(commentID))
		if errors.Is(err, interfaces.ErrQuoteConflict) {
			u.log.Debug("quote changed during comment removal, retrying",
				logger.String("quote_id", quoteID), logger.Int("attempt", attempt))
			continue
		}
		if err != nil {
			u.log.Error("replace quote failed", logger.String("quote_id", quoteID), logger.Error(err))
			return entities.Quote{}, err
		}

		u.log.Info("comment deleted", logger.String("quote_id", quoteID), logger.String("comment_id", commentID))
		return updated, nil
	}
	return entities.Quote{}, ErrQuoteBusy
}

// normalizeMentions trims, validates and deduplicates mention ids, keeping
// first-seen order. Existence is checked only when the quote is read.
func normalizeMentions(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		parsed, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, ErrInvalidMentionID
		}
		id := parsed.String()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
