package usecase

import (
	"context"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/logger"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"
)

// ReferenceResolver turns the admin ids stored on comments into display
// references. All ids of a response are fetched with a single batch lookup.
type ReferenceResolver struct {
	admins interfaces.IAdminRepository
	log    logger.Logger
}

func NewReferenceResolver(admins interfaces.IAdminRepository, log logger.Logger) *ReferenceResolver {
	return &ReferenceResolver{admins: admins, log: log}
}

// Resolve builds the read model of every quote. Unknown authors become a nil
// Author and unknown mentions are dropped; each is logged as a
// DanglingReferenceError.
func (r *ReferenceResolver) Resolve(ctx context.Context, quotes ...entities.Quote) ([]entities.QuoteView, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, q := range quotes {
		for _, id := range q.AdminIDs() {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	directory := map[string]entities.Admin{}
	if len(ids) > 0 {
		found, err := r.admins.BatchGetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		directory = found
	}

	views := make([]entities.QuoteView, 0, len(quotes))
	for _, q := range quotes {
		views = append(views, r.view(q, directory))
	}
	return views, nil
}

func (r *ReferenceResolver) view(q entities.Quote, directory map[string]entities.Admin) entities.QuoteView {
	comments := make([]entities.CommentView, 0, len(q.Comments))
	for _, c := range q.Comments {
		cv := entities.CommentView{
			ID:        c.ID,
			Content:   c.Content,
			Mentions:  make([]entities.AdminRef, 0, len(c.Mentions)),
			CreatedAt: c.CreatedAt,
		}
		if a, ok := directory[c.AuthorID]; ok {
			cv.Author = &entities.AdminRef{ID: a.ID, Email: a.Email}
		} else {
			r.dangling(q.ID, c.ID, c.AuthorID, RoleAuthor)
		}
		for _, m := range c.Mentions {
			a, ok := directory[m]
			if !ok {
				r.dangling(q.ID, c.ID, m, RoleMention)
				continue
			}
			cv.Mentions = append(cv.Mentions, entities.AdminRef{ID: a.ID, Email: a.Email})
		}
		comments = append(comments, cv)
	}
	return entities.QuoteView{Quote: q, Comments: comments}
}

func (r *ReferenceResolver) dangling(quoteID, commentID, adminID, role string) {
	err := &DanglingReferenceError{QuoteID: quoteID, CommentID: commentID, AdminID: adminID, Role: role}
	r.log.Warn("dangling admin reference", logger.Error(err))
}
