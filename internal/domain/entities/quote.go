package entities

import (
	"strings"
	"time"
)

// QuoteStatus represents the triage state of a quote request (devis).
//
// Domain notes:
//   - Every status is reachable from every other one, including back to pending.
//   - Only the current value is kept; there is no status history.
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusReviewed QuoteStatus = "reviewed"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// QuoteStatuses lists the accepted values in declaration order.
var QuoteStatuses = []QuoteStatus{
	QuoteStatusPending,
	QuoteStatusReviewed,
	QuoteStatusAccepted,
	QuoteStatusRejected,
}

// NormalizeQuoteStatus trims and lower-cases raw. The result still has to
// pass IsValid.
func NormalizeQuoteStatus(raw string) QuoteStatus {
	return QuoteStatus(strings.ToLower(strings.TrimSpace(raw)))
}

func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusReviewed, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

// Comment is an internal note left by an administrator on a quote.
//
// Comments have no lifecycle of their own: they are created, stored and
// removed only through their parent Quote.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	Mentions  []string  `json:"mentions"`
	CreatedAt time.Time `json:"created_at"`
}

// Quote is the quote request aggregate persisted with its comments.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (entity-created_at-index): entity + created_at, for newest-first listing
//   - comments are embedded as a list attribute, in append order
//
// Version is bumped on every write and guards whole-aggregate replaces.
type Quote struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	ProjectType string      `json:"project_type"`
	Budget      string      `json:"budget"`
	Message     string      `json:"message"`
	Status      QuoteStatus `json:"status"`
	Comments    []Comment   `json:"comments"`
	CreatedAt   time.Time   `json:"created_at"`
	Version     int64       `json:"version"`
}

// CommentIndex returns the position of the comment with the given id, or -1.
func (q Quote) CommentIndex(commentID string) int {
	for i, c := range q.Comments {
		if c.ID == commentID {
			return i
		}
	}
	return -1
}

// WithoutComment returns a copy of q whose comment list no longer holds commentID.
// The relative order of the remaining comments is preserved.
func (q Quote) WithoutComment(commentID string) Quote {
	kept := make([]Comment, 0, len(q.Comments))
	for _, c := range q.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	q.Comments = kept
	return q
}

// AdminIDs returns every administrator id referenced by the quote's comments,
// authors first, without duplicates.
func (q Quote) AdminIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, c := range q.Comments {
		add(c.AuthorID)
	}
	for _, c := range q.Comments {
		for _, m := range c.Mentions {
			add(m)
		}
	}
	return ids
}
