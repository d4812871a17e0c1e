package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Diilaye/batimo/internal/adapter/persistence/memory"
	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/logger"

	"github.com/google/uuid"
)

type quoteFixture struct {
	uc     *QuoteUseCase
	quotes *memory.QuoteRepository
	admins *memory.AdminRepository
}

func newQuoteFixture(t *testing.T) quoteFixture {
	t.Helper()
	quotes := memory.NewQuoteRepository()
	admins := memory.NewAdminRepository()
	return quoteFixture{
		uc:     NewQuoteUseCase(quotes, admins, logger.NewNop()),
		quotes: quotes,
		admins: admins,
	}
}

func (f quoteFixture) admin(t *testing.T, email string) entities.Admin {
	t.Helper()
	a, err := f.admins.Create(context.Background(), entities.Admin{ID: uuid.NewString(), Email: email, CreatedAt: time.Now()})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return a
}

func (f quoteFixture) submit(t *testing.T) entities.Quote {
	t.Helper()
	q, err := f.uc.Submit(context.Background(), fakeSubmission())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return q
}

func TestQuoteProperties_SubmitIsPendingWithoutComments(t *testing.T) {
	f := newQuoteFixture(t)
	for i := 0; i < 20; i++ {
		q := f.submit(t)
		if q.Status != entities.QuoteStatusPending || len(q.Comments) != 0 {
			t.Fatalf("unexpected submitted quote: %+v", q)
		}
	}
}

func TestQuoteProperties_StatusRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(t)
	q := f.submit(t)

	for _, s := range entities.QuoteStatuses {
		if _, err := f.uc.ChangeStatus(ctx, q.ID, string(s)); err != nil {
			t.Fatalf("change status %s: %v", s, err)
		}
		got, err := f.uc.GetByID(ctx, q.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status != s {
			t.Fatalf("expected %s, got %s", s, got.Status)
		}
	}

	sequence := []string{"accepted", "pending", "rejected", "reviewed"}
	for _, s := range sequence {
		if _, err := f.uc.ChangeStatus(ctx, q.ID, s); err != nil {
			t.Fatalf("change status %s: %v", s, err)
		}
	}
	got, _ := f.uc.GetByID(ctx, q.ID)
	if got.Status != entities.QuoteStatusReviewed {
		t.Fatalf("expected last status to win, got %s", got.Status)
	}
}

func TestQuoteProperties_DeleteCommentIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(t)
	author := f.admin(t, "author@batimo.sn")
	q := f.submit(t)

	view, err := f.uc.AddComment(ctx, q.ID, author.ID, "to remove", nil)
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	commentID := view.Comments[0].ID

	first := f.uc.DeleteComment(ctx, q.ID, commentID)
	second := f.uc.DeleteComment(ctx, q.ID, commentID)
	never := f.uc.DeleteComment(ctx, q.ID, uuid.NewString())
	if first != nil || second != nil || never != nil {
		t.Fatalf("expected no-op successes, got %v %v %v", first, second, never)
	}
}

func TestQuoteProperties_CommentRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(t)
	admin1 := f.admin(t, "admin1@batimo.sn")
	admin2 := f.admin(t, "admin2@batimo.sn")
	q := f.submit(t)

	if _, err := f.uc.AddComment(ctx, q.ID, admin1.ID, "hello", []string{admin2.ID, admin2.ID}); err != nil {
		t.Fatalf("add comment: %v", err)
	}

	got, err := f.uc.GetByID(ctx, q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(got.Comments))
	}
	c := got.Comments[0]
	if c.Content != "hello" || c.Author == nil || c.Author.Email != admin1.Email {
		t.Fatalf("unexpected comment: %+v", c)
	}
	if len(c.Mentions) != 1 || c.Mentions[0].Email != admin2.Email {
		t.Fatalf("unexpected mentions: %+v", c.Mentions)
	}
}

func TestQuoteProperties_CascadeDelete(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(t)
	author := f.admin(t, "author@batimo.sn")
	q := f.submit(t)

	for _, content := range []string{"one", "two", "three"} {
		if _, err := f.uc.AddComment(ctx, q.ID, author.ID, content, nil); err != nil {
			t.Fatalf("add comment: %v", err)
		}
	}
	if err := f.uc.Delete(ctx, q.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.uc.GetByID(ctx, q.ID); !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound, got %v", err)
	}
	if err := f.uc.DeleteComment(ctx, q.ID, "any"); !errors.Is(err, ErrQuoteNotFound) {
		t.Fatalf("expected ErrQuoteNotFound for comments of deleted quote, got %v", err)
	}
}

func TestQuoteProperties_CommentOrdering(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(t)
	author := f.admin(t, "author@batimo.sn")
	q := f.submit(t)

	var ids []string
	for _, content := range []string{"C1", "C2", "C3"} {
		view, err := f.uc.AddComment(ctx, q.ID, author.ID, content, nil)
		if err != nil {
			t.Fatalf("add comment: %v", err)
		}
		ids = append(ids, view.Comments[len(view.Comments)-1].ID)
	}

	got, _ := f.uc.GetByID(ctx, q.ID)
	assertContents(t, got, "C1", "C2", "C3")

	if err := f.uc.DeleteComment(ctx, q.ID, ids[1]); err != nil {
		t.Fatalf("delete comment: %v", err)
	}
	got, _ = f.uc.GetByID(ctx, q.ID)
	assertContents(t, got, "C1", "C3")
}

func TestQuoteProperties_ConcurrentAddComment(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(t)
	a := f.admin(t, "a@batimo.sn")
	b := f.admin(t, "b@batimo.sn")

	for round := 0; round < 50; round++ {
		q := f.submit(t)

		var wg sync.WaitGroup
		start := make(chan struct{})
		errs := make(chan error, 2)
		for _, author := range []entities.Admin{a, b} {
			wg.Add(1)
			go func(authorID string) {
				defer wg.Done()
				<-start
				_, err := f.uc.AddComment(ctx, q.ID, authorID, "concurrent", nil)
				errs <- err
			}(author.ID)
		}
		close(start)
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("add comment: %v", err)
			}
		}

		got, _ := f.uc.GetByID(ctx, q.ID)
		if len(got.Comments) != 2 {
			t.Fatalf("round %d: expected 2 comments, got %d", round, len(got.Comments))
		}
	}
}

func TestQuoteProperties_ConcurrentAddAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(t)
	a := f.admin(t, "a@batimo.sn")
	q := f.submit(t)

	view, err := f.uc.AddComment(ctx, q.ID, a.ID, "to remove", nil)
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	target := view.Comments[0].ID

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := f.uc.AddComment(ctx, q.ID, a.ID, "kept", nil); err != nil {
			t.Errorf("add comment: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := f.uc.DeleteComment(ctx, q.ID, target); err != nil {
			t.Errorf("delete comment: %v", err)
		}
	}()
	wg.Wait()

	got, _ := f.uc.GetByID(ctx, q.ID)
	assertContents(t, got, "kept")
}

func TestQuoteProperties_DanglingReferencesDegrade(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(t)
	author := f.admin(t, "gone@batimo.sn")
	kept := f.admin(t, "kept@batimo.sn")
	removed := f.admin(t, "removed@batimo.sn")
	q := f.submit(t)

	if _, err := f.uc.AddComment(ctx, q.ID, author.ID, "stale", []string{removed.ID, kept.ID}); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	f.admins.Remove(author.ID)
	f.admins.Remove(removed.ID)

	got, err := f.uc.GetByID(ctx, q.ID)
	if err != nil {
		t.Fatalf("expected degraded read, got %v", err)
	}
	c := got.Comments[0]
	if c.Author != nil {
		t.Fatalf("expected nil author, got %+v", c.Author)
	}
	if len(c.Mentions) != 1 || c.Mentions[0].ID != kept.ID {
		t.Fatalf("expected only the surviving mention, got %+v", c.Mentions)
	}
}

func TestQuoteProperties_EndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(t)
	adminA := f.admin(t, "a@batimo.sn")
	adminB := f.admin(t, "b@batimo.sn")

	in := fakeSubmission()
	in.Name = "Fatou Diop"
	in.Email = "f@x.com"
	q, err := f.uc.Submit(ctx, in)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if q.Status != entities.QuoteStatusPending {
		t.Fatalf("expected pending, got %s", q.Status)
	}

	view, err := f.uc.AddComment(ctx, q.ID, adminA.ID, "looks good", []string{adminB.ID})
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if len(view.Comments) != 1 || view.Comments[0].Author.Email != adminA.Email {
		t.Fatalf("unexpected comments: %+v", view.Comments)
	}
	if len(view.Comments[0].Mentions) != 1 || view.Comments[0].Mentions[0].Email != adminB.Email {
		t.Fatalf("unexpected mentions: %+v", view.Comments[0].Mentions)
	}

	if _, err := f.uc.ChangeStatus(ctx, q.ID, "accepted"); err != nil {
		t.Fatalf("change status: %v", err)
	}
	got, err := f.uc.GetByID(ctx, q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != entities.QuoteStatusAccepted || got.Name != "Fatou Diop" {
		t.Fatalf("unexpected quote: %+v", got.Quote)
	}
	assertContents(t, got, "looks good")
}

func assertContents(t *testing.T, v entities.QuoteView, want ...string) {
	t.Helper()
	if len(v.Comments) != len(want) {
		t.Fatalf("expected %d comments, got %d", len(want), len(v.Comments))
	}
	for i, c := range v.Comments {
		if c.Content != want[i] {
			t.Fatalf("comment %d: expected %q, got %q", i, want[i], c.Content)
		}
	}
}
