package entities

import "time"

// CommentView is a Comment whose author and mentions were resolved against
// the admin directory. Author is nil when the author no longer exists;
// unresolved mentions are left out.
type CommentView struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Author    *AdminRef  `json:"author"`
	Mentions  []AdminRef `json:"mentions"`
	CreatedAt time.Time  `json:"created_at"`
}

// QuoteView is the read model returned to administrators.
type QuoteView struct {
	Quote
	Comments []CommentView `json:"comments"`
}
