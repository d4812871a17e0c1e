package response

import (
	"time"

	"github.com/Diilaye/batimo/internal/domain/entities"
)

type AdminRefResponse struct {
	LegacyID string `json:"_id"`
	ID       string `json:"id"`
	Email    string `json:"email"`
}

type CommentResponse struct {
	LegacyID  string             `json:"_id"`
	ID        string             `json:"id"`
	Content   string             `json:"content"`
	Author    *AdminRefResponse  `json:"author"`
	Mentions  []AdminRefResponse `json:"mentions"`
	CreatedAt time.Time          `json:"createdAt"`
}

type QuoteResponse struct {
	LegacyID    string            `json:"_id"`
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	ProjectType string            `json:"projectType"`
	Budget      string            `json:"budget"`
	Message     string            `json:"message"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	Comments    []CommentResponse `json:"comments"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewMessage(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

func FromAdminRef(a entities.AdminRef) AdminRefResponse {
	return AdminRefResponse{LegacyID: a.ID, ID: a.ID, Email: a.Email}
}

func FromAdmins(admins []entities.Admin) []AdminRefResponse {
	out := make([]AdminRefResponse, 0, len(admins))
	for _, a := range admins {
		out = append(out, AdminRefResponse{LegacyID: a.ID, ID: a.ID, Email: a.Email})
	}
	return out
}

// FromQuote maps a freshly submitted quote. It has no comments yet, so there
// is nothing to resolve.
func FromQuote(q entities.Quote) QuoteResponse {
	res := quoteFields(q)
	res.Comments = []CommentResponse{}
	return res
}

func FromQuoteView(v entities.QuoteView) QuoteResponse {
	res := quoteFields(v.Quote)
	res.Comments = make([]CommentResponse, 0, len(v.Comments))
	for _, c := range v.Comments {
		res.Comments = append(res.Comments, fromCommentView(c))
	}
	return res
}

func FromQuoteViews(views []entities.QuoteView) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromQuoteView(v))
	}
	return out
}

func quoteFields(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		LegacyID:    q.ID,
		ID:          q.ID,
		Name:        q.Name,
		Email:       q.Email,
		Phone:       q.Phone,
		ProjectType: q.ProjectType,
		Budget:      q.Budget,
		Message:     q.Message,
		Status:      string(q.Status),
		CreatedAt:   q.CreatedAt,
	}
}

func fromCommentView(c entities.CommentView) CommentResponse {
	res := CommentResponse{
		LegacyID:  c.ID,
		ID:        c.ID,
		Content:   c.Content,
		Mentions:  make([]AdminRefResponse, 0, len(c.Mentions)),
		CreatedAt: c.CreatedAt,
	}
	if c.Author != nil {
		author := FromAdminRef(*c.Author)
		res.Author = &author
	}
	for _, m := range c.Mentions {
		res.Mentions = append(res.Mentions, FromAdminRef(m))
	}
	return res
}
