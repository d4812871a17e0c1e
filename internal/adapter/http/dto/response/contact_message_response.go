package response

import (
	"time"

	"github.com/Diilaye/batimo/internal/domain/entities"
)

type ContactMessageResponse struct {
	LegacyID  string    `json:"_id"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromContactMessage(m entities.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		LegacyID:  m.ID,
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

func FromContactMessages(msgs []entities.ContactMessage) []ContactMessageResponse {
	out := make([]ContactMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, FromContactMessage(m))
	}
	return out
}
