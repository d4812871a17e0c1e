package request

import "github.com/Diilaye/batimo/internal/usecase"

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (r ContactRequest) ToSubmission() usecase.MessageSubmission {
	return usecase.MessageSubmission{Name: r.Name, Email: r.Email, Message: r.Message}
}
