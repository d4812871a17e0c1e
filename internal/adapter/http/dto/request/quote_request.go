package request

import (
	"fmt"
	"sync"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/usecase"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// QuoteRequest is the public quote form payload. Required fields are checked
// by the use case so the response can name every missing one.
type QuoteRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ProjectType string `json:"projectType"`
	Budget      string `json:"budget"`
	Message     string `json:"message"`
}

func (r QuoteRequest) ToSubmission() usecase.QuoteSubmission {
	return usecase.QuoteSubmission{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		ProjectType: r.ProjectType,
		Budget:      r.Budget,
		Message:     r.Message,
	}
}

type StatusRequest struct {
	Status string `json:"status" binding:"required,quote_status"`
}

type CommentRequest struct {
	Content  string   `json:"content"`
	Mentions []string `json:"mentions"`
}

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the custom binding rules to gin's validator engine.
// StatusRequest cannot be bound until this has succeeded.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("quote_status", validQuoteStatus); err != nil {
			registerErr = fmt.Errorf("register quote_status rule: %w", err)
		}
	})
	return registerErr
}

func validQuoteStatus(fl validator.FieldLevel) bool {
	return entities.NormalizeQuoteStatus(fl.Field().String()).IsValid()
}
