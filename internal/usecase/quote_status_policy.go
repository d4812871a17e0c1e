package usecase

import (
	"context"
	"strings"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/logger"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"
)

// StatusPolicy validates and applies quote status changes. Every status may
// follow every other one; concurrent changes resolve as last write wins.
type StatusPolicy struct {
	repo interfaces.IQuoteRepository
	log  logger.Logger
}

func NewStatusPolicy(repo interfaces.IQuoteRepository, log logger.Logger) *StatusPolicy {
	return &StatusPolicy{repo: repo, log: log}
}

// ParseStatus returns the QuoteStatus named by raw, or ErrInvalidQuoteStatus.
func ParseStatus(raw string) (entities.QuoteStatus, error) {
	s := entities.NormalizeQuoteStatus(raw)
	if !s.IsValid() {
		return "", ErrInvalidQuoteStatus
	}
	return s, nil
}

func (p *StatusPolicy) SetStatus(ctx context.Context, quoteID, raw string) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	status, err := ParseStatus(raw)
	if err != nil {
		return entities.Quote{}, err
	}

	updated, err := p.repo.UpdateStatus(ctx, quoteID, status)
	if err != nil {
		p.log.Error("update status failed", logger.String("quote_id", quoteID), logger.Error(err))
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	p.log.Info("quote status changed", logger.String("quote_id", quoteID), logger.String("status", string(status)))
	return updated, nil
}
