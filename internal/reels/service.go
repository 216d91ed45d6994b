package reels

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aniaesther/reddit2reels-backend/internal/pipeline"
)

// CreateParams are the request fields accepted from the API layer.
type CreateParams struct {
	Title              string
	Locator            string
	Body               string
	VoiceSelector      string
	BackgroundSelector string
	MaxDurationSeconds float64
}

type ReelService interface {
	CreateReel(ctx context.Context, params CreateParams) (*Reel, error)
	GetReel(ctx context.Context, id string) (*Reel, error)
	ListReels(ctx context.Context, limit int) ([]*Reel, error)
	CountReels(ctx context.Context) (int, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateReel validates the request and enqueues it as pending. The actual
// pipeline run is picked up by the Runner.
func (s *Service) CreateReel(ctx context.Context, params CreateParams) (*Reel, error) {
	params.Locator = strings.TrimSpace(params.Locator)
	params.Body = strings.TrimSpace(params.Body)

	if params.Locator == "" && params.Body == "" {
		return nil, fmt.Errorf("either a locator or body text is required")
	}
	if params.MaxDurationSeconds < 0 {
		return nil, fmt.Errorf("max_duration_s cannot be negative")
	}

	now := time.Now()
	reel := &Reel{
		ID:                 NewID(),
		Title:              strings.TrimSpace(params.Title),
		Locator:            params.Locator,
		Body:               params.Body,
		VoiceSelector:      params.VoiceSelector,
		BackgroundSelector: params.BackgroundSelector,
		MaxDurationSeconds: params.MaxDurationSeconds,
		Status:             string(pipeline.StatusPending),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.CreateReel(ctx, reel); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("reel request created", "reel_id", reel.ID, "background", reel.BackgroundSelector)
	}
	return reel, nil
}

func (s *Service) GetReel(ctx context.Context, id string) (*Reel, error) {
	return s.repo.GetReel(ctx, id)
}

func (s *Service) ListReels(ctx context.Context, limit int) ([]*Reel, error) {
	return s.repo.ListReels(ctx, limit)
}

func (s *Service) CountReels(ctx context.Context) (int, error) {
	return s.repo.CountReels(ctx)
}
