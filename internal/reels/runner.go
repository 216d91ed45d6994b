package reels

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aniaesther/reddit2reels-backend/internal/pipeline"
)

// Runner polls for pending reels and drives each through the pipeline in its
// own goroutine. Distinct requests share no mutable state, so runs execute
// fully in parallel; stages within one run stay sequential inside Run.
type Runner struct {
	repo         Repository
	pipe         *pipeline.Pipeline
	logger       *slog.Logger
	pollInterval time.Duration
	maxParallel  int

	running  atomic.Bool
	paused   atomic.Bool
	inFlight sync.Map // reel ID -> struct{}
	slots    chan struct{}
	wg       sync.WaitGroup
}

func NewRunner(repo Repository, pipe *pipeline.Pipeline, logger *slog.Logger) *Runner {
	const maxParallel = 2 // renders are ffmpeg-bound; don't stack too many
	return &Runner{
		repo:         repo,
		pipe:         pipe,
		logger:       logger,
		pollInterval: 2 * time.Second,
		maxParallel:  maxParallel,
		slots:        make(chan struct{}, maxParallel),
	}
}

func (r *Runner) Start(ctx context.Context) {
	if r.running.Swap(true) {
		return
	}

	r.logger.Info("reel runner started", "max_parallel", r.maxParallel)

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reel runner stopping")
			r.wg.Wait()
			r.running.Store(false)
			return
		case <-ticker.C:
			if !r.paused.Load() {
				r.dispatchPending(ctx)
			}
		}
	}
}

func (r *Runner) Pause() {
	r.paused.Store(true)
	r.logger.Info("reel runner paused")
}

func (r *Runner) Resume() {
	r.paused.Store(false)
	r.logger.Info("reel runner resumed")
}

func (r *Runner) IsPaused() bool {
	return r.paused.Load()
}

func (r *Runner) IsRunning() bool {
	return r.running.Load()
}

func (r *Runner) dispatchPending(ctx context.Context) {
	pending, err := r.repo.ListPendingReels(ctx)
	if err != nil {
		r.logger.Error("failed to list pending reels", "error", err)
		return
	}

	for _, reel := range pending {
		if _, busy := r.inFlight.Load(reel.ID); busy {
			continue
		}

		select {
		case r.slots <- struct{}{}:
		default:
			return // all workers busy; next tick will retry
		}

		claimed, err := r.repo.ClaimReel(ctx, reel.ID)
		if err != nil || !claimed {
			<-r.slots
			if err != nil {
				r.logger.Error("failed to claim reel", "reel_id", reel.ID, "error", err)
			}
			continue
		}

		r.inFlight.Store(reel.ID, struct{}{})
		r.wg.Add(1)
		go func(reel *Reel) {
			defer func() {
				r.inFlight.Delete(reel.ID)
				<-r.slots
				r.wg.Done()
			}()
			r.process(ctx, reel)
		}(reel)
	}
}

func (r *Runner) process(ctx context.Context, reel *Reel) {
	logger := r.logger.With("reel_id", reel.ID)
	logger.Info("processing reel")

	req := pipeline.Request{
		ID:                 reel.ID,
		Locator:            reel.Locator,
		Title:              reel.Title,
		BodyText:           reel.Body,
		VoiceSelector:      reel.VoiceSelector,
		BackgroundSelector: reel.BackgroundSelector,
		MaxDurationSeconds: reel.MaxDurationSeconds,
	}

	art, err := r.pipe.Run(ctx, req, func(status pipeline.Status) {
		if updateErr := r.repo.UpdateReelStatus(ctx, reel.ID, string(status)); updateErr != nil {
			logger.Error("failed to persist status", "status", string(status), "error", updateErr)
		}
	})
	if err != nil {
		kind := pipeline.ErrorKindBackend
		var failure *pipeline.Failure
		if errors.As(err, &failure) {
			kind = failure.Kind
		}
		logger.Warn("reel failed", "error", err, "kind", string(kind))
		if markErr := r.repo.MarkReelFailed(ctx, reel.ID, err.Error(), string(kind)); markErr != nil {
			logger.Error("failed to mark reel failed", "error", markErr)
		}
		return
	}

	if err := r.repo.SetReelArtifacts(ctx, reel.ID, art.AudioPath, art.CaptionPath, art.VideoPath, art.Duration); err != nil {
		logger.Error("failed to persist artifact paths", "error", err)
	}
	logger.Info("reel complete", "video", art.VideoPath, "duration_s", art.Duration)
}
