// Package pipeline sequences one narration request through text acquisition,
// speech synthesis, duration measurement, caption building, render planning,
// and media composition. Each run is independent; stages within a run are
// strictly sequential and never retried.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/aniaesther/reddit2reels-backend/internal/captions"
	"github.com/aniaesther/reddit2reels-backend/internal/media"
	"github.com/aniaesther/reddit2reels-backend/internal/render"
	"github.com/aniaesther/reddit2reels-backend/internal/source"
	"github.com/aniaesther/reddit2reels-backend/internal/speech"
)

// Status is the pipeline's linear state machine. Failed is reachable from
// every non-terminal state; there is no other branching.
type Status string

const (
	StatusPending          Status = "pending"
	StatusTextAcquired     Status = "text_acquired"
	StatusAudioSynthesized Status = "audio_synthesized"
	StatusDurationMeasured Status = "duration_measured"
	StatusCaptionsBuilt    Status = "captions_built"
	StatusRenderPlanned    Status = "render_planned"
	StatusVideoComposed    Status = "video_composed"
	StatusComplete         Status = "complete"
	StatusFailed           Status = "failed"
)

// ErrorKind distinguishes a bad request from a backend failure in the
// user-visible error report.
type ErrorKind string

const (
	ErrorKindClient  ErrorKind = "client"
	ErrorKindBackend ErrorKind = "backend"
)

// Failure wraps a stage error with its kind.
type Failure struct {
	Kind ErrorKind
	Err  error
}

func (f *Failure) Error() string { return f.Err.Error() }
func (f *Failure) Unwrap() error { return f.Err }

// ErrNoNarrationText is returned when acquisition yields no usable body.
var ErrNoNarrationText = errors.New("no narration text available")

// Request is one narration request, immutable once handed to the pipeline.
// BodyText may be supplied directly; otherwise it is fetched from Locator.
type Request struct {
	ID                 string
	Locator            string
	Title              string
	BodyText           string
	VoiceSelector      string
	BackgroundSelector string
	MaxDurationSeconds float64
}

// Artifacts are the three files a completed run leaves behind. They are
// never mutated after completion; cleanup belongs to artifact lifecycle
// management, not this package.
type Artifacts struct {
	ID          string
	Dir         string
	AudioPath   string
	CaptionPath string
	VideoPath   string
	Duration    float64
	Title       string
}

// CapabilityProber yields a fresh capability report per invocation.
type CapabilityProber interface {
	Probe(ctx context.Context, backgroundSelector string) render.CapabilityReport
}

// Composer executes a render plan against the engine.
type Composer interface {
	Compose(ctx context.Context, plan render.Plan, audioPath, outputPath string) error
}

// Config wires the pipeline's collaborators.
type Config struct {
	Fetcher       source.Fetcher
	Synthesizer   speech.Synthesizer
	Durations     media.DurationProber
	Prober        CapabilityProber
	Composer      Composer
	ArtifactsBase string
	// DefaultMaxDuration caps requests that carry no limit of their own.
	// 0 disables truncation.
	DefaultMaxDuration float64
	Logger             *slog.Logger
}

// Pipeline runs narration requests to completion.
type Pipeline struct {
	cfg Config
}

func New(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Run drives one request through every stage. onTransition is invoked after
// each successful stage so callers can persist progress; it may be nil.
// The returned error is always a *Failure.
func (p *Pipeline) Run(ctx context.Context, req Request, onTransition func(Status)) (*Artifacts, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	logger := p.cfg.Logger.With("reel_id", req.ID)

	advance := func(s Status) {
		logger.Info("pipeline stage complete", "status", string(s))
		if onTransition != nil {
			onTransition(s)
		}
	}

	// Text acquisition. Upstream failures were already absorbed by the
	// fetcher; an empty body here is the requester's problem.
	title, body := req.Title, req.BodyText
	if body == "" && req.Locator != "" {
		post := p.cfg.Fetcher.FetchPost(ctx, req.Locator)
		body = post.Body
		if title == "" {
			title = post.Title
		}
	}
	if body == "" {
		return nil, &Failure{Kind: ErrorKindClient, Err: ErrNoNarrationText}
	}
	advance(StatusTextAcquired)

	// Working storage is isolated per request; the fresh identifier is the
	// only collision discipline the path namespace needs.
	art := &Artifacts{
		ID:    req.ID,
		Dir:   filepath.Join(p.cfg.ArtifactsBase, req.ID),
		Title: title,
	}
	art.AudioPath = filepath.Join(art.Dir, "narration.mp3")
	art.CaptionPath = filepath.Join(art.Dir, "captions.srt")
	art.VideoPath = filepath.Join(art.Dir, "reel.mp4")

	if err := os.MkdirAll(art.Dir, 0755); err != nil {
		return nil, &Failure{Kind: ErrorKindBackend, Err: fmt.Errorf("create working dir: %w", err)}
	}

	audio, err := p.cfg.Synthesizer.Synthesize(ctx, body, speech.ResolveVoice(req.VoiceSelector))
	if err != nil {
		return nil, &Failure{Kind: ErrorKindBackend, Err: err}
	}
	if err := os.WriteFile(art.AudioPath, audio, 0644); err != nil {
		return nil, &Failure{Kind: ErrorKindBackend, Err: fmt.Errorf("write audio: %w", err)}
	}
	advance(StatusAudioSynthesized)

	duration, err := p.cfg.Durations.Duration(ctx, art.AudioPath)
	if err != nil {
		return nil, &Failure{Kind: ErrorKindBackend, Err: err}
	}
	art.Duration = duration
	advance(StatusDurationMeasured)

	track := captions.BuildTrack(captions.Segment(body), duration)
	if err := captions.SaveSRT(art.CaptionPath, track); err != nil {
		return nil, &Failure{Kind: ErrorKindBackend, Err: err}
	}
	advance(StatusCaptionsBuilt)

	maxDuration := req.MaxDurationSeconds
	if maxDuration <= 0 {
		maxDuration = p.cfg.DefaultMaxDuration
	}
	caps := p.cfg.Prober.Probe(ctx, req.BackgroundSelector)
	plan := render.BuildPlan(caps, render.Request{
		Title:              title,
		BackgroundSelector: req.BackgroundSelector,
		MaxDuration:        maxDuration,
	}, art.CaptionPath)
	advance(StatusRenderPlanned)

	if err := p.cfg.Composer.Compose(ctx, plan, art.AudioPath, art.VideoPath); err != nil {
		// A partial output file may exist; it is not an artifact.
		return nil, &Failure{Kind: ErrorKindBackend, Err: err}
	}
	advance(StatusVideoComposed)

	advance(StatusComplete)
	return art, nil
}
