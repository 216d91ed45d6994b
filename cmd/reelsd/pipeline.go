package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aniaesther/reddit2reels-backend/internal/config"
	"github.com/aniaesther/reddit2reels-backend/internal/media"
	"github.com/aniaesther/reddit2reels-backend/internal/pipeline"
	"github.com/aniaesther/reddit2reels-backend/internal/render"
	"github.com/aniaesther/reddit2reels-backend/internal/source"
	"github.com/aniaesther/reddit2reels-backend/internal/speech"
)

// buildPipeline wires every pipeline collaborator from configuration. The
// returned prober is shared with the API's /status handler.
func buildPipeline(cfg config.Config, logger *slog.Logger) (*pipeline.Pipeline, *render.Prober, error) {
	engine := cfg.Engine()

	renderCfg := render.Config{
		FFmpegPath:        engine.FFmpegPath,
		AssetsDir:         engine.AssetsDir,
		FontCandidates:    engine.FontCandidates,
		DefaultBackground: engine.DefaultBackground,
		ProbeTimeout:      cfg.ProbeTimeout(),
		ComposeTimeout:    cfg.ComposeTimeout(),
		Logger:            logger,
	}
	prober := render.NewProber(renderCfg)
	composer := render.NewComposer(renderCfg)

	durations, err := media.NewFFprobe(engine.FFprobePath, cfg.ProbeTimeout(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to locate ffprobe: %w", err)
	}

	tts := cfg.TTS()
	if tts.BaseURL == "" {
		return nil, nil, fmt.Errorf("tts base URL is not configured (set REELS_TTS_BASE_URL or [tts] base_url)")
	}
	synth := speech.NewHTTPSynthesizer(tts.BaseURL, tts.APIKey, cfg.SynthesisTimeout(), logger)

	src := cfg.Source()
	fetcher := source.NewHTTPFetcher(src.UserAgent, time.Duration(src.TimeoutSeconds)*time.Second, logger)

	pipe := pipeline.New(pipeline.Config{
		Fetcher:            fetcher,
		Synthesizer:        synth,
		Durations:          durations,
		Prober:             prober,
		Composer:           composer,
		ArtifactsBase:      cfg.ArtifactsDir(),
		DefaultMaxDuration: cfg.MaxDurationSeconds(),
		Logger:             logger,
	})

	return pipe, prober, nil
}
