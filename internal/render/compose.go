package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Composer executes render plans as single synchronous ffmpeg jobs.
type Composer struct {
	cfg Config
}

func NewComposer(cfg Config) *Composer {
	return &Composer{cfg: cfg}
}

// Compose runs the plan against the engine, mapping the filtered video
// stream and the narration audio to outputPath. It writes exactly one file
// on success. On failure a partial file may remain on disk; the returned
// *Error carries the engine diagnostics verbatim and the caller must not
// surface the partial file as an artifact. No retries.
func (c *Composer) Compose(ctx context.Context, plan Plan, audioPath, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	timeout := c.cfg.ComposeTimeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{"-y", "-v", "error"}

	switch plan.Source {
	case SourceNamedClip:
		// Loop the clip so short backgrounds cover long narrations;
		// -shortest in the output args trims to the audio.
		args = append(args, "-stream_loop", "-1", "-i", plan.BackgroundPath)
	case SourceSolidColor:
		args = append(args, "-f", "lavfi", "-i",
			fmt.Sprintf("color=c=%s:s=%dx%d:r=%d", solidColor, TargetWidth, TargetHeight, TargetFPS))
	}

	args = append(args, "-i", audioPath)
	args = append(args,
		"-filter_complex", fmt.Sprintf("[0:v]%s[v]", plan.FilterGraph),
		"-map", "[v]",
		"-map", "1:a",
	)
	args = append(args, plan.OutputArgs...)
	args = append(args, outputPath)

	if c.cfg.Logger != nil {
		c.cfg.Logger.Info("composing video",
			"source", plan.Source.String(),
			"overlay", plan.Overlay.String(),
			"output", filepath.Base(outputPath),
		)
	}

	result := runEngine(ctx, c.cfg.FFmpegPath, args)
	if !result.ok() {
		if c.cfg.Logger != nil {
			c.cfg.Logger.Warn("compose failed",
				"exit_code", result.ExitCode,
				"duration_ms", result.Duration.Milliseconds(),
				"stderr_tail", truncate(result.StderrTail, 512),
			)
		}
		return &Error{ExitCode: result.ExitCode, StderrTail: result.StderrTail}
	}

	if c.cfg.Logger != nil {
		c.cfg.Logger.Info("compose succeeded",
			"duration_ms", result.Duration.Milliseconds(),
			"output", filepath.Base(outputPath),
		)
	}
	return nil
}
