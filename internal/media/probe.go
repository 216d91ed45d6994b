// Package media measures properties of generated audio files by shelling
// out to ffprobe.
package media

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DurationProber reports the playable duration of an audio file.
type DurationProber interface {
	Duration(ctx context.Context, audioPath string) (float64, error)
}

// FFprobe runs the ffprobe binary to measure durations.
type FFprobe struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewFFprobe resolves the ffprobe binary. An empty preferred path falls back
// to the PATH lookup.
func NewFFprobe(preferred string, timeout time.Duration, logger *slog.Logger) (*FFprobe, error) {
	binary, err := resolveBinary(preferred)
	if err != nil {
		return nil, fmt.Errorf("cannot locate ffprobe: %w", err)
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &FFprobe{binary: binary, timeout: timeout, logger: logger}, nil
}

// Duration returns the stream duration in seconds. Zero or unparsable
// durations return 0 without an error; only a failed probe execution is an
// error.
func (f *FFprobe) Duration(ctx context.Context, audioPath string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	raw := strings.TrimSpace(stdout.String())
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil || seconds < 0 {
		if f.logger != nil {
			f.logger.Warn("unparsable duration, treating as zero", "raw", raw)
		}
		return 0, nil
	}
	return seconds, nil
}

func resolveBinary(preferred string) (string, error) {
	if preferred != "" {
		if p, err := exec.LookPath(preferred); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("configured ffprobe %q not found", preferred)
	}
	for _, name := range []string{"ffprobe"} {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no ffprobe binary found on PATH")
}
