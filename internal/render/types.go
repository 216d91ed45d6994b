// Package render builds and executes capability-aware composition plans
// against an external ffmpeg engine. It degrades deterministically when a
// background asset, a usable font, or the drawtext filter is unavailable.
package render

import (
	"fmt"
	"log/slog"
	"time"
)

// VideoSource selects where the primary video stream comes from.
type VideoSource int

const (
	// SourceNamedClip loops a background clip from the assets directory.
	SourceNamedClip VideoSource = iota
	// SourceSolidColor generates a synthetic solid-color input with no file
	// dependency.
	SourceSolidColor
)

func (s VideoSource) String() string {
	switch s {
	case SourceNamedClip:
		return "named_clip"
	case SourceSolidColor:
		return "solid_color"
	default:
		return "unknown"
	}
}

// Overlay selects how much text is burned into the video.
type Overlay int

const (
	// OverlayNone burns nothing; captions remain sidecar-only.
	OverlayNone Overlay = iota
	// OverlayTitleAndCaptions draws the title over a semi-transparent box
	// and burns the caption track into the frames.
	OverlayTitleAndCaptions
)

func (o Overlay) String() string {
	switch o {
	case OverlayTitleAndCaptions:
		return "title_and_captions"
	default:
		return "none"
	}
}

// CapabilityReport is a per-invocation snapshot of which optional rendering
// features are usable. It is never cached: asset and font availability can
// change between requests.
type CapabilityReport struct {
	HasUsableFont       bool
	HasUsableBackground bool
	SupportsTextOverlay bool

	// FontPath is the first usable candidate, empty when none exists.
	FontPath string
	// BackgroundPath is the resolved asset path, empty when unusable.
	BackgroundPath string
}

// Request carries the rendering-relevant fields of a narration request.
type Request struct {
	Title              string
	BackgroundSelector string
	MaxDuration        float64
}

// Plan is a fully determined, side-effect-free description of one
// composition. Building it performs no I/O.
type Plan struct {
	Source         VideoSource
	BackgroundPath string
	Overlay        Overlay
	FilterGraph    string
	OutputArgs     []string
	MaxDuration    float64
}

// Config holds the engine paths and probe inputs. It is passed in at
// construction time; nothing in this package reads global state.
type Config struct {
	FFmpegPath        string
	AssetsDir         string
	FontCandidates    []string
	DefaultBackground string
	ProbeTimeout      time.Duration
	ComposeTimeout    time.Duration
	Logger            *slog.Logger
}

// Error carries the engine's failure diagnostics verbatim. A failed render
// is terminal for its request; callers must not treat any partial output
// file as a usable artifact.
type Error struct {
	ExitCode   int
	StderrTail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("render engine exited %d: %s", e.ExitCode, e.StderrTail)
}
