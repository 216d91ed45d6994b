// Package reels stores narration requests and drives them through the
// rendering pipeline.
package reels

import (
	"time"

	"github.com/google/uuid"

	"github.com/aniaesther/reddit2reels-backend/internal/pipeline"
)

// StatusRunning marks a reel claimed by the runner before its first pipeline
// transition. Every later status comes from the pipeline state machine.
const StatusRunning = "running"

// Reel is one narration request and its pipeline progress. Artifact paths
// are filled in as stages complete and never mutated after the run ends.
type Reel struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Locator            string    `json:"locator,omitempty"`
	Body               string    `json:"body,omitempty"`
	VoiceSelector      string    `json:"voice_selector"`
	BackgroundSelector string    `json:"background_selector"`
	MaxDurationSeconds float64   `json:"max_duration_s,omitempty"`
	Status             string    `json:"status"`
	Error              string    `json:"error,omitempty"`
	ErrorKind          string    `json:"error_kind,omitempty"`
	AudioPath          string    `json:"audio_path,omitempty"`
	CaptionPath        string    `json:"caption_path,omitempty"`
	VideoPath          string    `json:"video_path,omitempty"`
	DurationSeconds    float64   `json:"duration_s,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// IsTerminal reports whether the reel's pipeline run has ended.
func (r *Reel) IsTerminal() bool {
	return r.Status == string(pipeline.StatusComplete) || r.Status == string(pipeline.StatusFailed)
}

// NewID returns a fresh reel identifier. Working directories are keyed by
// it, so uniqueness is what keeps concurrent requests isolated.
func NewID() string {
	return uuid.NewString()
}
