package api

import (
	"time"

	"github.com/aniaesther/reddit2reels-backend/internal/reels"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type StatusResponse struct {
	State        string              `json:"state"`
	LastError    string              `json:"last_error,omitempty"`
	ReelsTotal   int                 `json:"reels_total"`
	ReelsPending int                 `json:"reels_pending"`
	ReelsFailed  int                 `json:"reels_failed"`
	Capabilities *CapabilityResponse `json:"capabilities,omitempty"`
}

type CapabilityResponse struct {
	HasUsableFont       bool   `json:"has_usable_font"`
	HasUsableBackground bool   `json:"has_usable_background"`
	SupportsTextOverlay bool   `json:"supports_text_overlay"`
	FontPath            string `json:"font_path,omitempty"`
	BackgroundPath      string `json:"background_path,omitempty"`
}

type CreateReelRequest struct {
	Title              string  `json:"title,omitempty"`
	Locator            string  `json:"locator,omitempty"`
	Body               string  `json:"body,omitempty"`
	VoiceSelector      string  `json:"voice_selector,omitempty"`
	BackgroundSelector string  `json:"background_selector,omitempty"`
	MaxDurationSeconds float64 `json:"max_duration_s,omitempty"`
}

type CreateReelResponse struct {
	ReelID string `json:"reel_id"`
	Status string `json:"status"`
}

type ReelResponse struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Locator            string  `json:"locator,omitempty"`
	VoiceSelector      string  `json:"voice_selector,omitempty"`
	BackgroundSelector string  `json:"background_selector,omitempty"`
	Status             string  `json:"status"`
	Error              string  `json:"error,omitempty"`
	ErrorKind          string  `json:"error_kind,omitempty"`
	DurationSeconds    float64 `json:"duration_s,omitempty"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

type ReelsResponse struct {
	Reels []ReelResponse `json:"reels"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func ReelToResponse(r *reels.Reel) ReelResponse {
	return ReelResponse{
		ID:                 r.ID,
		Title:              r.Title,
		Locator:            r.Locator,
		VoiceSelector:      r.VoiceSelector,
		BackgroundSelector: r.BackgroundSelector,
		Status:             r.Status,
		Error:              r.Error,
		ErrorKind:          r.ErrorKind,
		DurationSeconds:    r.DurationSeconds,
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          r.UpdatedAt.Format(time.RFC3339),
	}
}
