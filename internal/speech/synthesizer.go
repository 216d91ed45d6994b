// Package speech synthesizes narration audio through an external TTS
// provider. The pipeline only requires that the result be a decodable audio
// stream; which provider or voice taxonomy backs it is configuration.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Synthesizer converts narration text into audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}

// SynthesisError represents a provider failure. The provider's diagnostic
// body is preserved verbatim for the request's error report.
type SynthesisError struct {
	StatusCode int
	Body       string
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("speech synthesis failed: HTTP %d: %s", e.StatusCode, e.Body)
}

// HTTPSynthesizer calls a TTS HTTP endpoint: POST {text, voice} -> audio
// bytes. A failed call is fatal to its request; there are no retries here.
type HTTPSynthesizer struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPSynthesizer(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *HTTPSynthesizer {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &HTTPSynthesizer{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type synthesisRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

func (s *HTTPSynthesizer) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	body, err := json.Marshal(synthesisRequest{Text: text, Voice: voiceID})
	if err != nil {
		return nil, fmt.Errorf("marshal synthesis payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1/audio/speech", s.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	s.logger.Info("requesting speech synthesis",
		"voice", voiceID,
		"text_chars", len(text),
	)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		diag, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &SynthesisError{StatusCode: resp.StatusCode, Body: string(diag)}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio response: %w", err)
	}
	if len(audio) == 0 {
		return nil, &SynthesisError{StatusCode: resp.StatusCode, Body: "provider returned an empty audio stream"}
	}

	s.logger.Info("synthesis complete", "audio_bytes", len(audio))
	return audio, nil
}
