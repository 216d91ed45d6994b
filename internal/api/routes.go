package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aniaesther/reddit2reels-backend/internal/artifacts"
	"github.com/aniaesther/reddit2reels-backend/internal/pipeline"
	"github.com/aniaesther/reddit2reels-backend/internal/reels"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Repository, cfg.Logger))

		r.Get("/status", statusHandler(cfg))
		r.Post("/reels", createReelHandler(cfg))
		r.Get("/reels", listReelsHandler(cfg))
		r.Get("/reels/{id}", getReelHandler(cfg))
		r.Delete("/reels/{id}", deleteReelHandler(cfg))
		r.Get("/reels/{id}/video", artifactHandler(cfg, artifacts.KindVideo))
		r.Get("/reels/{id}/audio", artifactHandler(cfg, artifacts.KindAudio))
		r.Get("/reels/{id}/captions", artifactHandler(cfg, artifacts.KindCaptions))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: cfg.Version,
			UptimeS: uptime,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		total, _ := cfg.ReelService.CountReels(ctx)
		pending, _ := cfg.Repository.CountReelsByStatus(ctx, string(pipeline.StatusPending))
		failed, _ := cfg.Repository.CountReelsByStatus(ctx, string(pipeline.StatusFailed))

		state := "idle"
		if cfg.Runner != nil && cfg.Runner.IsPaused() {
			state = "paused"
		} else if pending > 0 {
			state = "rendering"
		}

		lastError := ""
		if recent, err := cfg.ReelService.ListReels(ctx, 10); err == nil {
			for _, reel := range recent {
				if reel.Status == string(pipeline.StatusFailed) {
					lastError = reel.Error
					break
				}
			}
		}

		resp := StatusResponse{
			State:        state,
			LastError:    lastError,
			ReelsTotal:   total,
			ReelsPending: pending,
			ReelsFailed:  failed,
		}

		if cfg.Prober != nil {
			caps := cfg.Prober.Snapshot("")
			resp.Capabilities = &CapabilityResponse{
				HasUsableFont:       caps.HasUsableFont,
				HasUsableBackground: caps.HasUsableBackground,
				SupportsTextOverlay: caps.SupportsTextOverlay,
				FontPath:            caps.FontPath,
				BackgroundPath:      caps.BackgroundPath,
			}
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

func createReelHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateReelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		reel, err := cfg.ReelService.CreateReel(r.Context(), reels.CreateParams{
			Title:              req.Title,
			Locator:            req.Locator,
			Body:               req.Body,
			VoiceSelector:      req.VoiceSelector,
			BackgroundSelector: req.BackgroundSelector,
			MaxDurationSeconds: req.MaxDurationSeconds,
		})
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusAccepted, CreateReelResponse{ReelID: reel.ID, Status: reel.Status})
	}
}

func listReelsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := cfg.ReelService.ListReels(r.Context(), 50)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list reels", "INTERNAL_ERROR")
			return
		}

		resp := ReelsResponse{Reels: make([]ReelResponse, len(list))}
		for i, reel := range list {
			resp.Reels[i] = ReelToResponse(reel)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func getReelHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "reel id required", "BAD_REQUEST")
			return
		}

		reel, err := cfg.ReelService.GetReel(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if reel == nil {
			WriteError(w, http.StatusNotFound, "reel not found", "NOT_FOUND")
			return
		}

		WriteJSON(w, http.StatusOK, ReelToResponse(reel))
	}
}

func deleteReelHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "reel id required", "BAD_REQUEST")
			return
		}

		reel, err := cfg.ReelService.GetReel(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if reel == nil {
			WriteError(w, http.StatusNotFound, "reel not found", "NOT_FOUND")
			return
		}
		if !reel.IsTerminal() {
			WriteError(w, http.StatusConflict, "reel is still processing", "CONFLICT")
			return
		}

		if err := cfg.Artifacts.Remove(id); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func artifactHandler(cfg ServerConfig, kind artifacts.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "reel id required", "BAD_REQUEST")
			return
		}

		reel, err := cfg.ReelService.GetReel(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if reel == nil {
			WriteError(w, http.StatusNotFound, "reel not found", "NOT_FOUND")
			return
		}

		// Only paths persisted by a completed run are servable. A failed
		// compose may leave a partial file on disk under the conventional
		// name; it is not an artifact.
		path := persistedArtifactPath(reel, kind)
		if path == "" {
			WriteError(w, http.StatusNotFound, "artifact not available", "NOT_FOUND")
			return
		}

		if err := cfg.Artifacts.Serve(w, r, path); err != nil {
			cfg.Logger.Error("artifact serve error", "error", err, "reel_id", id, "kind", string(kind))
		}
	}
}

func persistedArtifactPath(reel *reels.Reel, kind artifacts.Kind) string {
	switch kind {
	case artifacts.KindAudio:
		return reel.AudioPath
	case artifacts.KindCaptions:
		return reel.CaptionPath
	case artifacts.KindVideo:
		return reel.VideoPath
	}
	return ""
}
