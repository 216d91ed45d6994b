package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aniaesther/reddit2reels-backend/internal/config"
	"github.com/aniaesther/reddit2reels-backend/internal/logging"
	"github.com/aniaesther/reddit2reels-backend/internal/pipeline"
)

func newRenderCommand() *cobra.Command {
	var (
		title      string
		locator    string
		body       string
		voice      string
		background string
		maxSeconds float64
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a single reel without starting the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(title, locator, body, voice, background, maxSeconds)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "title shown in the overlay")
	cmd.Flags().StringVar(&locator, "locator", "", "URL of the post to narrate")
	cmd.Flags().StringVar(&body, "body", "", "narration text (overrides --locator)")
	cmd.Flags().StringVar(&voice, "voice", "", "voice selector (narrator, calm, upbeat, deep, british)")
	cmd.Flags().StringVar(&background, "background", "", "background selector (minecraft, subway, satisfying, rain, solid)")
	cmd.Flags().Float64Var(&maxSeconds, "max-seconds", 0, "cap the output duration")

	return cmd
}

func runRender(title, locator, body, voice, background string, maxSeconds float64) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if locator == "" && body == "" {
		return fmt.Errorf("either --locator or --body is required")
	}

	if err := os.MkdirAll(cfg.ArtifactsDir(), 0755); err != nil {
		return fmt.Errorf("failed to create artifacts dir: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())

	pipe, _, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}

	art, err := pipe.Run(context.Background(), pipeline.Request{
		Title:              title,
		Locator:            locator,
		BodyText:           body,
		VoiceSelector:      voice,
		BackgroundSelector: background,
		MaxDurationSeconds: maxSeconds,
	}, func(status pipeline.Status) {
		fmt.Printf("  %s\n", string(status))
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("video:    %s\n", art.VideoPath)
	fmt.Printf("audio:    %s\n", art.AudioPath)
	fmt.Printf("captions: %s\n", art.CaptionPath)
	fmt.Printf("duration: %.2fs\n", art.Duration)
	return nil
}
