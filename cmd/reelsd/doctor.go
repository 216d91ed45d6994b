package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aniaesther/reddit2reels-backend/internal/config"
	"github.com/aniaesther/reddit2reels-backend/internal/logging"
	"github.com/aniaesther/reddit2reels-backend/internal/render"
)

func newDoctorCommand() *cobra.Command {
	var background string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Probe the render environment and report capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(background)
		},
	}

	cmd.Flags().StringVar(&background, "background", "", "background selector to check")

	return cmd
}

func runDoctor(background string) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	engine := cfg.Engine()

	prober := render.NewProber(render.Config{
		FFmpegPath:        engine.FFmpegPath,
		AssetsDir:         engine.AssetsDir,
		FontCandidates:    engine.FontCandidates,
		DefaultBackground: engine.DefaultBackground,
		ProbeTimeout:      cfg.ProbeTimeout(),
		Logger:            logger,
	})

	caps := prober.Probe(context.Background(), background)

	fmt.Printf("ffmpeg:          %s\n", engine.FFmpegPath)
	fmt.Printf("assets dir:      %s\n", engine.AssetsDir)
	fmt.Printf("usable font:     %v", caps.HasUsableFont)
	if caps.FontPath != "" {
		fmt.Printf(" (%s)", caps.FontPath)
	}
	fmt.Println()
	fmt.Printf("background:      %v", caps.HasUsableBackground)
	if caps.BackgroundPath != "" {
		fmt.Printf(" (%s)", caps.BackgroundPath)
	}
	fmt.Println()
	fmt.Printf("text overlay:    %v\n", caps.SupportsTextOverlay)

	if !caps.SupportsTextOverlay {
		fmt.Println()
		fmt.Println("renders will fall back to captions as a sidecar file only")
	}
	return nil
}
