package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aniaesther/reddit2reels-backend/internal/config"
)

func main() {
	root := &cobra.Command{
		Use:          "reelsd",
		Short:        "Short-form narration video service",
		Long:         "reelsd turns narration text into vertical videos with synthesized speech and synchronized captions.",
		Version:      fmt.Sprintf("%s (built %s, commit %s)", config.Version, config.BuildTime, config.GitCommit),
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newRenderCommand())
	root.AddCommand(newDoctorCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
