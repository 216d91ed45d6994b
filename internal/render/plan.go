package render

import "fmt"

// Target output profile: portrait 1080x1920 at 30 fps, yuv420p, one fixed
// encoding preset. Codec negotiation is out of scope.
const (
	TargetWidth  = 1080
	TargetHeight = 1920
	TargetFPS    = 30

	solidColor    = "0x1a1a2e"
	titleBoxColor = "black@0.55"
	titleFontSize = 56
)

// BuildPlan assembles the composition plan for one request. First matching
// row wins:
//
//	selector "solid" or background unusable  -> solid-color source
//	otherwise                                -> named background clip
//	font usable and overlay supported        -> title box + burned captions
//	otherwise                                -> no overlay
//
// captionPath is the already persisted subtitle file the overlay burns in.
// Pure and deterministic: no I/O, no error conditions.
func BuildPlan(caps CapabilityReport, req Request, captionPath string) Plan {
	plan := Plan{
		Source:      SourceSolidColor,
		Overlay:     OverlayNone,
		MaxDuration: req.MaxDuration,
	}

	if req.BackgroundSelector != SelectorSolid && caps.HasUsableBackground {
		plan.Source = SourceNamedClip
		plan.BackgroundPath = caps.BackgroundPath
	}

	if caps.HasUsableFont && caps.SupportsTextOverlay {
		plan.Overlay = OverlayTitleAndCaptions
	}

	var graph Graph
	graph.Scale(TargetWidth, TargetHeight).Format("yuv420p")

	if plan.Overlay == OverlayTitleAndCaptions {
		graph.DrawBox("0", "ih/10", "iw", "ih/6", titleBoxColor)
		graph.DrawText(req.Title, caps.FontPath, titleFontSize, "white",
			"(w-text_w)/2", "h/10+(h/6-text_h)/2")
		graph.BurnSubtitles(captionPath)
	}
	plan.FilterGraph = graph.String()

	plan.OutputArgs = []string{
		"-r", fmt.Sprintf("%d", TargetFPS),
		"-pix_fmt", "yuv420p",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-c:a", "aac",
		"-shortest",
	}
	if plan.MaxDuration > 0 {
		plan.OutputArgs = append(plan.OutputArgs, "-t", fmt.Sprintf("%.3f", plan.MaxDuration))
	}

	return plan
}
