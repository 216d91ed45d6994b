package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SelectorSolid is the explicit "no background clip" selector. It always
// forces the generated solid-color source, whatever assets exist on disk.
const SelectorSolid = "solid"

// backgroundAssets maps UI-level background selectors to asset filenames
// under the configured assets directory.
var backgroundAssets = map[string]string{
	"minecraft":  "minecraft.mp4",
	"subway":     "subway.mp4",
	"satisfying": "satisfying.mp4",
	"rain":       "rain.mp4",
}

// stderr signatures that mark the drawtext filter or its font backend as
// unavailable in this engine build.
var overlayFailureSignatures = []string{
	"no such filter",
	"drawtext",
	"fontconfig",
	"cannot find a valid font",
	"could not load font",
	"freetype",
}

// Prober detects, at render time, which optional composition features the
// current environment supports. Probe failures never surface as errors:
// "cannot confirm it works" and "confirmed absent" resolve to the same
// conservative disabled flag.
type Prober struct {
	cfg Config
}

func NewProber(cfg Config) *Prober {
	return &Prober{cfg: cfg}
}

// Probe computes a fresh capability report for one render invocation.
func (p *Prober) Probe(ctx context.Context, backgroundSelector string) CapabilityReport {
	var report CapabilityReport

	report.BackgroundPath, report.HasUsableBackground = p.usableBackground(backgroundSelector)
	report.FontPath = firstExistingFont(p.cfg.FontCandidates)
	report.HasUsableFont = report.FontPath != ""

	// Without a font there is nothing to overlay; skipping the trial render
	// is cheaper and equally correct.
	if report.HasUsableFont {
		report.SupportsTextOverlay = p.trialOverlay(ctx, report.FontPath)
	}

	if p.cfg.Logger != nil {
		p.cfg.Logger.Info("capability probe complete",
			"background", report.HasUsableBackground,
			"font", report.HasUsableFont,
			"text_overlay", report.SupportsTextOverlay,
		)
	}
	return report
}

// Snapshot reports capabilities from filesystem checks alone, without the
// engine trial render. It assumes the overlay works whenever a usable font
// exists, so it can be optimistic; render invocations use Probe.
func (p *Prober) Snapshot(backgroundSelector string) CapabilityReport {
	var report CapabilityReport

	report.BackgroundPath, report.HasUsableBackground = p.usableBackground(backgroundSelector)
	report.FontPath = firstExistingFont(p.cfg.FontCandidates)
	report.HasUsableFont = report.FontPath != ""
	report.SupportsTextOverlay = report.HasUsableFont
	return report
}

// ResolveBackground maps a selector to its asset path. Unknown selectors
// fall back to the configured default asset; ok is false for the explicit
// solid selector.
func (p *Prober) ResolveBackground(selector string) (path string, ok bool) {
	if selector == SelectorSolid {
		return "", false
	}
	name, known := backgroundAssets[selector]
	if !known {
		name, known = backgroundAssets[p.cfg.DefaultBackground]
		if !known {
			return "", false
		}
	}
	return filepath.Join(p.cfg.AssetsDir, name), true
}

func (p *Prober) usableBackground(selector string) (string, bool) {
	path, ok := p.ResolveBackground(selector)
	if !ok {
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// trialOverlay renders a single synthetic frame through drawtext and treats
// any execution error or failure signature in the diagnostics as
// unsupported. The trial artifact is removed whether or not it was produced.
func (p *Prober) trialOverlay(ctx context.Context, fontPath string) bool {
	timeout := p.cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	outPath := filepath.Join(os.TempDir(), fmt.Sprintf("reels-overlay-probe-%d.mp4", time.Now().UnixNano()))
	defer os.Remove(outPath)

	var graph Graph
	graph.DrawText("probe", fontPath, 24, "white", "0", "0")

	args := []string{
		"-y", "-v", "error",
		"-f", "lavfi", "-i", "color=c=black:s=64x64:d=0.1",
		"-vf", graph.String(),
		"-frames:v", "1",
		outPath,
	}

	result := runEngine(ctx, p.cfg.FFmpegPath, args)
	if !result.ok() {
		if p.cfg.Logger != nil {
			p.cfg.Logger.Warn("overlay trial render failed",
				"exit_code", result.ExitCode,
				"stderr_tail", truncate(result.StderrTail, 512),
			)
		}
		return false
	}

	lower := strings.ToLower(result.StderrTail)
	for _, sig := range overlayFailureSignatures {
		if strings.Contains(lower, sig) {
			return false
		}
	}
	return true
}

func firstExistingFont(candidates []string) string {
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}
