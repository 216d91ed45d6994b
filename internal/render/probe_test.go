package render

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

func TestProbe_NoFontSkipsOverlayTrial(t *testing.T) {
	// FFmpegPath points at nothing; if the trial ran it could only fail,
	// but with no usable font it must not run at all.
	p := NewProber(Config{
		FFmpegPath:     filepath.Join(t.TempDir(), "missing-ffmpeg"),
		AssetsDir:      t.TempDir(),
		FontCandidates: []string{filepath.Join(t.TempDir(), "missing.ttf")},
		Logger:         testLogger(),
	})

	report := p.Probe(context.Background(), "minecraft")
	if report.HasUsableFont {
		t.Error("HasUsableFont = true with no font on disk")
	}
	if report.SupportsTextOverlay {
		t.Error("SupportsTextOverlay = true without a usable font")
	}
	if report.FontPath != "" {
		t.Errorf("FontPath = %q, want empty", report.FontPath)
	}
}

func TestProbe_BackgroundUsability(t *testing.T) {
	assets := t.TempDir()
	writeFile(t, assets, "minecraft.mp4")

	p := NewProber(Config{
		FFmpegPath:        "ffmpeg",
		AssetsDir:         assets,
		DefaultBackground: "minecraft",
		Logger:            testLogger(),
	})

	report := p.Probe(context.Background(), "minecraft")
	if !report.HasUsableBackground {
		t.Fatal("HasUsableBackground = false with asset present")
	}
	if report.BackgroundPath != filepath.Join(assets, "minecraft.mp4") {
		t.Errorf("BackgroundPath = %q", report.BackgroundPath)
	}

	// Known selector, file missing from disk.
	report = p.Probe(context.Background(), "subway")
	if report.HasUsableBackground {
		t.Error("HasUsableBackground = true with asset missing")
	}
}

func TestProbe_SolidSelectorNeverUsable(t *testing.T) {
	assets := t.TempDir()
	for name := range backgroundAssets {
		writeFile(t, assets, backgroundAssets[name])
	}

	p := NewProber(Config{AssetsDir: assets, DefaultBackground: "minecraft", Logger: testLogger()})
	report := p.Probe(context.Background(), SelectorSolid)
	if report.HasUsableBackground {
		t.Fatal("solid selector must force the generated fallback")
	}
}

func TestResolveBackground_UnknownFallsBackToDefault(t *testing.T) {
	p := NewProber(Config{AssetsDir: "/assets", DefaultBackground: "minecraft"})

	path, ok := p.ResolveBackground("definitely-not-a-style")
	if !ok {
		t.Fatal("unknown selector did not resolve to the default asset")
	}
	if path != filepath.Join("/assets", "minecraft.mp4") {
		t.Errorf("path = %q", path)
	}
}

func TestProbe_OverlayTrialFailureIsConservative(t *testing.T) {
	fonts := t.TempDir()
	font := writeFile(t, fonts, "DejaVuSans.ttf")

	// The engine binary does not exist: the trial errors, which resolves to
	// "unsupported" rather than an error to the caller.
	p := NewProber(Config{
		FFmpegPath:     filepath.Join(t.TempDir(), "missing-ffmpeg"),
		AssetsDir:      t.TempDir(),
		FontCandidates: []string{font},
		Logger:         testLogger(),
	})

	report := p.Probe(context.Background(), SelectorSolid)
	if !report.HasUsableFont {
		t.Fatal("HasUsableFont = false with candidate present")
	}
	if report.FontPath != font {
		t.Errorf("FontPath = %q, want %q", report.FontPath, font)
	}
	if report.SupportsTextOverlay {
		t.Error("SupportsTextOverlay = true after a failed trial render")
	}
}

func TestSnapshot_NeverSpawnsEngine(t *testing.T) {
	assets := t.TempDir()
	writeFile(t, assets, "minecraft.mp4")
	fonts := t.TempDir()
	font := writeFile(t, fonts, "DejaVuSans.ttf")

	// With this engine path a trial render would report no overlay support;
	// the snapshot skips the trial and reports from the filesystem alone.
	p := NewProber(Config{
		FFmpegPath:        filepath.Join(t.TempDir(), "missing-ffmpeg"),
		AssetsDir:         assets,
		DefaultBackground: "minecraft",
		FontCandidates:    []string{font},
		Logger:            testLogger(),
	})

	report := p.Snapshot("minecraft")
	if !report.HasUsableFont || report.FontPath != font {
		t.Fatalf("font report = %+v, want %q usable", report, font)
	}
	if !report.HasUsableBackground {
		t.Error("HasUsableBackground = false with asset present")
	}
	if !report.SupportsTextOverlay {
		t.Error("SupportsTextOverlay = false in snapshot with a usable font")
	}

	noFont := NewProber(Config{
		AssetsDir:      assets,
		FontCandidates: []string{filepath.Join(fonts, "missing.ttf")},
		Logger:         testLogger(),
	})
	if noFont.Snapshot(SelectorSolid).SupportsTextOverlay {
		t.Error("SupportsTextOverlay = true in snapshot without a font")
	}
}

func TestFirstExistingFont_PrefersEarlierCandidates(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.ttf")
	second := writeFile(t, dir, "b.ttf")

	got := firstExistingFont([]string{filepath.Join(dir, "missing.ttf"), first, second})
	if got != first {
		t.Fatalf("firstExistingFont = %q, want %q", got, first)
	}

	if got := firstExistingFont(nil); got != "" {
		t.Fatalf("firstExistingFont(nil) = %q, want empty", got)
	}

	// Directories never count as fonts.
	if got := firstExistingFont([]string{dir}); got != "" {
		t.Fatalf("firstExistingFont(dir) = %q, want empty", got)
	}
}
