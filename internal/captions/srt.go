package captions

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// FormatTimestamp renders seconds as an SRT timing field: HH:MM:SS,mmm with
// zero-padded fields and millisecond precision.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMs := int64(math.Round(seconds * 1000))
	ms := totalMs % 1000
	totalSec := totalMs / 1000
	sec := totalSec % 60
	totalMin := totalSec / 60
	min := totalMin % 60
	hours := totalMin / 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, min, sec, ms)
}

// WriteSRT serializes a track in SubRip format: a 1-based index line, a
// timing line "A --> B", the cue text, and a blank separator line per cue.
// Existing caption consumers depend on this exact layout.
func WriteSRT(w io.Writer, t Track) error {
	bw := bufio.NewWriter(w)
	for _, cue := range t.Cues {
		fmt.Fprintf(bw, "%d\n", cue.Index)
		fmt.Fprintf(bw, "%s --> %s\n", FormatTimestamp(cue.Start), FormatTimestamp(cue.End))
		fmt.Fprintf(bw, "%s\n\n", cue.Text)
	}
	return bw.Flush()
}

// SaveSRT writes the track to path, creating parent directories as needed.
func SaveSRT(path string, t Track) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create captions dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create captions file: %w", err)
	}
	defer f.Close()

	if err := WriteSRT(f, t); err != nil {
		return fmt.Errorf("write captions: %w", err)
	}
	return nil
}
