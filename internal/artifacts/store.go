// Package artifacts manages the files a completed render leaves behind and
// streams them to HTTP clients with byte-range support.
package artifacts

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Kind selects one of the three files a run produces.
type Kind string

const (
	KindAudio    Kind = "audio"
	KindCaptions Kind = "captions"
	KindVideo    Kind = "video"
)

var kindFilenames = map[Kind]string{
	KindAudio:    "narration.mp3",
	KindCaptions: "captions.srt",
	KindVideo:    "reel.mp4",
}

var ErrUnknownKind = errors.New("unknown artifact kind")

// Store resolves and manages per-reel artifact directories under a single
// base directory. Reel IDs are used as directory names, so anything that
// could escape the base is rejected.
type Store struct {
	base   string
	logger *slog.Logger
}

func NewStore(base string, logger *slog.Logger) *Store {
	return &Store{base: base, logger: logger}
}

func (s *Store) Base() string { return s.base }

// PathFor returns the on-disk path for one artifact of one reel. It does not
// check that the file exists.
func (s *Store) PathFor(reelID string, kind Kind) (string, error) {
	dir, err := s.reelDir(reelID)
	if err != nil {
		return "", err
	}
	name, ok := kindFilenames[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return filepath.Join(dir, name), nil
}

// Remove deletes every artifact of one reel.
func (s *Store) Remove(reelID string) error {
	dir, err := s.reelDir(reelID)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove artifacts for %s: %w", reelID, err)
	}
	if s.logger != nil {
		s.logger.Info("artifacts removed", "reel_id", reelID)
	}
	return nil
}

// DiskUsage sums the sizes of every file under the base directory.
func (s *Store) DiskUsage() (int64, error) {
	var total int64
	err := filepath.Walk(s.base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}

func (s *Store) reelDir(reelID string) (string, error) {
	if reelID == "" || strings.ContainsAny(reelID, `/\`) || reelID == "." || reelID == ".." {
		return "", fmt.Errorf("invalid reel id %q", reelID)
	}
	return filepath.Join(s.base, reelID), nil
}
