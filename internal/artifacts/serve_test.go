package artifacts

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		size      int64
		wantStart int64
		wantEnd   int64
		wantNil   bool
		wantErr   error
	}{
		{"empty header", "", 1000, 0, 0, true, nil},
		{"full range", "bytes=0-999", 1000, 0, 999, false, nil},
		{"partial start", "bytes=500-", 1000, 500, 999, false, nil},
		{"suffix range", "bytes=-500", 1000, 500, 999, false, nil},
		{"single byte", "bytes=0-0", 1000, 0, 0, false, nil},
		{"middle range", "bytes=100-199", 1000, 100, 199, false, nil},
		{"beyond size clamped", "bytes=0-2000", 1000, 0, 999, false, nil},
		{"suffix larger than file", "bytes=-2000", 500, 0, 499, false, nil},
		{"last byte", "bytes=999-", 1000, 999, 999, false, nil},
		{"multi range takes first", "bytes=0-99, 200-299", 1000, 0, 99, false, nil},

		{"unsatisfiable start", "bytes=1000-", 1000, 0, 0, false, ErrUnsatisfiable},
		{"unsatisfiable beyond", "bytes=1500-2000", 1000, 0, 0, false, ErrUnsatisfiable},
		{"invalid format no bytes", "invalid", 1000, 0, 0, false, ErrInvalidRange},
		{"wrong unit", "chars=0-100", 1000, 0, 0, false, ErrInvalidRange},
		{"invalid start", "bytes=abc-100", 1000, 0, 0, false, ErrInvalidRange},
		{"invalid end", "bytes=0-abc", 1000, 0, 0, false, ErrInvalidRange},
		{"negative suffix", "bytes=-0", 1000, 0, 0, false, ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.header, tt.size)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("ParseRange() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseRange() unexpected error: %v", err)
				return
			}

			if tt.wantNil {
				if got != nil {
					t.Errorf("ParseRange() = %v, want nil", got)
				}
				return
			}

			if got == nil {
				t.Errorf("ParseRange() = nil, want non-nil")
				return
			}

			if got.Start != tt.wantStart || got.End != tt.wantEnd {
				t.Errorf("ParseRange() = {%d, %d}, want {%d, %d}", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func seedArtifact(t *testing.T, store *Store, reelID string, kind Kind, content []byte) string {
	t.Helper()
	path, err := store.PathFor(reelID, kind)
	if err != nil {
		t.Fatalf("PathFor() error = %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating artifact dir: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}
	return path
}

func TestServe_FullFile(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	path := seedArtifact(t, store, "reel-1", KindVideo, []byte("0123456789"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reels/reel-1/video", nil)

	if err := store.Serve(rec, req, path); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	if rec.Code != 200 {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "0123456789" {
		t.Errorf("body = %q, want full content", got)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "video/mp4" {
		t.Errorf("Content-Type = %q, want video/mp4", ct)
	}
	if ar := rec.Header().Get("Accept-Ranges"); ar != "bytes" {
		t.Errorf("Accept-Ranges = %q, want bytes", ar)
	}
}

func TestServe_PartialContent(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	path := seedArtifact(t, store, "reel-1", KindVideo, []byte("0123456789"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reels/reel-1/video", nil)
	req.Header.Set("Range", "bytes=2-5")

	if err := store.Serve(rec, req, path); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	if rec.Code != 206 {
		t.Errorf("status = %d, want 206", rec.Code)
	}
	if got := rec.Body.String(); got != "2345" {
		t.Errorf("body = %q, want 2345", got)
	}
	if cr := rec.Header().Get("Content-Range"); cr != "bytes 2-5/10" {
		t.Errorf("Content-Range = %q, want bytes 2-5/10", cr)
	}
}

func TestServe_UnsatisfiableRange(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	path := seedArtifact(t, store, "reel-1", KindVideo, []byte("0123456789"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reels/reel-1/video", nil)
	req.Header.Set("Range", "bytes=50-")

	if err := store.Serve(rec, req, path); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	if rec.Code != 416 {
		t.Errorf("status = %d, want 416", rec.Code)
	}
	if cr := rec.Header().Get("Content-Range"); cr != "bytes */10" {
		t.Errorf("Content-Range = %q, want bytes */10", cr)
	}
}

func TestServe_MissingFileIs404(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reels/nope/video", nil)

	if err := store.Serve(rec, req, filepath.Join(store.Base(), "nope", "reel.mp4")); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	if rec.Code != 404 {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServe_EmptyPathIs404(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reels/x/video", nil)

	if err := store.Serve(rec, req, ""); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	if rec.Code != 404 {
		t.Errorf("status = %d, want 404 for unset artifact path", rec.Code)
	}
}
