package captions

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{59.999, "00:00:59,999"},
		{61.25, "00:01:01,250"},
		{3661.007, "01:01:01,007"},
		{-2, "00:00:00,000"},
	}
	for _, tc := range cases {
		if got := FormatTimestamp(tc.seconds); got != tc.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestWriteSRT_ExactLayout(t *testing.T) {
	track := Track{
		TotalDuration: 10,
		Cues: []Cue{
			{Index: 1, Start: 0, End: 4.5, Text: "Hello there."},
			{Index: 2, Start: 4.5, End: 10, Text: "This is great!"},
		},
	}

	var buf bytes.Buffer
	if err := WriteSRT(&buf, track); err != nil {
		t.Fatalf("WriteSRT() error = %v", err)
	}

	want := "1\n" +
		"00:00:00,000 --> 00:00:04,500\n" +
		"Hello there.\n" +
		"\n" +
		"2\n" +
		"00:00:04,500 --> 00:00:10,000\n" +
		"This is great!\n" +
		"\n"
	if buf.String() != want {
		t.Fatalf("WriteSRT output mismatch:\ngot:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestSaveSRT_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "captions.srt")
	track := BuildTrack(Segment("Hello there. This is great!"), 10)

	if err := SaveSRT(path, track); err != nil {
		t.Fatalf("SaveSRT() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("saved SRT file is empty")
	}
}
