package captions

import (
	"math"
	"reflect"
	"testing"
)

func TestBuildTrack_ProportionalAllocation(t *testing.T) {
	sentences := Segment("Hello there. This is great!")
	track := BuildTrack(sentences, 10.0)

	if len(track.Cues) != 2 {
		t.Fatalf("cue count = %d, want 2", len(track.Cues))
	}

	c1, c2 := track.Cues[0], track.Cues[1]
	if c1.Index != 1 || c2.Index != 2 {
		t.Errorf("indices = %d, %d, want 1, 2", c1.Index, c2.Index)
	}
	if c1.Start != 0 {
		t.Errorf("first cue start = %v, want 0", c1.Start)
	}

	// "Hello there." is 12 of 26 characters
	wantEnd := 10.0 * 12.0 / 26.0
	if math.Abs(c1.End-wantEnd) > 1e-9 {
		t.Errorf("first cue end = %v, want %v", c1.End, wantEnd)
	}
	if c2.Start != c1.End {
		t.Errorf("cues not contiguous: %v != %v", c2.Start, c1.End)
	}
	if c2.End != 10.0 {
		t.Errorf("final cue end = %v, want exactly 10.0", c2.End)
	}
}

func TestBuildTrack_SingleSentence(t *testing.T) {
	track := BuildTrack(Segment("no punctuation here"), 5.0)
	if len(track.Cues) != 1 {
		t.Fatalf("cue count = %d, want 1", len(track.Cues))
	}
	c := track.Cues[0]
	if c.Start != 0 || c.End != 5.0 {
		t.Errorf("cue window = [%v, %v), want [0, 5.0)", c.Start, c.End)
	}
}

func TestBuildTrack_Invariants(t *testing.T) {
	sentences := Segment("First one. Second sentence is a fair bit longer! Third? Last sentence here.")
	const total = 30.0
	track := BuildTrack(sentences, total)

	if len(track.Cues) != len(sentences) {
		t.Fatalf("cue count = %d, want %d", len(track.Cues), len(sentences))
	}

	cursor := 0.0
	for i, c := range track.Cues {
		if c.Index != i+1 {
			t.Errorf("cue %d index = %d, want %d", i, c.Index, i+1)
		}
		if c.Start != cursor {
			t.Errorf("cue %d start = %v, want previous end %v", i, c.Start, cursor)
		}
		if c.End > total {
			t.Errorf("cue %d end = %v exceeds total %v", i, c.End, total)
		}
		if dur := c.End - c.Start; dur < math.Min(MinCueSeconds, total)-1e-9 {
			t.Errorf("cue %d duration = %v, below floor", i, dur)
		}
		cursor = c.End
	}
}

func TestBuildTrack_FloorKeepsShortCuesLegible(t *testing.T) {
	// Two tiny sentences against a long clip: proportional shares would be
	// far below the floor.
	track := BuildTrack(Segment("Hi. Ok."), 60.0)
	for _, c := range track.Cues {
		if c.End-c.Start < MinCueSeconds {
			t.Errorf("cue %d duration = %v, want >= %v", c.Index, c.End-c.Start, MinCueSeconds)
		}
	}
}

func TestBuildTrack_DegenerateManyShortSentences(t *testing.T) {
	// Many floored cues against very short audio: the cursor reaches the
	// clip end and later cues collapse to zero width there. Accepted
	// behavior, not an error.
	track := BuildTrack(Segment("A. B. C. D. E. F."), 3.0)

	if len(track.Cues) != 6 {
		t.Fatalf("cue count = %d, want 6", len(track.Cues))
	}
	last := track.Cues[5]
	if last.Start != 3.0 || last.End != 3.0 {
		t.Errorf("last cue = [%v, %v), want zero-width at clip end", last.Start, last.End)
	}
	for i := 1; i < len(track.Cues); i++ {
		if track.Cues[i].Start != track.Cues[i-1].End {
			t.Errorf("cue %d not contiguous with predecessor", i+1)
		}
	}
}

func TestBuildTrack_Deterministic(t *testing.T) {
	sentences := Segment("Same input. Same output! Every time?")
	a := BuildTrack(sentences, 12.5)
	b := BuildTrack(sentences, 12.5)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("BuildTrack is not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestBuildTrack_ZeroChars(t *testing.T) {
	// A fabricated zero-length sentence must not divide by zero.
	track := BuildTrack([]Sentence{{Text: "", CharLen: 0}}, 4.0)
	if len(track.Cues) != 1 {
		t.Fatalf("cue count = %d, want 1", len(track.Cues))
	}
}
