package captions

// MinCueSeconds is the legibility floor for a single caption. Short sentences
// get at least this much screen time even when their character share would
// allocate less. With many short sentences and little audio the cumulative
// floor can exceed the total duration; later cues then collapse to zero-width
// windows at the clip end, which is accepted rather than treated as an error.
// Changing this value changes every generated timeline; see the package tests
// before touching it.
const MinCueSeconds = 1.2

// Cue is one caption's text plus its display window in seconds.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// Track is the full ordered cue sequence for one narration, together with the
// audio duration it was built against.
type Track struct {
	Cues          []Cue
	TotalDuration float64
}

// BuildTrack allocates each sentence a window proportional to its character
// share of the total, floored at MinCueSeconds and clamped to the audio
// duration. Cues are contiguous: each cue starts where the previous one
// ended. Pure and deterministic.
func BuildTrack(sentences []Sentence, totalDuration float64) Track {
	totalChars := 0
	for _, s := range sentences {
		totalChars += s.CharLen
	}
	if totalChars < 1 {
		totalChars = 1
	}

	cues := make([]Cue, 0, len(sentences))
	cursor := 0.0
	for i, s := range sentences {
		rawShare := totalDuration * float64(s.CharLen) / float64(totalChars)
		if rawShare < MinCueSeconds {
			rawShare = MinCueSeconds
		}
		end := cursor + rawShare
		if end > totalDuration {
			end = totalDuration
		}
		cues = append(cues, Cue{
			Index: i + 1,
			Start: cursor,
			End:   end,
			Text:  s.Text,
		})
		cursor = end
	}

	// Proportional shares sum to the total duration exactly; absorb the
	// floating-point residue so the final cue closes at the clip end.
	if n := len(cues); n > 0 && totalDuration-cues[n-1].End < 1e-6 {
		cues[n-1].End = totalDuration
	}

	return Track{Cues: cues, TotalDuration: totalDuration}
}
