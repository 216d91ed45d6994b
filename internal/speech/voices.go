package speech

import "errors"

var errMissingDefaultVoice = errors.New("voice table does not contain the default selector")

// DefaultVoiceSelector is the UI-level selector unknown values resolve to.
const DefaultVoiceSelector = "narrator"

// voiceTable maps UI-level voice selectors to provider voice identifiers.
// The table is a fixed, exhaustively enumerated literal; unknown selectors
// resolve to the default rather than failing.
var voiceTable = map[string]string{
	"narrator": "en-US-Standard-D",
	"calm":     "en-US-Standard-C",
	"upbeat":   "en-US-Standard-F",
	"deep":     "en-US-Standard-B",
	"british":  "en-GB-Standard-A",
}

// ResolveVoice maps a UI selector to the provider voice identifier.
func ResolveVoice(selector string) string {
	if id, ok := voiceTable[selector]; ok {
		return id
	}
	return voiceTable[DefaultVoiceSelector]
}

// Selectors lists the supported UI-level voice selectors.
func Selectors() []string {
	out := make([]string, 0, len(voiceTable))
	for s := range voiceTable {
		out = append(out, s)
	}
	return out
}

// ValidateVoiceTable confirms the default selector is present in the table.
// Called once at startup so a bad edit fails fast instead of at render time.
func ValidateVoiceTable() error {
	if _, ok := voiceTable[DefaultVoiceSelector]; !ok {
		return errMissingDefaultVoice
	}
	return nil
}
