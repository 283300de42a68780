package form

import (
	"fmt"
	"strings"
)

// LabelPrefix is the fixed speaker label prefix used on the wire.
const LabelPrefix = "화자"

// SpeakerLabels yields n slot labels: 화자A, 화자B, and so on.
func SpeakerLabels(n int) []string {
	if n <= 0 {
		return nil
	}
	labels := make([]string, n)
	for i := range n {
		labels[i] = LabelPrefix + string(rune('A'+i))
	}
	return labels
}

// NormalizeLabel accepts "화자A", "A" or "a" and returns the wire label.
func NormalizeLabel(value string) (string, bool) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, LabelPrefix)
	if len(value) != 1 {
		return "", false
	}
	letter := strings.ToUpper(value)[0]
	if letter < 'A' || letter > 'Z' {
		return "", false
	}
	return LabelPrefix + string(rune(letter)), true
}

// ParseVoiceAssignment parses a "SLOT=voice" pair such as "A=rachel".
func ParseVoiceAssignment(value string) (label, voiceID string, err error) {
	slot, voice, ok := strings.Cut(value, "=")
	if !ok {
		return "", "", fmt.Errorf("voice assignment %q: expected SLOT=VOICE", value)
	}
	label, ok = NormalizeLabel(slot)
	if !ok {
		return "", "", fmt.Errorf("voice assignment %q: unknown speaker slot %q", value, strings.TrimSpace(slot))
	}
	voiceID = strings.TrimSpace(voice)
	if voiceID == "" {
		return "", "", fmt.Errorf("voice assignment %q: voice required", value)
	}
	return label, voiceID, nil
}
