package form

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"podcastctl/internal/services"
	"podcastctl/internal/services/podcast"
)

// SupportedLanguages are the script languages the service generates.
var SupportedLanguages = []language.Tag{language.Korean, language.English}

// ValidationError lists every problem found with a form.
type ValidationError struct {
	Problems []string
	// MissingSlots holds the slot labels without a voice, in label order.
	MissingSlots []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Problems, "; ")
}

// UserMessage returns the problems without the error prefix.
func (e *ValidationError) UserMessage() string {
	return strings.Join(e.Problems, "; ")
}

// Is matches services.ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == services.ErrValidation
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Validate checks the form before submission. Voice ids are checked against
// catalog only when the catalog is non-empty.
func (f Form) Validate(catalog podcast.VoiceCatalog) error {
	verr := &ValidationError{}
	switch {
	case !f.HasInput():
		verr.add("enter a topic, a URL or a PDF document")
	case f.ActiveValue() == "":
		verr.add("the %s input is empty", f.Mode)
	}
	if stray := f.StrayInputs(); len(stray) > 0 {
		names := make([]string, 0, len(stray))
		for _, m := range stray {
			names = append(names, string(m))
		}
		verr.add("only one input may be set; clear the %s input to submit as %s", strings.Join(names, " and "), f.Mode)
	}
	if f.NumSpeakers < MinSpeakers || f.NumSpeakers > MaxSpeakers {
		verr.add("speaker count must be between %d and %d (got %d)", MinSpeakers, MaxSpeakers, f.NumSpeakers)
	} else if missing := f.MissingVoices(); len(missing) > 0 {
		verr.MissingSlots = missing
		verr.add("select a voice for every speaker; missing: %s", strings.Join(missing, ", "))
	}
	if !catalog.Empty() {
		for _, label := range f.Labels() {
			id := strings.TrimSpace(f.Voices[label])
			if id != "" && !catalog.Has(id) {
				verr.add("unknown voice %q for %s", id, label)
			}
		}
	}
	if f.DurationMinutes < MinDurationMinutes || f.DurationMinutes > MaxDurationMinutes {
		verr.add("duration must be between %d and %d minutes (got %d)", MinDurationMinutes, MaxDurationMinutes, f.DurationMinutes)
	}
	if !f.Style.Valid() {
		verr.add("unknown style %q", f.Style)
	}
	if _, err := NormalizeLanguage(f.Language); err != nil {
		verr.add("%v", err)
	}
	if strings.TrimSpace(f.TTSEngine) == "" {
		verr.add("tts engine required")
	}
	if len(verr.Problems) == 0 {
		return nil
	}
	return verr
}

// NormalizeLanguage parses a BCP 47 tag and reduces it to one of the
// supported base languages ("en-US" becomes "en").
func NormalizeLanguage(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("language required")
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", fmt.Errorf("unsupported language %q", value)
	}
	base, _ := tag.Base()
	for _, supported := range SupportedLanguages {
		if supportedBase, _ := supported.Base(); supportedBase == base {
			return supportedBase.String(), nil
		}
	}
	return "", fmt.Errorf("unsupported language %q", value)
}
