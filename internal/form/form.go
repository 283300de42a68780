package form

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"strings"

	"podcastctl/internal/services/podcast"
)

// Mode is the active input mode.
type Mode string

const (
	ModeTopic    Mode = "topic"
	ModeURL      Mode = "url"
	ModeDocument Mode = "document"
)

// ParseMode maps a user-supplied name to a Mode. "pdf" is accepted as an
// alias for the document mode.
func ParseMode(value string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(ModeTopic):
		return ModeTopic, true
	case string(ModeURL):
		return ModeURL, true
	case string(ModeDocument), "pdf":
		return ModeDocument, true
	default:
		return "", false
	}
}

const (
	DefaultDurationMinutes = 2
	MinDurationMinutes     = 1
	MaxDurationMinutes     = 5
	DefaultLanguage        = "ko"
	DefaultTTSEngine       = "elevenlabs"
	DefaultSpeakers        = 2
	MinSpeakers            = 2
	MaxSpeakers            = 3
)

// ErrNotPDF is returned when a document selection is not a PDF.
var ErrNotPDF = errors.New("only PDF documents can be uploaded")

// Document is the selected upload.
type Document struct {
	Name string
	Path string
}

// Form is the request under composition. The zero value is not useful; start
// from Default.
type Form struct {
	Mode            Mode
	Topic           string
	URL             string
	Document        *Document
	DurationMinutes int
	Language        string
	TTSEngine       string
	NumSpeakers     int
	Voices          map[string]string
	Style           Style
}

// Default returns the form in its initial state.
func Default() Form {
	return Form{
		Mode:            ModeTopic,
		DurationMinutes: DefaultDurationMinutes,
		Language:        DefaultLanguage,
		TTSEngine:       DefaultTTSEngine,
		NumSpeakers:     DefaultSpeakers,
		Voices:          map[string]string{},
		Style:           DefaultStyle,
	}
}

// SwitchMode activates mode and clears the values held by the other modes.
func (f Form) SwitchMode(mode Mode) Form {
	f.Mode = mode
	switch mode {
	case ModeTopic:
		f.URL = ""
		f.Document = nil
	case ModeURL:
		f.Topic = ""
		f.Document = nil
	case ModeDocument:
		f.Topic = ""
		f.URL = ""
	}
	return f
}

func (f Form) WithTopic(topic string) Form {
	f.Topic = topic
	return f
}

func (f Form) WithURL(url string) Form {
	f.URL = url
	return f
}

// WithDocument selects a document. Names that do not end in ".pdf" (any case)
// are rejected with ErrNotPDF and the current selection is kept.
func (f Form) WithDocument(name, path string) (Form, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = filepath.Base(path)
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return f, fmt.Errorf("%w: %s", ErrNotPDF, name)
	}
	f.Document = &Document{Name: name, Path: path}
	return f, nil
}

func (f Form) ClearDocument() Form {
	f.Document = nil
	return f
}

func (f Form) WithDuration(minutes int) Form {
	f.DurationMinutes = minutes
	return f
}

func (f Form) WithLanguage(lang string) Form {
	f.Language = strings.TrimSpace(lang)
	return f
}

func (f Form) WithTTSEngine(engine string) Form {
	f.TTSEngine = strings.TrimSpace(engine)
	return f
}

func (f Form) WithStyle(style Style) Form {
	f.Style = style
	return f
}

// WithSpeakers sets the speaker count. A changed count clears every voice
// selection, since slot labels no longer line up.
func (f Form) WithSpeakers(n int) Form {
	if n != f.NumSpeakers {
		f.Voices = map[string]string{}
	}
	f.NumSpeakers = n
	return f
}

// WithVoice assigns voiceID to the slot label. An empty voiceID clears the slot.
func (f Form) WithVoice(label, voiceID string) Form {
	voices := maps.Clone(f.Voices)
	if voices == nil {
		voices = map[string]string{}
	}
	voiceID = strings.TrimSpace(voiceID)
	if voiceID == "" {
		delete(voices, label)
	} else {
		voices[label] = voiceID
	}
	f.Voices = voices
	return f
}

// Labels returns the slot labels implied by the speaker count.
func (f Form) Labels() []string {
	return SpeakerLabels(f.NumSpeakers)
}

// ActiveValue returns the required value of the active mode.
func (f Form) ActiveValue() string {
	switch f.Mode {
	case ModeURL:
		return strings.TrimSpace(f.URL)
	case ModeDocument:
		if f.Document == nil {
			return ""
		}
		return f.Document.Name
	default:
		return strings.TrimSpace(f.Topic)
	}
}

// HasInput reports whether any of the three inputs carries content.
func (f Form) HasInput() bool {
	return strings.TrimSpace(f.Topic) != "" || strings.TrimSpace(f.URL) != "" || f.Document != nil
}

// StrayInputs names the inactive modes that still carry content. A request
// is built from the active mode only, so these would be silently dropped.
func (f Form) StrayInputs() []Mode {
	var stray []Mode
	if f.Mode != ModeTopic && strings.TrimSpace(f.Topic) != "" {
		stray = append(stray, ModeTopic)
	}
	if f.Mode != ModeURL && strings.TrimSpace(f.URL) != "" {
		stray = append(stray, ModeURL)
	}
	if f.Mode != ModeDocument && f.Document != nil {
		stray = append(stray, ModeDocument)
	}
	return stray
}

// CanSubmit reports whether the submit action should be offered.
func (f Form) CanSubmit(loading bool) bool {
	return !loading && f.ActiveValue() != ""
}

// MissingVoices lists the slots without a voice, in label order.
func (f Form) MissingVoices() []string {
	var missing []string
	for _, label := range f.Labels() {
		if strings.TrimSpace(f.Voices[label]) == "" {
			missing = append(missing, label)
		}
	}
	return missing
}

// SelectedVoices returns the voice map restricted to the current slots.
func (f Form) SelectedVoices() map[string]string {
	out := make(map[string]string, f.NumSpeakers)
	for _, label := range f.Labels() {
		if id := strings.TrimSpace(f.Voices[label]); id != "" {
			out[label] = id
		}
	}
	return out
}

// Request builds the JSON submission for topic and URL modes. Only the
// active mode's value is sent.
func (f Form) Request() podcast.GenerateRequest {
	req := podcast.GenerateRequest{
		DurationMinutes: f.DurationMinutes,
		Language:        f.Language,
		TTSEngine:       f.TTSEngine,
		NumSpeakers:     f.NumSpeakers,
		CustomVoices:    f.SelectedVoices(),
		Style:           string(f.Style),
	}
	switch f.Mode {
	case ModeTopic:
		req.Topic = strings.TrimSpace(f.Topic)
	case ModeURL:
		req.URL = strings.TrimSpace(f.URL)
	}
	return req
}

// DocumentRequest builds the multipart submission around body.
func (f Form) DocumentRequest(body io.Reader) podcast.DocumentRequest {
	name := ""
	if f.Document != nil {
		name = f.Document.Name
	}
	return podcast.DocumentRequest{
		Filename:        name,
		Body:            body,
		DurationMinutes: f.DurationMinutes,
		Language:        f.Language,
		TTSEngine:       f.TTSEngine,
		NumSpeakers:     f.NumSpeakers,
		CustomVoices:    f.SelectedVoices(),
		Style:           string(f.Style),
	}
}
