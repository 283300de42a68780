package podcast

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

// JobState is the lifecycle state reported for a generation job.
type JobState string

const (
	StateProcessing JobState = "processing"
	StateCompleted  JobState = "completed"
	StateFailed     JobState = "failed"
	// StateNotFound and StateError are reported by the status endpoint when the
	// job is unknown or its status file could not be read.
	StateNotFound JobState = "not_found"
	StateError    JobState = "error"
)

// Terminal reports whether no further transitions are expected.
func (s JobState) Terminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateNotFound, StateError:
		return true
	default:
		return false
	}
}

// Failed reports whether the state should be presented as a failure.
func (s JobState) Failed() bool {
	return s == StateFailed || s == StateNotFound || s == StateError
}

// GenerateRequest is the JSON body for topic and URL submissions.
type GenerateRequest struct {
	Topic           string            `json:"topic,omitempty"`
	URL             string            `json:"url,omitempty"`
	DurationMinutes int               `json:"duration_minutes"`
	Language        string            `json:"language"`
	TTSEngine       string            `json:"tts_engine"`
	NumSpeakers     int               `json:"num_speakers"`
	CustomVoices    map[string]string `json:"custom_voices"`
	Style           string            `json:"style"`
}

// DocumentRequest carries a PDF submission. Body is streamed into the
// multipart upload and is not closed by the client.
type DocumentRequest struct {
	Filename        string
	Body            io.Reader
	DurationMinutes int
	Language        string
	TTSEngine       string
	NumSpeakers     int
	CustomVoices    map[string]string
	Style           string
}

// GenerateResponse is returned by both submission endpoints.
type GenerateResponse struct {
	PodcastID     string   `json:"podcast_id"`
	Status        JobState `json:"status"`
	Message       string   `json:"message"`
	ScriptPath    string   `json:"script_path,omitempty"`
	AudioPath     string   `json:"audio_path,omitempty"`
	Title         string   `json:"title,omitempty"`
	DialogueCount int      `json:"dialogue_count,omitempty"`
	SpeakersUsed  []string `json:"speakers_used,omitempty"`
}

// Snapshot converts the submission response into the status it implies.
func (r GenerateResponse) Snapshot() Status {
	return Status{
		PodcastID:  r.PodcastID,
		State:      r.Status,
		Message:    r.Message,
		ScriptPath: r.ScriptPath,
		AudioPath:  r.AudioPath,
	}
}

// Status is a job status snapshot.
type Status struct {
	PodcastID  string    `json:"podcast_id" yaml:"podcast_id"`
	State      JobState  `json:"status" yaml:"status"`
	Message    string    `json:"message,omitempty" yaml:"message,omitempty"`
	ScriptPath string    `json:"script_path,omitempty" yaml:"script_path,omitempty"`
	AudioPath  string    `json:"audio_path,omitempty" yaml:"audio_path,omitempty"`
	Progress   float64   `json:"progress,omitempty" yaml:"progress,omitempty"`
	CreatedAt  Timestamp `json:"created_at,omitzero" yaml:"created_at,omitempty"`
	UpdatedAt  Timestamp `json:"updated_at,omitzero" yaml:"updated_at,omitempty"`
}

// ListResponse is returned by the list endpoint.
type ListResponse struct {
	Podcasts []Status `json:"podcasts"`
}

// Voice describes one selectable synthesized voice.
type Voice struct {
	ProviderID  string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Gender      string `json:"gender" yaml:"gender"`
	Description string `json:"description" yaml:"description"`
	SuitableFor string `json:"suitable_for,omitempty" yaml:"suitable_for,omitempty"`
}

// VoiceCatalog maps voice identifiers (the keys used in custom_voices) to voices.
type VoiceCatalog struct {
	Speakers    map[string]Voice `json:"speakers" yaml:"speakers"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
}

// IDs returns the voice identifiers in a stable order.
func (c VoiceCatalog) IDs() []string {
	ids := make([]string, 0, len(c.Speakers))
	for id := range c.Speakers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Has reports whether id names a catalog voice.
func (c VoiceCatalog) Has(id string) bool {
	_, ok := c.Speakers[id]
	return ok
}

// Empty reports whether the catalog offers no voices.
func (c VoiceCatalog) Empty() bool {
	return len(c.Speakers) == 0
}

// Dialogue is one timed utterance in the generated audio. Offsets are seconds.
type Dialogue struct {
	Index       int     `json:"index" yaml:"index"`
	Speaker     string  `json:"speaker" yaml:"speaker"`
	SpeakerName string  `json:"speaker_name" yaml:"speaker_name"`
	Gender      string  `json:"gender" yaml:"gender"`
	Text        string  `json:"text" yaml:"text"`
	StartTime   float64 `json:"start_time" yaml:"start_time"`
	EndTime     float64 `json:"end_time" yaml:"end_time"`
	Duration    float64 `json:"duration" yaml:"duration"`
}

// Metadata is the per-dialogue timing document for a completed job.
type Metadata struct {
	PodcastID     string     `json:"podcast_id" yaml:"podcast_id"`
	TotalDuration float64    `json:"total_duration" yaml:"total_duration"`
	DialogueCount int        `json:"dialogue_count" yaml:"dialogue_count"`
	Dialogues     []Dialogue `json:"dialogues" yaml:"dialogues"`
}

// Timestamp accepts either Unix seconds (integer or fractional) or an RFC 3339
// string. The service reports file times as float seconds.
type Timestamp time.Time

// Time returns the underlying time.Time value.
func (ts Timestamp) Time() time.Time {
	return time.Time(ts)
}

// IsZero reports whether ts represents the zero time instant.
func (ts Timestamp) IsZero() bool {
	return time.Time(ts).IsZero()
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" || raw == `""` {
		*ts = Timestamp{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if seconds, err := strconv.ParseFloat(s, 64); err == nil {
			*ts = fromSeconds(seconds)
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return err
		}
		*ts = Timestamp(parsed)
		return nil
	}
	var seconds float64
	if err := json.Unmarshal(b, &seconds); err != nil {
		return err
	}
	*ts = fromSeconds(seconds)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(time.Time(ts).UTC().Format(time.RFC3339))
}

// MarshalYAML renders the timestamp as RFC 3339.
func (ts Timestamp) MarshalYAML() (any, error) {
	if ts.IsZero() {
		return nil, nil
	}
	return time.Time(ts).UTC().Format(time.RFC3339), nil
}

func fromSeconds(seconds float64) Timestamp {
	whole := int64(seconds)
	nanos := int64((seconds - float64(whole)) * float64(time.Second))
	return Timestamp(time.Unix(whole, nanos))
}
