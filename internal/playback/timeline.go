package playback

import (
	"slices"
	"time"

	"podcastctl/internal/services/podcast"
)

// Speaker is one distinct voice appearing in the dialogue.
type Speaker struct {
	ID     string
	Name   string
	Gender string
}

// Timeline indexes dialogue metadata for playback lookups.
type Timeline struct {
	dialogues []podcast.Dialogue
	total     float64
}

// NewTimeline builds a timeline over meta. Dialogue order is preserved.
func NewTimeline(meta podcast.Metadata) Timeline {
	return Timeline{
		dialogues: slices.Clone(meta.Dialogues),
		total:     meta.TotalDuration,
	}
}

// At returns the first dialogue whose [start, end) interval contains the
// offset t, in seconds. The end offset itself is not contained.
func (tl Timeline) At(t float64) (podcast.Dialogue, bool) {
	for _, d := range tl.dialogues {
		if t >= d.StartTime && t < d.EndTime {
			return d, true
		}
	}
	return podcast.Dialogue{}, false
}

// AtPosition is At for a playback position.
func (tl Timeline) AtPosition(pos time.Duration) (podcast.Dialogue, bool) {
	return tl.At(pos.Seconds())
}

// Speakers returns the distinct speakers in order of first appearance. The
// speaker id stands in for a missing name and "unknown" for a missing gender.
func (tl Timeline) Speakers() []Speaker {
	seen := make(map[string]struct{}, 3)
	var out []Speaker
	for _, d := range tl.dialogues {
		if _, ok := seen[d.Speaker]; ok {
			continue
		}
		seen[d.Speaker] = struct{}{}
		sp := Speaker{ID: d.Speaker, Name: d.SpeakerName, Gender: d.Gender}
		if sp.Name == "" {
			sp.Name = sp.ID
		}
		if sp.Gender == "" {
			sp.Gender = "unknown"
		}
		out = append(out, sp)
	}
	return out
}

// Duration returns the reported total duration, or the last end offset when
// the total is missing.
func (tl Timeline) Duration() time.Duration {
	total := tl.total
	for _, d := range tl.dialogues {
		total = max(total, d.EndTime)
	}
	return time.Duration(total * float64(time.Second))
}

// Len returns the number of dialogues.
func (tl Timeline) Len() int {
	return len(tl.dialogues)
}
