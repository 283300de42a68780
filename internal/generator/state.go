package generator

import (
	"podcastctl/internal/form"
	"podcastctl/internal/services/podcast"
)

// Phase is the session lifecycle stage.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseProcessing Phase = "processing"
	PhaseCompleted  Phase = "completed"
	PhaseFailed     Phase = "failed"
)

// State is a snapshot of the session. Treat it as read-only; pointer and map
// fields are shared between snapshots.
type State struct {
	Form    form.Form
	Catalog podcast.VoiceCatalog

	Phase     Phase
	Loading   bool
	PodcastID string
	Status    *podcast.Status
	// Submission is the raw response of the last successful submit.
	Submission *podcast.GenerateResponse
	Metadata   *podcast.Metadata
	Err        string

	session uint64
}

// Initial returns the state of a fresh session.
func Initial() State {
	return State{
		Form:    form.Default(),
		Catalog: podcast.VoiceCatalog{Speakers: map[string]podcast.Voice{}},
		Phase:   PhaseIdle,
	}
}

// CanSubmit reports whether a submission may start.
func (s State) CanSubmit() bool {
	return s.Form.CanSubmit(s.Loading)
}

// Session identifies the current session; it changes on every reset.
func (s State) Session() uint64 {
	return s.session
}

func phaseFor(state podcast.JobState) Phase {
	switch {
	case state == podcast.StateCompleted:
		return PhaseCompleted
	case state.Failed():
		return PhaseFailed
	default:
		return PhaseProcessing
	}
}
