package generator

import (
	"podcastctl/internal/form"
	"podcastctl/internal/services/podcast"
)

// Action is a state transition request. The set is closed.
type Action interface {
	action()
}

// FormEdited replaces the form.
type FormEdited struct{ Form form.Form }

// VoicesLoaded installs the voice catalog.
type VoicesLoaded struct{ Catalog podcast.VoiceCatalog }

// VoicesFailed records a catalog load failure. The catalog stays empty and no
// session error is shown.
type VoicesFailed struct{ Err error }

// ValidationFailed surfaces a client-side validation message.
type ValidationFailed struct{ Message string }

// SubmitStarted marks a submission in flight.
type SubmitStarted struct{}

// SubmitSucceeded carries the submission response.
type SubmitSucceeded struct {
	Session  uint64
	Response podcast.GenerateResponse
}

// SubmitFailed carries the user-facing failure message.
type SubmitFailed struct {
	Session uint64
	Message string
}

// StatusReceived carries a polled status snapshot.
type StatusReceived struct {
	Session uint64
	Status  podcast.Status
}

// MetadataLoaded carries dialogue metadata for the completed job.
type MetadataLoaded struct {
	Session  uint64
	Metadata podcast.Metadata
}

// Reset returns the session to its defaults, keeping the voice catalog.
type Reset struct{}

func (FormEdited) action()       {}
func (VoicesLoaded) action()     {}
func (VoicesFailed) action()     {}
func (ValidationFailed) action() {}
func (SubmitStarted) action()    {}
func (SubmitSucceeded) action()  {}
func (SubmitFailed) action()     {}
func (StatusReceived) action()   {}
func (MetadataLoaded) action()   {}
func (Reset) action()            {}

// Reduce returns the state that results from applying a to s. Results that
// belong to a session ended by Reset are dropped.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case FormEdited:
		if s.Loading {
			return s
		}
		s.Form = a.Form
	case VoicesLoaded:
		s.Catalog = a.Catalog
	case VoicesFailed:
		s.Catalog = podcast.VoiceCatalog{Speakers: map[string]podcast.Voice{}}
	case ValidationFailed:
		s.Err = a.Message
	case SubmitStarted:
		s.Phase = PhaseSubmitting
		s.Loading = true
		s.Err = ""
		s.PodcastID = ""
		s.Status = nil
		s.Submission = nil
		s.Metadata = nil
	case SubmitSucceeded:
		if a.Session != s.session {
			return s
		}
		resp := a.Response
		status := resp.Snapshot()
		s.Loading = false
		s.PodcastID = resp.PodcastID
		s.Status = &status
		s.Submission = &resp
		s.Phase = phaseFor(status.State)
	case SubmitFailed:
		if a.Session != s.session {
			return s
		}
		s.Loading = false
		s.Phase = PhaseFailed
		s.Err = a.Message
	case StatusReceived:
		if a.Session != s.session || a.Status.PodcastID != s.PodcastID {
			return s
		}
		status := a.Status
		s.Status = &status
		s.Phase = phaseFor(status.State)
	case MetadataLoaded:
		if a.Session != s.session {
			return s
		}
		meta := a.Metadata
		s.Metadata = &meta
	case Reset:
		catalog := s.Catalog
		session := s.session + 1
		s = Initial()
		s.Catalog = catalog
		s.session = session
	}
	return s
}
