package generator

import (
	"testing"

	"podcastctl/internal/form"
	"podcastctl/internal/services/podcast"
)

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := Initial()
	after := Reduce(before, SubmitStarted{})
	if before.Loading || before.Phase != PhaseIdle {
		t.Fatalf("input state changed: %+v", before)
	}
	if !after.Loading || after.Phase != PhaseSubmitting {
		t.Fatalf("unexpected next state: %+v", after)
	}
}

func TestReduceStatusPhases(t *testing.T) {
	tests := []struct {
		state podcast.JobState
		want  Phase
	}{
		{podcast.StateProcessing, PhaseProcessing},
		{podcast.StateCompleted, PhaseCompleted},
		{podcast.StateFailed, PhaseFailed},
		{podcast.StateNotFound, PhaseFailed},
		{podcast.StateError, PhaseFailed},
	}
	for _, tt := range tests {
		s := Reduce(Initial(), SubmitSucceeded{Response: podcast.GenerateResponse{PodcastID: "id", Status: podcast.StateProcessing}})
		s = Reduce(s, StatusReceived{Status: podcast.Status{PodcastID: "id", State: tt.state}})
		if s.Phase != tt.want {
			t.Fatalf("%s: phase = %s, want %s", tt.state, s.Phase, tt.want)
		}
	}
}

func TestReduceIgnoresForeignStatus(t *testing.T) {
	s := Reduce(Initial(), SubmitSucceeded{Response: podcast.GenerateResponse{PodcastID: "mine", Status: podcast.StateProcessing}})
	next := Reduce(s, StatusReceived{Status: podcast.Status{PodcastID: "other", State: podcast.StateCompleted}})
	if next.Phase != PhaseProcessing {
		t.Fatalf("status for another job should be ignored, got %s", next.Phase)
	}
}

func TestReduceIgnoresEditsWhileLoading(t *testing.T) {
	s := Reduce(Initial(), SubmitStarted{})
	next := Reduce(s, FormEdited{Form: form.Default().WithTopic("changed")})
	if next.Form.Topic != "" {
		t.Fatal("form edits should be ignored while loading")
	}
}

func TestReduceResetBumpsSession(t *testing.T) {
	s := Reduce(Initial(), Reset{})
	stale := Reduce(s, SubmitSucceeded{Session: 0, Response: podcast.GenerateResponse{PodcastID: "x"}})
	if stale.PodcastID != "" {
		t.Fatal("result from a previous session should be dropped")
	}
	if s.Session() != 1 {
		t.Fatalf("expected session 1, got %d", s.Session())
	}
}
