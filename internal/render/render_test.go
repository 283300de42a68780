package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"

	"podcastctl/internal/playback"
	"podcastctl/internal/services/podcast"
)

func TestShortID(t *testing.T) {
	if got := ShortID("abcdefgh1234"); got != "abcdefgh…" {
		t.Fatalf("unexpected short id %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Fatalf("short ids should be unchanged, got %q", got)
	}
}

func TestKindFor(t *testing.T) {
	tests := map[podcast.JobState]Kind{
		podcast.StateProcessing: KindProgress,
		podcast.StateCompleted:  KindSuccess,
		podcast.StateFailed:     KindFailure,
		podcast.StateNotFound:   KindFailure,
		podcast.StateError:      KindFailure,
		"queued":                KindProgress,
	}
	for state, want := range tests {
		if got := KindFor(state); got != want {
			t.Fatalf("KindFor(%q) = %v, want %v", state, got, want)
		}
	}
}

func TestStatusTreatments(t *testing.T) {
	progress := Status(podcast.Status{PodcastID: "abcdefgh1234", State: podcast.StateProcessing, Progress: 42}, 0, false)
	if len(progress) != 1 || !strings.HasPrefix(progress[0], SpinnerFrame(0)) || !strings.Contains(progress[0], "abcdefgh…") || !strings.Contains(progress[0], "42%") {
		t.Fatalf("unexpected progress rendering %q", progress)
	}

	done := Status(podcast.Status{PodcastID: "id", State: podcast.StateCompleted, Message: "done"}, 0, false)
	if !strings.Contains(done[0], "Podcast ready") {
		t.Fatalf("unexpected success rendering %q", done)
	}

	failed := Status(podcast.Status{PodcastID: "id", State: podcast.StateNotFound}, 0, false)
	joined := strings.Join(failed, "\n")
	if !strings.Contains(joined, "Generation failed") || !strings.Contains(joined, RetrySuggestion) || !strings.Contains(joined, "could not be found") {
		t.Fatalf("unexpected failure rendering %q", joined)
	}
}

func TestStatusColorize(t *testing.T) {
	text.EnableColors()
	plain := Status(podcast.Status{PodcastID: "id", State: podcast.StateCompleted}, 0, false)[0]
	colored := Status(podcast.Status{PodcastID: "id", State: podcast.StateCompleted}, 0, true)[0]
	if strings.Contains(plain, "\x1b[") {
		t.Fatalf("plain output must not contain escapes: %q", plain)
	}
	if !strings.Contains(colored, "\x1b[") {
		t.Fatalf("colored output should contain escapes: %q", colored)
	}
}

func TestResult(t *testing.T) {
	meta := &podcast.Metadata{
		TotalDuration: 92,
		Dialogues: []podcast.Dialogue{
			{Speaker: "화자A", SpeakerName: "Rachel", Gender: "female", StartTime: 0, EndTime: 5},
			{Speaker: "화자B", SpeakerName: "Adam", Gender: "male", StartTime: 5, EndTime: 9},
		},
	}
	lines := Result(Links{Script: "http://x/script", Audio: "http://x/audio"}, &podcast.GenerateResponse{Title: "Tea"}, meta, false)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Tea", "Script: http://x/script", "Audio:  http://x/audio", "1:32", "2 dialogues", "Rachel (female), Adam (male)"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in %q", want, joined)
		}
	}
	if lines := Result(Links{Audio: "a"}, nil, nil, false); len(lines) != 1 {
		t.Fatalf("without metadata only links render, got %v", lines)
	}
}

func TestFormatOffset(t *testing.T) {
	if got := FormatOffset(65400 * time.Millisecond); got != "1:05" {
		t.Fatalf("unexpected offset %q", got)
	}
}

func TestLanguageName(t *testing.T) {
	if got := LanguageName("ko"); !strings.HasPrefix(got, "Korean") {
		t.Fatalf("unexpected name %q", got)
	}
	if got := LanguageName("en"); got != "English" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := LanguageName("!!"); got != "!!" {
		t.Fatalf("unparseable code should pass through, got %q", got)
	}
}

func TestPanelHighlightsActiveSpeaker(t *testing.T) {
	var buf bytes.Buffer
	panel := NewPanel(&buf, DefaultTheme)
	speakers := []playback.Speaker{
		{ID: "A", Name: "Rachel", Gender: "female"},
		{ID: "B", Name: "Adam", Gender: "male"},
	}
	out := panel.Render(speakers, podcast.Dialogue{Speaker: "B", Text: "hello there"}, true, "0:05")
	if !strings.Contains(out, "▶ ") || !strings.Contains(out, "Adam") || !strings.Contains(out, "hello there") {
		t.Fatalf("expected active speaker and utterance, got:\n%s", out)
	}
	if strings.Index(out, "▶") < strings.Index(out, "Rachel") {
		t.Fatalf("highlight should mark the second card, got:\n%s", out)
	}

	idle := panel.Render(speakers, podcast.Dialogue{}, false, "")
	if strings.Contains(idle, "▶") {
		t.Fatalf("no speaker should be highlighted, got:\n%s", idle)
	}
	if panel.Render(nil, podcast.Dialogue{}, false, "") != "" {
		t.Fatal("empty speaker list should render nothing")
	}
}
