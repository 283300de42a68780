package render

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"podcastctl/internal/services/podcast"
)

// Kind selects one of the three status treatments.
type Kind int

const (
	KindProgress Kind = iota
	KindSuccess
	KindFailure
)

// RetrySuggestion is shown under every failure.
const RetrySuggestion = "Check your input and try again, or run `podcastctl generate` with a different source."

const shortIDLength = 8

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// KindFor maps a job state to its treatment. Unknown and backend-specific
// failure states render as failures; anything non-terminal is progress.
func KindFor(state podcast.JobState) Kind {
	switch {
	case state == podcast.StateCompleted:
		return KindSuccess
	case state.Failed():
		return KindFailure
	default:
		return KindProgress
	}
}

// ShortID abbreviates an id to its first eight characters.
func ShortID(id string) string {
	runes := []rune(id)
	if len(runes) <= shortIDLength {
		return id
	}
	return string(runes[:shortIDLength]) + "…"
}

// SpinnerFrame returns the spinner glyph for frame i.
func SpinnerFrame(i int) string {
	if i < 0 {
		i = -i
	}
	return spinnerFrames[i%len(spinnerFrames)]
}

// Status renders a status snapshot. frame selects the spinner glyph for the
// in-progress treatment.
func Status(st podcast.Status, frame int, colorize bool) []string {
	kind := KindFor(st.State)
	id := ShortID(st.PodcastID)
	message := strings.TrimSpace(st.Message)

	var lines []string
	switch kind {
	case KindSuccess:
		lines = append(lines, paint(colorize, text.FgGreen, fmt.Sprintf("✔ Podcast ready (%s)", id)))
		if message != "" {
			lines = append(lines, "  "+message)
		}
	case KindFailure:
		if message == "" {
			message = failureMessage(st.State)
		}
		lines = append(lines,
			paint(colorize, text.FgRed, fmt.Sprintf("✖ Generation failed (%s)", id)),
			"  "+message,
			paint(colorize, text.FgHiBlack, "  "+RetrySuggestion),
		)
	default:
		if message == "" {
			message = "Generating podcast…"
		}
		line := fmt.Sprintf("%s %s (%s)", SpinnerFrame(frame), message, id)
		if st.Progress > 0 {
			line += fmt.Sprintf(" %.0f%%", st.Progress)
		}
		lines = append(lines, paint(colorize, text.FgYellow, line))
	}
	return lines
}

// Error renders a session error.
func Error(message string, colorize bool) string {
	return paint(colorize, text.FgRed, "✖ "+strings.TrimSpace(message))
}

func failureMessage(state podcast.JobState) string {
	switch state {
	case podcast.StateNotFound:
		return "The podcast could not be found."
	case podcast.StateError:
		return "The podcast status could not be read."
	default:
		return "The podcast could not be generated."
	}
}

func paint(colorize bool, color text.Color, s string) string {
	if !colorize {
		return s
	}
	return text.Colors{color}.Sprint(s)
}
