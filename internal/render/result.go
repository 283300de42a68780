package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"podcastctl/internal/playback"
	"podcastctl/internal/services/podcast"
)

// Links are the download addresses of a completed job.
type Links struct {
	Script string
	Audio  string
}

// Result renders the download links and, when metadata is available, a
// speaker summary.
func Result(links Links, submission *podcast.GenerateResponse, meta *podcast.Metadata, colorize bool) []string {
	var lines []string
	if submission != nil && strings.TrimSpace(submission.Title) != "" {
		lines = append(lines, paint(colorize, text.Bold, submission.Title))
	}
	if links.Script != "" {
		lines = append(lines, "Script: "+links.Script)
	}
	if links.Audio != "" {
		lines = append(lines, "Audio:  "+links.Audio)
	}
	if meta == nil {
		return lines
	}
	tl := playback.NewTimeline(*meta)
	if tl.Len() == 0 {
		return lines
	}
	lines = append(lines,
		fmt.Sprintf("Length: %s, %d dialogues", FormatOffset(tl.Duration()), tl.Len()),
		"Speakers: "+SpeakerSummary(tl.Speakers()),
	)
	return lines
}

// SpeakerSummary lists speakers as "Name (gender)".
func SpeakerSummary(speakers []playback.Speaker) string {
	parts := make([]string, 0, len(speakers))
	for _, sp := range speakers {
		parts = append(parts, fmt.Sprintf("%s (%s)", sp.Name, sp.Gender))
	}
	return strings.Join(parts, ", ")
}

// FormatOffset renders a playback offset as m:ss.
func FormatOffset(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// LanguageName returns the English name of a language code together with its
// own name, e.g. "Korean (한국어)". Unparseable codes are returned unchanged.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	english := display.English.Languages().Name(tag)
	self := display.Self.Name(tag)
	switch {
	case english == "":
		return code
	case self == "" || self == english:
		return english
	default:
		return fmt.Sprintf("%s (%s)", english, self)
	}
}
