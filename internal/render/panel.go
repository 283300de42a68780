package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"podcastctl/internal/playback"
	"podcastctl/internal/services/podcast"
)

// Theme is the color scheme for the speaker panel.
type Theme struct {
	Active lipgloss.Color
	Dim    lipgloss.Color
}

// DefaultTheme highlights the active speaker in blue.
var DefaultTheme = Theme{
	Active: lipgloss.Color("#60a5fa"),
	Dim:    lipgloss.Color("#6e7681"),
}

const (
	cardWidth  = 18
	quoteWidth = 60
)

// Panel renders speaker cards with the active speaker highlighted.
type Panel struct {
	active   lipgloss.Style
	inactive lipgloss.Style
	quote    lipgloss.Style
	header   lipgloss.Style
}

// NewPanel builds a panel whose color profile is detected from w; writers
// that are not terminals get plain borders without color.
func NewPanel(w io.Writer, theme Theme) *Panel {
	r := lipgloss.NewRenderer(w)
	return &Panel{
		active: r.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Active).
			Foreground(theme.Active).
			Bold(true).
			Width(cardWidth).
			Align(lipgloss.Center),
		inactive: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Dim).
			Foreground(theme.Dim).
			Width(cardWidth).
			Align(lipgloss.Center),
		quote: r.NewStyle().
			Italic(true).
			Width(quoteWidth).
			PaddingLeft(2),
		header: r.NewStyle().Foreground(theme.Dim),
	}
}

// Render draws one card per speaker. When ok is false no speaker is active.
func (p *Panel) Render(speakers []playback.Speaker, current podcast.Dialogue, ok bool, position string) string {
	if len(speakers) == 0 {
		return ""
	}
	cards := make([]string, 0, len(speakers))
	for _, sp := range speakers {
		isActive := ok && current.Speaker == sp.ID
		label := avatar(sp.Gender) + " " + sp.Name
		if isActive {
			cards = append(cards, p.active.Render("▶ "+label))
		} else {
			cards = append(cards, p.inactive.Render(label))
		}
	}
	parts := []string{}
	if position != "" {
		parts = append(parts, p.header.Render(position))
	}
	parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	if ok && strings.TrimSpace(current.Text) != "" {
		parts = append(parts, p.quote.Render("“"+strings.TrimSpace(current.Text)+"”"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func avatar(gender string) string {
	if strings.EqualFold(gender, "female") {
		return "👩"
	}
	return "👨"
}
