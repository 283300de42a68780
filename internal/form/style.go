package form

import "strings"

// Style is the conversational register of the script.
type Style string

const (
	StyleCasual       Style = "casual"
	StyleProfessional Style = "professional"
	StyleEducational  Style = "educational"
	StyleStorytelling Style = "storytelling"

	DefaultStyle = StyleCasual
)

var styleDescriptions = map[Style]string{
	StyleCasual:       "friendly conversation",
	StyleProfessional: "professional",
	StyleEducational:  "educational",
	StyleStorytelling: "storytelling",
}

// Styles lists the supported styles in presentation order.
func Styles() []Style {
	return []Style{StyleCasual, StyleProfessional, StyleEducational, StyleStorytelling}
}

// ParseStyle maps a user-supplied name to a Style.
func ParseStyle(value string) (Style, bool) {
	style := Style(strings.ToLower(strings.TrimSpace(value)))
	_, ok := styleDescriptions[style]
	return style, ok
}

// Description returns a short human label for the style.
func (s Style) Description() string {
	return styleDescriptions[s]
}

func (s Style) Valid() bool {
	_, ok := styleDescriptions[s]
	return ok
}
