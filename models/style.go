package models

// Style selects the summarization prompt template.
type Style string

const (
	StyleDefault   Style = "default"
	StyleAcademic  Style = "academic"
	StyleTechnical Style = "technical"
	StyleBusiness  Style = "business"
)

// ParseStyle maps a request value to a Style. Handlers reject unknown
// style values before calling this, so in practice the StyleDefault
// fallback applies to the empty string (style omitted from the
// request).
func ParseStyle(s string) Style {
	switch Style(s) {
	case StyleAcademic, StyleTechnical, StyleBusiness:
		return Style(s)
	default:
		return StyleDefault
	}
}
