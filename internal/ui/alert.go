package ui

import "strings"

// RenderError renders a failure message in the error box. dismissible adds
// the dismiss hint.
func RenderError(message string, dismissible bool) string {
	var b strings.Builder
	b.WriteString(Error.Bold(true).Render("! Error"))
	b.WriteString("\n")
	b.WriteString(message)
	if dismissible {
		b.WriteString("\n\n")
		b.WriteString(Muted.Render("× dismiss to try again"))
	}
	return ErrorBox.Render(b.String())
}
