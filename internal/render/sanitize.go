// Package render turns transcript content into safe terminal and HTML output.
package render

import (
	"html"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize removes terminal escape sequences and control characters so text
// from the user or the service is displayed literally. Newlines and tabs are kept.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = ansi.Strip(s)

	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// EscapeHTML escapes text for insertion into an HTML document.
func EscapeHTML(s string) string {
	return html.EscapeString(Sanitize(s))
}
