package render

import (
	"log"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Rorical/RoriPDF/internal/models"
)

// Renderer formats message content for the terminal.
type Renderer struct {
	md *glamour.TermRenderer
}

// NewRenderer returns a plain renderer, or a markdown one when markdown is set.
func NewRenderer(markdown bool) (*Renderer, error) {
	if !markdown {
		return &Renderer{}, nil
	}

	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{md: md}, nil
}

// Render sanitizes the content; rich messages additionally get markdown
// formatting, applied to HTML-escaped text so embedded markup stays literal.
func (r *Renderer) Render(msg models.Message) string {
	content := Sanitize(msg.Content)
	if !msg.Rich || r == nil || r.md == nil {
		return content
	}

	out, err := r.md.Render(EscapeHTML(msg.Content))
	if err != nil {
		log.Printf("markdown render failed, falling back to plain text: %v", err)
		return content
	}
	return strings.Trim(out, "\n")
}
