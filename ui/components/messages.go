package components

import (
	"strings"

	"github.com/Rorical/RoriPDF/internal/models"
	"github.com/Rorical/RoriPDF/internal/render"
	"github.com/Rorical/RoriPDF/ui/styles"
)

const WelcomeText = "Upload a PDF document to start asking questions about it."

// RenderMessages draws the transcript. Placeholders show a dot animation
// driven by loadingDots.
func RenderMessages(entries []models.Entry, r *render.Renderer, loadingDots int, width int) string {
	if len(entries) == 0 {
		return styles.SystemStyle().Render(WelcomeText) + "\n"
	}

	var b strings.Builder

	userStyle := styles.UserStyle()
	assistantStyle := styles.AssistantStyle()
	loadingStyle := styles.LoadingStyle()
	if width > 8 {
		userStyle = userStyle.Width(width - 4)
		assistantStyle = assistantStyle.Width(width - 4)
	}

	for _, e := range entries {
		if e.IsLoading() {
			b.WriteString(loadingStyle.Render("Thinking"+LoadingDots(loadingDots)) + "\n\n")
			continue
		}

		content := r.Render(e.Message)
		switch e.Message.Type {
		case models.User:
			b.WriteString(userStyle.Render("You: "+content) + "\n\n")
		case models.Assistant:
			b.WriteString(assistantStyle.Render("Assistant: "+content) + "\n\n")
		}
	}

	return b.String()
}

// LoadingDots cycles through "", ".", "..", "..." so the animation always
// settles on three dots.
func LoadingDots(n int) string {
	return strings.Repeat(".", n%4)
}
