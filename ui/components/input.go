package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"

	"github.com/Rorical/RoriPDF/ui/styles"
)

// NewInput returns the question box. Enter is left to the caller to submit;
// newline gets inserted by the given binding only.
func NewInput(newline key.Binding) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Ask a question about your document..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline = newline
	ta.Focus()
	return ta
}

func RenderInput(input textarea.Model, width int) string {
	inputStyle := styles.InputStyle(width)
	return inputStyle.Render(input.View())
}
