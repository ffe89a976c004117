package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/Rorical/RoriPDF/internal/models"
	"github.com/Rorical/RoriPDF/ui/styles"
)

// RenderUploadPanel draws the drop zone: the selected file, whether it can be
// uploaded, and the upload status line.
func RenderUploadPanel(state models.Snapshot, sp spinner.Model, dropDir string, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle().Render("RoriPDF"))
	b.WriteString("  ")
	switch {
	case state.DropActive:
		b.WriteString("Release to select the file")
	case state.SelectedFile != "":
		b.WriteString("Selected: " + state.SelectedFile)
		if state.CanUpload {
			b.WriteString(styles.MutedStyle().Render("  (ctrl+s to upload)"))
		}
	default:
		hint := "Drop a PDF here, paste its path, or press ctrl+o"
		if dropDir != "" {
			hint += " (drop folder: " + dropDir + ")"
		}
		b.WriteString(styles.MutedStyle().Render(hint))
	}

	b.WriteString("\n")
	if state.Upload.Text != "" {
		line := state.Upload.Text
		if state.Uploading {
			line = sp.View() + " " + line
		}
		b.WriteString(styles.UploadStatusStyle(state.Upload.Kind).Render(line))
	}

	return styles.DropZoneStyle(state.DropActive, width).Render(b.String())
}
