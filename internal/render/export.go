package render

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/Rorical/RoriPDF/internal/models"
)

var transcriptTemplate = template.Must(template.New("transcript").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
.message { padding: .5rem 1rem; margin: .5rem 0; border-left: 3px solid; white-space: pre-wrap; }
.message-user { border-color: #0af; }
.message-assistant { border-color: #fa0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Exported {{.Exported}}</p>
{{range .Messages}}<div class="message message-{{.Role}}"><div class="message-content">{{.Content}}</div></div>
{{end}}</body>
</html>
`))

type htmlMessage struct {
	Role    string
	Content string
}

// WriteTranscriptHTML writes the messages of entries as an HTML page.
// Loading placeholders carry no content and are skipped. html/template
// escapes every message, so markup in the content is shown literally.
func WriteTranscriptHTML(w io.Writer, title string, entries []models.Entry, exported time.Time) error {
	msgs := make([]htmlMessage, 0, len(entries))
	for _, e := range entries {
		if e.IsLoading() {
			continue
		}
		msgs = append(msgs, htmlMessage{
			Role:    e.Message.Type.String(),
			Content: Sanitize(e.Message.Content),
		})
	}

	return transcriptTemplate.Execute(w, struct {
		Title    string
		Exported string
		Messages []htmlMessage
	}{
		Title:    title,
		Exported: exported.Format(time.RFC1123),
		Messages: msgs,
	})
}

// ExportTranscript writes the transcript to path, replacing any existing file.
func ExportTranscript(path, title string, entries []models.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteTranscriptHTML(f, title, entries, time.Now()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return f.Close()
}
