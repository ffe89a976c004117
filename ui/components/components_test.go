package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/x/ansi"

	"github.com/Rorical/RoriPDF/internal/models"
	"github.com/Rorical/RoriPDF/internal/render"
)

func TestRenderMessagesShowsMarkupLiterally(t *testing.T) {
	r, err := render.NewRenderer(false)
	if err != nil {
		t.Fatal(err)
	}
	entries := []models.Entry{
		{Message: models.Message{Type: models.User, Content: "<script>alert(1)</script>"}},
		{Message: models.Message{Type: models.Assistant, Content: "<b>bold</b>", Rich: true}},
	}

	out := ansi.Strip(RenderMessages(entries, r, 0, 120))
	for _, want := range []string{"You: <script>alert(1)</script>", "Assistant: <b>bold</b>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMessagesPlaceholder(t *testing.T) {
	r, _ := render.NewRenderer(false)
	entries := []models.Entry{{Placeholder: &models.Placeholder{ID: "loading-1"}}}

	out := ansi.Strip(RenderMessages(entries, r, 3, 80))
	if !strings.Contains(out, "Thinking...") {
		t.Errorf("placeholder not rendered:\n%s", out)
	}
}

func TestRenderMessagesEmpty(t *testing.T) {
	r, _ := render.NewRenderer(false)
	if out := ansi.Strip(RenderMessages(nil, r, 0, 80)); !strings.Contains(out, WelcomeText) {
		t.Errorf("welcome text missing:\n%s", out)
	}
}

func TestLoadingDots(t *testing.T) {
	for n, want := range []string{"", ".", "..", "...", ""} {
		if got := LoadingDots(n); got != want {
			t.Errorf("LoadingDots(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestRenderUploadPanel(t *testing.T) {
	state := models.Snapshot{
		SelectedFile: "paper.pdf",
		CanUpload:    true,
		Upload:       models.UploadStatus{Text: "Please select a valid PDF file.", Kind: models.StatusError},
	}

	out := ansi.Strip(RenderUploadPanel(state, spinner.New(), "", 100))
	for _, want := range []string{"Selected: paper.pdf", "ctrl+s to upload", "Please select a valid PDF file."} {
		if !strings.Contains(out, want) {
			t.Errorf("panel missing %q:\n%s", want, out)
		}
	}
}
