package update

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriPDF/internal/eventbus"
	"github.com/Rorical/RoriPDF/internal/models"
	"github.com/Rorical/RoriPDF/internal/render"
	"github.com/Rorical/RoriPDF/ui/components"
)

func newTestModel(t *testing.T) (*models.AppModel, *eventbus.EventBus, *render.Renderer) {
	t.Helper()
	eb := eventbus.NewEventBus()
	t.Cleanup(eb.Close)

	r, err := render.NewRenderer(false)
	if err != nil {
		t.Fatal(err)
	}

	m := &models.AppModel{
		Status:   "Ready",
		Input:    components.NewInput(Keys.Newline),
		Viewport: viewport.New(80, 20),
		Spinner:  spinner.New(),
		Picker:   filepicker.New(),
	}
	return m, eb, r
}

func pendingEvent(eb *eventbus.EventBus) (eventbus.UIEvent, bool) {
	select {
	case ev := <-eb.UIToCore():
		return ev, true
	default:
		return nil, false
	}
}

func TestEnterSubmitsAndClears(t *testing.T) {
	m, eb, r := newTestModel(t)
	m.Input.SetValue("hello")

	HandleUpdateWithEventBus(m, tea.KeyMsg{Type: tea.KeyEnter}, eb, r)

	ev, ok := pendingEvent(eb)
	if !ok {
		t.Fatal("no event sent")
	}
	if q, ok := ev.(eventbus.SubmitQuestionEvent); !ok || q.Text != "hello" {
		t.Errorf("event = %#v", ev)
	}
	if m.Input.Value() != "" {
		t.Errorf("input = %q, want empty", m.Input.Value())
	}
}

func TestEnterOnBlankInputDoesNothing(t *testing.T) {
	m, eb, r := newTestModel(t)
	m.Input.SetValue("   ")

	HandleUpdateWithEventBus(m, tea.KeyMsg{Type: tea.KeyEnter}, eb, r)

	if ev, ok := pendingEvent(eb); ok {
		t.Errorf("unexpected event %#v", ev)
	}
}

func TestNewlineBindingUsesReportableKeys(t *testing.T) {
	want := map[string]bool{"alt+enter": true, "ctrl+j": true}
	for _, k := range Keys.Newline.Keys() {
		if !want[k] {
			t.Errorf("newline binding has key %q, which bubbletea never reports", k)
		}
	}
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEnter, Alt: true}, {Type: tea.KeyCtrlJ}} {
		if !key.Matches(msg, Keys.Newline) {
			t.Errorf("%q does not match the newline binding", msg.String())
		}
	}
}

func TestNewlineKeysDoNotSubmit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"alt+enter", tea.KeyMsg{Type: tea.KeyEnter, Alt: true}},
		{"ctrl+j", tea.KeyMsg{Type: tea.KeyCtrlJ}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, eb, r := newTestModel(t)
			m.Input.SetValue("hello")

			HandleUpdateWithEventBus(m, tt.msg, eb, r)

			if got := m.Input.Value(); got != "hello\n" {
				t.Errorf("input = %q, want %q", got, "hello\n")
			}
			if ev, ok := pendingEvent(eb); ok {
				t.Errorf("unexpected event %#v", ev)
			}
		})
	}
}

func TestPastedPathSelectsFile(t *testing.T) {
	m, eb, r := newTestModel(t)
	path := filepath.Join(t.TempDir(), "paper.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}
	m.Mode = models.ModePicker

	HandleUpdateWithEventBus(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("'" + path + "'"), Paste: true}, eb, r)

	ev, ok := pendingEvent(eb)
	if !ok {
		t.Fatal("no event sent")
	}
	if sel, ok := ev.(eventbus.SelectFileEvent); !ok || sel.Path != path {
		t.Errorf("event = %#v", ev)
	}
	if m.Input.Value() != "" {
		t.Errorf("path leaked into input: %q", m.Input.Value())
	}
	if m.Mode != models.ModeChat {
		t.Error("drop did not close the picker")
	}
}

func TestPastedTextGoesToInput(t *testing.T) {
	m, eb, r := newTestModel(t)

	HandleUpdateWithEventBus(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("what is section 2 about?"), Paste: true}, eb, r)

	if got := m.Input.Value(); got != "what is section 2 about?" {
		t.Errorf("input = %q", got)
	}
	if ev, ok := pendingEvent(eb); ok {
		t.Errorf("unexpected event %#v", ev)
	}
}

func TestUploadAndExportKeys(t *testing.T) {
	m, eb, r := newTestModel(t)
	m.ExportPath = "out.html"

	HandleUpdateWithEventBus(m, tea.KeyMsg{Type: tea.KeyCtrlS}, eb, r)
	if ev, _ := pendingEvent(eb); ev != (eventbus.SubmitUploadEvent{}) {
		t.Errorf("ctrl+s sent %#v", ev)
	}

	HandleUpdateWithEventBus(m, tea.KeyMsg{Type: tea.KeyCtrlE}, eb, r)
	if ev, _ := pendingEvent(eb); ev != (eventbus.ExportTranscriptEvent{Path: "out.html"}) {
		t.Errorf("ctrl+e sent %#v", ev)
	}
}

func TestPickerToggle(t *testing.T) {
	m, eb, r := newTestModel(t)

	if cmd := HandleUpdateWithEventBus(m, tea.KeyMsg{Type: tea.KeyCtrlO}, eb, r); cmd == nil {
		t.Error("opening the picker should read the directory")
	}
	if m.Mode != models.ModePicker {
		t.Fatal("picker not opened")
	}

	HandleUpdateWithEventBus(m, tea.KeyMsg{Type: tea.KeyEsc}, eb, r)
	if m.Mode != models.ModeChat {
		t.Error("esc did not close the picker")
	}
}

func TestHandleCoreEvent(t *testing.T) {
	m, _, r := newTestModel(t)

	snap := models.Snapshot{
		Entries: []models.Entry{
			{Message: models.Message{Type: models.User, Content: "hi"}},
		},
		Uploading: true,
		Upload:    models.UploadStatus{Text: "Uploading and processing PDF...", Kind: models.StatusLoading},
	}
	if cmd := HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: snap}}, r); cmd == nil {
		t.Error("upload start should start the spinner")
	}
	if m.Status != "Uploading" {
		t.Errorf("status = %q", m.Status)
	}
	if m.State.Upload.Kind != models.StatusLoading || len(m.State.Entries) != 1 {
		t.Errorf("state = %+v", m.State)
	}

	if cmd := HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: snap}}, r); cmd != nil {
		t.Error("spinner restarted while already uploading")
	}

	snap.Uploading = false
	snap.Notice = "Selected paper.pdf"
	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: snap}}, r)
	if m.Status != "Selected paper.pdf" {
		t.Errorf("status = %q", m.Status)
	}
}

func TestTickAnimatesOnlyWhileWaiting(t *testing.T) {
	m, _, r := newTestModel(t)

	HandleTickMsg(m, r)
	if m.LoadingDots != 0 {
		t.Errorf("dots advanced with nothing in flight")
	}

	m.State.InFlight = 1
	for i := 0; i < 5; i++ {
		HandleTickMsg(m, r)
	}
	if m.LoadingDots != 1 {
		t.Errorf("LoadingDots = %d, want 1", m.LoadingDots)
	}
}

func TestWindowResize(t *testing.T) {
	m, _, r := newTestModel(t)

	HandleWindowSizeMsg(m, tea.WindowSizeMsg{Width: 100, Height: 40}, r)

	if m.Width != 100 || m.Height != 40 {
		t.Errorf("size = %dx%d", m.Width, m.Height)
	}
	if want := 40 - uploadPanelHeight - inputHeight - statusHeight - helpHeight; m.Viewport.Height != want {
		t.Errorf("viewport height = %d, want %d", m.Viewport.Height, want)
	}
}
