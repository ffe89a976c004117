package update

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriPDF/internal/dropzone"
	"github.com/Rorical/RoriPDF/internal/eventbus"
	"github.com/Rorical/RoriPDF/internal/models"
	"github.com/Rorical/RoriPDF/internal/render"
	"github.com/Rorical/RoriPDF/ui/components"
)

// Layout heights of the fixed parts of the screen.
const (
	uploadPanelHeight = 4
	inputHeight       = 5
	statusHeight      = 1
	helpHeight        = 1
)

// HandleDroppedPaste treats a paste naming an existing file as a drop. A
// dragged file arrives this way whatever has focus, so it is checked before
// any other key handling.
func HandleDroppedPaste(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) bool {
	if !keyMsg.Paste {
		return false
	}
	path, ok := dropzone.ParseDroppedPath(string(keyMsg.Runes))
	if !ok {
		return false
	}
	appModel.Mode = models.ModeChat
	if err := eb.SendToCore(eventbus.SelectFileEvent{Path: path}); err != nil {
		appModel.Status = "Error selecting file: " + err.Error()
	}
	return true
}

// HandleKeyMsg handles keyboard input in chat mode
func HandleKeyMsg(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch {
	case key.Matches(keyMsg, Keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, Keys.Submit):
		text := appModel.Input.Value()
		if strings.TrimSpace(text) == "" {
			return nil
		}
		if err := eb.SendToCore(eventbus.SubmitQuestionEvent{Text: text}); err != nil {
			appModel.Status = "Error sending question: " + err.Error()
			return nil
		}
		appModel.Input.Reset()
		return nil
	case key.Matches(keyMsg, Keys.Upload):
		if err := eb.SendToCore(eventbus.SubmitUploadEvent{}); err != nil {
			appModel.Status = "Error starting upload: " + err.Error()
		}
		return nil
	case key.Matches(keyMsg, Keys.OpenPicker):
		appModel.Mode = models.ModePicker
		return appModel.Picker.Init()
	case key.Matches(keyMsg, Keys.Export):
		if err := eb.SendToCore(eventbus.ExportTranscriptEvent{Path: appModel.ExportPath}); err != nil {
			appModel.Status = "Error exporting transcript: " + err.Error()
		}
		return nil
	case key.Matches(keyMsg, Keys.PageUp):
		appModel.Viewport.PageUp()
		return nil
	case key.Matches(keyMsg, Keys.PageDown):
		appModel.Viewport.PageDown()
		return nil
	}

	var cmd tea.Cmd
	appModel.Input, cmd = appModel.Input.Update(keyMsg)
	return cmd
}

// HandlePickerMsg routes messages to the file picker while it is open.
func HandlePickerMsg(appModel *models.AppModel, msg tea.Msg, eb *eventbus.EventBus) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, Keys.Quit):
			return tea.Quit
		case key.Matches(keyMsg, Keys.Cancel):
			appModel.Mode = models.ModeChat
			return nil
		}
	}

	var cmd tea.Cmd
	appModel.Picker, cmd = appModel.Picker.Update(msg)

	if ok, path := appModel.Picker.DidSelectFile(msg); ok {
		appModel.Mode = models.ModeChat
		if err := eb.SendToCore(eventbus.SelectFileEvent{Path: path}); err != nil {
			appModel.Status = "Error selecting file: " + err.Error()
		}
		return cmd
	}
	if ok, path := appModel.Picker.DidSelectDisabledFile(msg); ok {
		appModel.Status = "Not a PDF: " + path
	}
	return cmd
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg, r *render.Renderer) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		wasUploading := appModel.State.Uploading
		appModel.State = event.Snapshot

		switch {
		case event.Snapshot.Notice != "":
			appModel.Status = event.Snapshot.Notice
		case event.Snapshot.Uploading:
			appModel.Status = "Uploading"
		default:
			appModel.Status = "Ready"
		}

		RefreshViewport(appModel, r)

		if event.Snapshot.Uploading && !wasUploading {
			return appModel.Spinner.Tick
		}
	}

	return nil
}

// RefreshViewport re-renders the transcript and follows it to the bottom.
func RefreshViewport(appModel *models.AppModel, r *render.Renderer) {
	appModel.Viewport.SetContent(components.RenderMessages(appModel.State.Entries, r, appModel.LoadingDots, appModel.Viewport.Width))
	appModel.Viewport.GotoBottom()
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg, r *render.Renderer) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height

	vpHeight := sizeMsg.Height - uploadPanelHeight - inputHeight - statusHeight - helpHeight
	if vpHeight < 3 {
		vpHeight = 3
	}
	appModel.Viewport.Width = sizeMsg.Width
	appModel.Viewport.Height = vpHeight
	appModel.Input.SetWidth(sizeMsg.Width - 6)
	appModel.Picker.SetHeight(sizeMsg.Height - uploadPanelHeight - statusHeight - helpHeight)
	appModel.Help.Width = sizeMsg.Width

	RefreshViewport(appModel, r)
}

func HandleTickMsg(appModel *models.AppModel, r *render.Renderer) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.State.InFlight > 0 {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
		RefreshViewport(appModel, r)
	}
	return TickCmd()
}

func HandleSpinnerMsg(appModel *models.AppModel, msg spinner.TickMsg) tea.Cmd {
	if !appModel.State.Uploading {
		return nil
	}
	var cmd tea.Cmd
	appModel.Spinner, cmd = appModel.Spinner.Update(msg)
	return cmd
}
