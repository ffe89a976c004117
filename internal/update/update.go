package update

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriPDF/internal/eventbus"
	"github.com/Rorical/RoriPDF/internal/models"
	"github.com/Rorical/RoriPDF/internal/render"
)

func HandleUpdateWithEventBus(appModel *models.AppModel, msg tea.Msg, eb *eventbus.EventBus, r *render.Renderer) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg, r)
		return nil
	case TickMsg:
		return HandleTickMsg(appModel, r)
	case spinner.TickMsg:
		return HandleSpinnerMsg(appModel, msg)
	case CoreEventMsg:
		return HandleCoreEvent(appModel, msg, r)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && HandleDroppedPaste(appModel, keyMsg, eb) {
		return nil
	}
	if appModel.Mode == models.ModePicker {
		return HandlePickerMsg(appModel, msg, eb)
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return HandleKeyMsg(appModel, keyMsg, eb)
	}

	// cursor blink and other textarea internals
	var cmd tea.Cmd
	appModel.Input, cmd = appModel.Input.Update(msg)
	return cmd
}
