package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriPDF/internal/models"
	"github.com/Rorical/RoriPDF/internal/update"
	"github.com/Rorical/RoriPDF/ui/components"
)

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent, m.renderer)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	eventBus := m.dispatcher.GetEventBus()
	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, eventBus, m.renderer)

	return m, cmd
}

func (m *AppModel) View() string {
	var b strings.Builder
	a := &m.appModel

	b.WriteString(components.RenderUploadPanel(a.State, a.Spinner, m.dropDir, a.Width))
	b.WriteString("\n")
	if a.Mode == models.ModePicker {
		b.WriteString(a.Picker.View())
	} else {
		b.WriteString(a.Viewport.View())
		b.WriteString("\n")
		b.WriteString(components.RenderInput(a.Input, a.Width))
	}
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(a.Status, a.State.ServiceStatus, a.State.InFlight, a.LoadingDots, a.Width))
	b.WriteString("\n")
	b.WriteString(a.Help.View(update.Keys))

	return b.String()
}
