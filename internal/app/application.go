package app

import (
	"context"
	"log"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriPDF/internal/api"
	"github.com/Rorical/RoriPDF/internal/config"
	"github.com/Rorical/RoriPDF/internal/core"
	"github.com/Rorical/RoriPDF/internal/dispatcher"
	"github.com/Rorical/RoriPDF/internal/dropzone"
	"github.com/Rorical/RoriPDF/internal/eventbus"
	"github.com/Rorical/RoriPDF/internal/models"
	"github.com/Rorical/RoriPDF/internal/render"
	"github.com/Rorical/RoriPDF/internal/update"
	"github.com/Rorical/RoriPDF/ui/components"
)

// Options are per-run settings that do not belong in a profile.
type Options struct {
	File string // preselected file
}

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	opts       Options
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.ChatService
	watcher    *dropzone.Watcher
	cancel     context.CancelFunc
	model      *AppModel
}

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	renderer   *render.Renderer
	dropDir    string
}

func NewApplication(cfg *config.Config, opts Options) (*Application, error) {
	renderer, err := render.NewRenderer(cfg.GetMarkdown())
	if err != nil {
		log.Printf("Failed to initialize markdown renderer: %v", err)
		return nil, err
	}

	// Create event bus
	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		log.Printf("event bus: %v", e)
	})

	// Create dispatcher
	disp := dispatcher.NewEventDispatcher(eb)

	client := api.NewClient(cfg.GetBaseURL(), cfg.GetTimeout())
	chatService := core.NewChatService(client, eb)

	var watcher *dropzone.Watcher
	if dir := cfg.GetDropDir(); dir != "" {
		watcher, err = dropzone.NewWatcher(dir, dropzone.DefaultSettle)
		if err != nil {
			log.Printf("Failed to watch drop folder %s: %v", dir, err)
			return nil, err
		}
	}

	model := &AppModel{
		appModel:   createInitialAppModel(cfg),
		dispatcher: disp,
		renderer:   renderer,
		dropDir:    cfg.GetDropDir(),
	}

	return &Application{
		config:     cfg,
		opts:       opts,
		eventBus:   eb,
		dispatcher: disp,
		service:    chatService,
		watcher:    watcher,
		model:      model,
	}, nil
}

func (app *Application) Start() error {
	// Start background services
	app.service.Start()

	if app.watcher != nil {
		ctx, cancel := context.WithCancel(context.Background())
		app.cancel = cancel
		events, err := app.watcher.Watch(ctx)
		if err != nil {
			return err
		}
		app.dispatcher.Forward(events)
	}

	if app.opts.File != "" {
		if err := app.eventBus.SendToCore(eventbus.SelectFileEvent{Path: app.opts.File}); err != nil {
			log.Printf("Failed to preselect %s: %v", app.opts.File, err)
		}
	}

	// Run UI
	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	if app.cancel != nil {
		app.cancel()
	}
	if app.watcher != nil {
		app.watcher.Close()
	}
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
}

func createInitialAppModel(cfg *config.Config) models.AppModel {
	picker := filepicker.New()
	picker.AllowedTypes = []string{".pdf", ".PDF"}
	if wd, err := os.Getwd(); err == nil {
		picker.CurrentDirectory = wd
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	// No initial messages in UI - they come from core as single source of truth
	return models.AppModel{
		Status:     "Ready",
		Mode:       models.ModeChat,
		ExportPath: cfg.GetExportPath(),
		Input:      components.NewInput(update.Keys.Newline),
		Viewport:   viewport.New(80, 10),
		Spinner:    sp,
		Picker:     picker,
		Help:       help.New(),
	}
}
