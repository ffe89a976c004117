package dispatcher

import (
	"context"
	"log"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriPDF/internal/dropzone"
	"github.com/Rorical/RoriPDF/internal/eventbus"
	"github.com/Rorical/RoriPDF/internal/update"
)

// EventDispatcher handles routing events between core and UI
type EventDispatcher struct {
	eventBus *eventbus.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewEventDispatcher(eventBus *eventbus.EventBus) *EventDispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventDispatcher{
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ListenForCoreEvents waits for the next core event and hands it to Bubble
// Tea. The model re-issues it after every CoreEventMsg.
func (ed *EventDispatcher) ListenForCoreEvents() tea.Cmd {
	return func() tea.Msg {
		select {
		case event, ok := <-ed.eventBus.CoreToUI():
			if !ok {
				return nil
			}
			return update.CoreEventMsg{Event: event}
		case <-ed.ctx.Done():
			return nil
		}
	}
}

// Forward relays drop folder activity to the core until the channel closes
// or the dispatcher stops.
func (ed *EventDispatcher) Forward(events <-chan dropzone.Event) {
	ed.wg.Add(1)
	go func() {
		defer ed.wg.Done()
		for {
			select {
			case <-ed.ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if err := ed.eventBus.SendToCore(ToDropEvent(ev)); err != nil {
					log.Printf("Error forwarding drop event: %v", err)
				}
			}
		}
	}()
}

func ToDropEvent(ev dropzone.Event) eventbus.DropEvent {
	var kind eventbus.DropKind
	switch ev.Kind {
	case dropzone.Enter:
		kind = eventbus.DropEnter
	case dropzone.Over:
		kind = eventbus.DropOver
	case dropzone.Leave:
		kind = eventbus.DropLeave
	default:
		kind = eventbus.Drop
	}
	return eventbus.DropEvent{Kind: kind, Path: ev.Path}
}

func (ed *EventDispatcher) Stop() {
	ed.cancel()
	ed.wg.Wait()
}

func (ed *EventDispatcher) GetEventBus() *eventbus.EventBus {
	return ed.eventBus
}
