package dispatcher

import (
	"testing"
	"time"

	"github.com/Rorical/RoriPDF/internal/dropzone"
	"github.com/Rorical/RoriPDF/internal/eventbus"
	"github.com/Rorical/RoriPDF/internal/models"
	"github.com/Rorical/RoriPDF/internal/update"
)

func TestToDropEvent(t *testing.T) {
	tests := []struct {
		kind dropzone.Kind
		want eventbus.DropKind
	}{
		{dropzone.Enter, eventbus.DropEnter},
		{dropzone.Over, eventbus.DropOver},
		{dropzone.Leave, eventbus.DropLeave},
		{dropzone.Drop, eventbus.Drop},
	}
	for _, tt := range tests {
		got := ToDropEvent(dropzone.Event{Kind: tt.kind, Path: "/tmp/a.pdf"})
		if got.Kind != tt.want || got.Path != "/tmp/a.pdf" {
			t.Errorf("ToDropEvent(%v) = %+v", tt.kind, got)
		}
	}
}

func TestForward(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	ed := NewEventDispatcher(eb)
	defer ed.Stop()

	events := make(chan dropzone.Event, 1)
	ed.Forward(events)
	events <- dropzone.Event{Kind: dropzone.Drop, Path: "/tmp/a.pdf"}

	select {
	case ev := <-eb.UIToCore():
		drop, ok := ev.(eventbus.DropEvent)
		if !ok || drop.Kind != eventbus.Drop || drop.Path != "/tmp/a.pdf" {
			t.Errorf("received %#v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("drop event not forwarded")
	}
}

func TestListenForCoreEvents(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	ed := NewEventDispatcher(eb)
	defer ed.Stop()

	want := models.Snapshot{SelectedFile: "a.pdf"}
	if err := eb.SendToUI(eventbus.StateUpdateEvent{Snapshot: want}); err != nil {
		t.Fatal(err)
	}

	msg := ed.ListenForCoreEvents()()
	coreMsg, ok := msg.(update.CoreEventMsg)
	if !ok {
		t.Fatalf("msg = %#v", msg)
	}
	su, ok := coreMsg.Event.(eventbus.StateUpdateEvent)
	if !ok || su.Snapshot.SelectedFile != "a.pdf" {
		t.Errorf("event = %#v", coreMsg.Event)
	}
}

func TestListenReturnsNilAfterStop(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	ed := NewEventDispatcher(eb)
	ed.Stop()

	if msg := ed.ListenForCoreEvents()(); msg != nil {
		t.Errorf("msg = %#v, want nil", msg)
	}
}
