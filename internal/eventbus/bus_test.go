package eventbus

import (
	"errors"
	"testing"
	"time"
)

func TestSendAndReceive(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	if err := eb.SendToCore(SubmitQuestionEvent{Text: "hi"}); err != nil {
		t.Fatalf("SendToCore() error = %v", err)
	}
	ev := <-eb.UIToCore()
	if q, ok := ev.(SubmitQuestionEvent); !ok || q.Text != "hi" {
		t.Errorf("received %#v", ev)
	}
}

func TestFullChannelOpensCircuit(t *testing.T) {
	eb := NewEventBusWithBuffer(1)
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(e EventBusError) { reported = append(reported, e) })

	if err := eb.SendToUI(StateUpdateEvent{}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := eb.SendToUI(StateUpdateEvent{}); err == nil {
			t.Fatalf("send %d into a full channel succeeded", i)
		}
	}
	if eb.GetCircuitBreakerState() != CircuitOpen {
		t.Fatalf("state = %v, want open", eb.GetCircuitBreakerState())
	}
	if err := eb.SendToCore(SubmitUploadEvent{}); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("SendToCore() error = %v, want ErrCircuitOpen", err)
	}
	if len(reported) != 6 {
		t.Errorf("reported %d errors, want 6", len(reported))
	}
}

func TestCircuitBreakerHalfOpens(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)
	cb.RecordFailure()
	if !cb.IsOpen() {
		t.Fatal("expected open after max failures")
	}
	time.Sleep(20 * time.Millisecond)
	if cb.IsOpen() {
		t.Fatal("expected half-open after reset timeout")
	}
	cb.RecordSuccess()
	if cb.State() != CircuitClosed {
		t.Errorf("state = %v, want closed", cb.State())
	}
}

func TestSendAfterClose(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()

	if err := eb.SendToCore(SubmitUploadEvent{}); !errors.Is(err, ErrBusClosed) {
		t.Errorf("SendToCore() error = %v, want ErrBusClosed", err)
	}
	if err := eb.SendToUI(StateUpdateEvent{}); !errors.Is(err, ErrBusClosed) {
		t.Errorf("SendToUI() error = %v, want ErrBusClosed", err)
	}
}
