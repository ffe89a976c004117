package dropzone

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDroppedPath(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "paper.pdf")
	spaced := filepath.Join(dir, "my paper.pdf")
	for _, p := range []string{plain, spaced} {
		if err := os.WriteFile(p, []byte("%PDF-1.4"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"plain", plain, plain, true},
		{"trailing space", plain + " \n", plain, true},
		{"single quoted", "'" + spaced + "'", spaced, true},
		{"double quoted", `"` + spaced + `"`, spaced, true},
		{"escaped", filepath.Join(dir, `my\ paper.pdf`), spaced, true},
		{"file url", "file://" + filepath.ToSlash(spaced), spaced, true},
		{"file url encoded", "file://" + filepath.ToSlash(dir) + "/my%20paper.pdf", spaced, true},
		{"directory", dir, "", false},
		{"missing", filepath.Join(dir, "nope.pdf"), "", false},
		{"prose", "what is this paper about?", "", false},
		{"two lines", plain + "\n" + plain, "", false},
		{"empty", "  ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDroppedPath(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseDroppedPath(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseDroppedPathRelative(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "summary"), []byte("notes"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	if got, ok := ParseDroppedPath("summary"); ok {
		t.Errorf("bare word %q was taken as a drop", got)
	}
	if got, ok := ParseDroppedPath("./summary"); ok {
		t.Errorf("relative path %q was taken as a drop", got)
	}
	got, ok := ParseDroppedPath("'summary'")
	if !ok || got != "summary" {
		t.Errorf("quoted relative path = %q, %v; want %q, true", got, ok, "summary")
	}
}

func startWatcher(t *testing.T, settle time.Duration) (string, <-chan Event) {
	t.Helper()
	dir := t.TempDir()

	w, err := NewWatcher(dir, settle)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	t.Cleanup(func() { w.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	events, err := w.Watch(ctx)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	return dir, events
}

func next(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("event channel closed")
		}
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for event")
	}
	return Event{}
}

func TestWatcherDropsSettledFile(t *testing.T) {
	dir, events := startWatcher(t, 100*time.Millisecond)

	path := filepath.Join(dir, "paper.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}

	first := next(t, events)
	if first.Kind != Enter || first.Path != path {
		t.Fatalf("first event = %+v, want enter %s", first, path)
	}
	for {
		ev := next(t, events)
		if ev.Kind == Drop {
			if ev.Path != path {
				t.Errorf("drop path = %s, want %s", ev.Path, path)
			}
			return
		}
		if ev.Kind != Over {
			t.Fatalf("unexpected event %+v before drop", ev)
		}
	}
}

func TestWatcherLeaveOnRemove(t *testing.T) {
	dir, events := startWatcher(t, 2*time.Second)

	path := filepath.Join(dir, "paper.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}
	if ev := next(t, events); ev.Kind != Enter {
		t.Fatalf("first event = %+v", ev)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	for {
		ev := next(t, events)
		if ev.Kind == Leave {
			return
		}
		if ev.Kind == Drop {
			t.Fatal("removed file was dropped")
		}
	}
}

func TestWatcherIgnoresHiddenFiles(t *testing.T) {
	dir, events := startWatcher(t, 100*time.Millisecond)

	os.WriteFile(filepath.Join(dir, ".partial"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "paper.pdf.crdownload"), []byte("x"), 0644)
	visible := filepath.Join(dir, "visible.pdf")
	os.WriteFile(visible, []byte("%PDF-1.4"), 0644)

	if ev := next(t, events); ev.Path != visible {
		t.Errorf("first event path = %s, want %s", ev.Path, visible)
	}
}

func TestKindString(t *testing.T) {
	for kind, want := range map[Kind]string{Enter: "enter", Over: "over", Leave: "leave", Drop: "drop"} {
		if kind.String() != want {
			t.Errorf("%d.String() = %q, want %q", kind, kind.String(), want)
		}
	}
}
