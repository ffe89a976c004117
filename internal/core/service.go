package core

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/Rorical/RoriPDF/internal/api"
	"github.com/Rorical/RoriPDF/internal/eventbus"
	"github.com/Rorical/RoriPDF/internal/render"
	"github.com/Rorical/RoriPDF/internal/upload"
)

// Backend is the external question-answering service.
type Backend interface {
	UploadPDF(ctx context.Context, name string, content io.Reader) (*api.UploadResponse, error)
	Ask(ctx context.Context, question string) (*api.AskResponse, error)
	Health(ctx context.Context) (*api.HealthResponse, error)
}

// completion is a network result posted back into the event loop.
type completion interface {
	apply(cs *ChatService)
}

type uploadDone struct {
	file   *upload.File
	chunks int
	err    error
}

type answerDone struct {
	id     string
	answer string
	err    error
}

type healthDone struct {
	err error
}

// ChatService runs the client state machine. Every Session mutation happens
// on the eventLoop goroutine; network calls run in their own goroutines and
// report back through the completions channel.
type ChatService struct {
	backend     Backend
	session     *Session
	eventBus    *eventbus.EventBus
	completions chan completion
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	title       string
}

func NewChatService(backend Backend, eb *eventbus.EventBus) *ChatService {
	ctx, cancel := context.WithCancel(context.Background())
	return &ChatService{
		backend:     backend,
		session:     NewSession(),
		eventBus:    eb,
		completions: make(chan completion, 16),
		ctx:         ctx,
		cancel:      cancel,
		title:       "RoriPDF transcript",
	}
}

// Start runs the core logic in a goroutine
func (cs *ChatService) Start() {
	cs.session.SetServiceStatus("connecting")
	cs.pushStateToUI()

	cs.spawn(func(ctx context.Context) completion {
		_, err := cs.backend.Health(ctx)
		return healthDone{err: err}
	})

	cs.wg.Add(1)
	go func() {
		defer cs.wg.Done()
		cs.eventLoop()
	}()
}

// Stop cancels in-flight requests and waits for the loop to exit.
func (cs *ChatService) Stop() {
	cs.cancel()
	cs.wg.Wait()
}

func (cs *ChatService) eventLoop() {
	for {
		select {
		case <-cs.ctx.Done():
			return
		case event, ok := <-cs.eventBus.UIToCore():
			if !ok {
				return
			}
			cs.handleUIEvent(event)
		case c := <-cs.completions:
			c.apply(cs)
			cs.pushStateToUI()
		}
	}
}

func (cs *ChatService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SelectFileEvent:
		cs.selectFile(e.Path)
	case eventbus.SubmitUploadEvent:
		cs.submitUpload()
	case eventbus.SubmitQuestionEvent:
		cs.submitQuestion(e.Text)
	case eventbus.DropEvent:
		cs.handleDrop(e)
	case eventbus.ExportTranscriptEvent:
		cs.exportTranscript(e.Path)
	}
	cs.pushStateToUI()
}

func (cs *ChatService) selectFile(path string) {
	f, err := upload.Open(path)
	if err != nil {
		log.Printf("file selection failed: %v", err)
		cs.session.SelectionFailed(filepath.Base(path), err)
		return
	}
	cs.session.SelectFile(f)
	cs.session.SetNotice("Selected " + f.Name)
}

func (cs *ChatService) submitUpload() {
	f, err := cs.session.BeginUpload()
	if err != nil {
		log.Printf("upload not started: %v", err)
		return
	}

	cs.spawn(func(ctx context.Context) completion {
		fh, err := os.Open(f.Path)
		if err != nil {
			return uploadDone{file: f, err: err}
		}
		defer fh.Close()

		resp, err := cs.backend.UploadPDF(ctx, f.Name, fh)
		if err != nil {
			return uploadDone{file: f, err: err}
		}
		return uploadDone{file: f, chunks: resp.Chunks()}
	})
}

func (cs *ChatService) submitQuestion(text string) {
	id, question, ok := cs.session.BeginQuestion(text)
	if !ok {
		return
	}

	cs.spawn(func(ctx context.Context) completion {
		resp, err := cs.backend.Ask(ctx, question)
		if err != nil {
			return answerDone{id: id, err: err}
		}
		return answerDone{id: id, answer: resp.Answer}
	})
}

func (cs *ChatService) handleDrop(e eventbus.DropEvent) {
	switch e.Kind {
	case eventbus.DropEnter, eventbus.DropOver:
		cs.session.SetDropActive(true)
	case eventbus.DropLeave:
		cs.session.SetDropActive(false)
	case eventbus.Drop:
		cs.session.SetDropActive(false)
		cs.selectFile(e.Path)
	}
}

func (cs *ChatService) exportTranscript(path string) {
	snap := cs.session.Snapshot()
	if err := render.ExportTranscript(path, cs.title, snap.Entries); err != nil {
		log.Printf("transcript export failed: %v", err)
		cs.session.SetNotice("Export failed")
		return
	}
	cs.session.SetNotice("Transcript saved to " + path)
}

// spawn runs fn off the loop and posts its result back, unless the service
// is shutting down.
func (cs *ChatService) spawn(fn func(ctx context.Context) completion) {
	cs.wg.Add(1)
	go func() {
		defer cs.wg.Done()
		c := fn(cs.ctx)
		select {
		case cs.completions <- c:
		case <-cs.ctx.Done():
		}
	}()
}

func (cs *ChatService) pushStateToUI() {
	if err := cs.eventBus.SendToUI(eventbus.StateUpdateEvent{Snapshot: cs.session.Snapshot()}); err != nil {
		log.Printf("Error sending state to UI: %v", err)
	}
}

func (d uploadDone) apply(cs *ChatService) {
	if d.err != nil {
		log.Printf("Upload error: %v", d.err)
		cs.session.FinishUpload(d.file, 0, failureReason(d.err), d.err)
		return
	}
	cs.session.FinishUpload(d.file, d.chunks, "", nil)
	cs.title = d.file.Name
}

func (d answerDone) apply(cs *ChatService) {
	if d.err != nil {
		log.Printf("Question error: %v", d.err)
	}
	if !cs.session.FinishQuestion(d.id, d.answer, d.err) {
		log.Printf("answer for unknown placeholder %s dropped", d.id)
	}
}

func (d healthDone) apply(cs *ChatService) {
	if d.err != nil {
		log.Printf("health check failed: %v", d.err)
		cs.session.SetServiceStatus("unreachable")
		return
	}
	cs.session.SetServiceStatus("online")
}

func failureReason(err error) string {
	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Reason()
	}
	if errors.Is(err, os.ErrNotExist) {
		return "file no longer exists"
	}
	return "could not read file"
}
