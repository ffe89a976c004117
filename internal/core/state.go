package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rorical/RoriPDF/internal/models"
	"github.com/Rorical/RoriPDF/internal/upload"
)

const (
	UploadingText      = "Uploading and processing PDF..."
	NoAnswerText       = "I couldn't find an answer to that question."
	QuestionFailedText = "Sorry, I encountered an error processing your question. Please try again."
)

var (
	ErrUploadInProgress = errors.New("an upload is already in progress")
	ErrUploadDisabled   = errors.New("upload is disabled until a new file is selected")
)

func UploadSuccessText(chunks int) string {
	return fmt.Sprintf("✓ Document processed successfully! %d chunks indexed.", chunks)
}

func UploadFailedText(reason string) string {
	return "Upload failed: " + reason
}

func DocumentReadyText(name string) string {
	return fmt.Sprintf("I've processed your document \"%s\". You can now ask me questions about its content!", name)
}

// Session is the client state machine: pending upload, upload status and
// transcript. It is not safe for concurrent use; ChatService owns it and
// mutates it from a single goroutine.
type Session struct {
	entries       []models.Entry
	status        models.UploadStatus
	pending       *upload.File
	canUpload     bool
	uploading     bool
	dropActive    bool
	inFlight      map[string]struct{}
	serviceStatus string
	notice        string

	newID func() string
	now   func() time.Time
}

func NewSession() *Session {
	return &Session{
		entries:  make([]models.Entry, 0),
		inFlight: make(map[string]struct{}),
		newID:    func() string { return uuid.New().String() },
		now:      time.Now,
	}
}

// SelectFile replaces the pending upload. A nil file clears the selection.
func (s *Session) SelectFile(f *upload.File) {
	s.pending = f
	s.canUpload = f != nil && !s.uploading
}

// SelectionFailed clears the selection after a file could not be read.
func (s *Session) SelectionFailed(name string, err error) {
	s.SelectFile(nil)
	s.status = models.UploadStatus{
		Text: fmt.Sprintf("Could not open %s.", name),
		Kind: models.StatusError,
	}
}

// BeginUpload validates the pending file and moves to the loading state.
// Validation failures are written to the status slot and returned as
// *upload.ValidationError. While an upload runs, or after a successful upload
// of the same file, it returns ErrUploadInProgress or ErrUploadDisabled and
// leaves the state untouched.
func (s *Session) BeginUpload() (*upload.File, error) {
	if s.uploading {
		return nil, ErrUploadInProgress
	}
	if s.pending != nil && !s.canUpload {
		return nil, ErrUploadDisabled
	}

	s.notice = ""
	if err := upload.Validate(s.pending); err != nil {
		var verr *upload.ValidationError
		if errors.As(err, &verr) {
			s.status = models.UploadStatus{Text: verr.Message(), Kind: models.StatusError}
		}
		return nil, err
	}

	s.status = models.UploadStatus{Text: UploadingText, Kind: models.StatusLoading}
	s.canUpload = false
	s.uploading = true
	return s.pending, nil
}

// FinishUpload applies the outcome of the upload started for f.
// reason is the user-facing failure text and is only used when err != nil.
func (s *Session) FinishUpload(f *upload.File, chunks int, reason string, err error) {
	s.uploading = false
	s.notice = ""

	if err != nil {
		s.status = models.UploadStatus{Text: UploadFailedText(reason), Kind: models.StatusError}
		s.canUpload = s.pending != nil
		return
	}

	s.status = models.UploadStatus{Text: UploadSuccessText(chunks), Kind: models.StatusSuccess}
	// The control stays disabled for the uploaded file until a new selection.
	s.canUpload = s.pending != nil && s.pending != f
	s.clearMessages()
	s.appendMessage(models.Message{
		Type:    models.Assistant,
		Content: DocumentReadyText(f.Name),
	})
}

// BeginQuestion appends the user message and a loading placeholder.
// It returns the placeholder ID and the trimmed question, or ok == false for
// blank input, in which case nothing changes.
func (s *Session) BeginQuestion(text string) (id string, question string, ok bool) {
	question = strings.TrimSpace(text)
	if question == "" {
		return "", "", false
	}

	s.notice = ""
	s.appendMessage(models.Message{Type: models.User, Content: question})

	id = s.newID()
	s.entries = append(s.entries, models.Entry{
		Placeholder: &models.Placeholder{ID: id, CreatedAt: s.now()},
	})
	s.inFlight[id] = struct{}{}
	return id, question, true
}

// FinishQuestion removes the placeholder id and appends the answer, the
// no-answer fallback, or the error fallback. It returns false, changing
// nothing, if id is not outstanding.
func (s *Session) FinishQuestion(id, answer string, err error) bool {
	if _, ok := s.inFlight[id]; !ok {
		return false
	}
	delete(s.inFlight, id)
	s.removePlaceholder(id)

	content := answer
	switch {
	case err != nil:
		content = QuestionFailedText
	case strings.TrimSpace(answer) == "":
		content = NoAnswerText
	}
	s.appendMessage(models.Message{Type: models.Assistant, Content: content, Rich: true})
	return true
}

func (s *Session) SetDropActive(active bool) {
	s.dropActive = active
}

func (s *Session) SetServiceStatus(status string) {
	s.serviceStatus = status
}

// SetNotice shows a one-off status line until the next upload or question.
func (s *Session) SetNotice(notice string) {
	s.notice = notice
}

func (s *Session) Status() models.UploadStatus {
	return s.status
}

func (s *Session) Pending() *upload.File {
	return s.pending
}

func (s *Session) CanUpload() bool {
	return s.canUpload
}

// Messages returns the transcript without loading placeholders.
func (s *Session) Messages() []models.Message {
	result := make([]models.Message, 0, len(s.entries))
	for _, e := range s.entries {
		if !e.IsLoading() {
			result = append(result, e.Message)
		}
	}
	return result
}

// Placeholders returns the IDs of the loading entries, in transcript order.
func (s *Session) Placeholders() []string {
	var ids []string
	for _, e := range s.entries {
		if e.IsLoading() {
			ids = append(ids, e.Placeholder.ID)
		}
	}
	return ids
}

func (s *Session) Snapshot() models.Snapshot {
	entries := make([]models.Entry, len(s.entries))
	copy(entries, s.entries)

	snap := models.Snapshot{
		Entries:       entries,
		Upload:        s.status,
		CanUpload:     s.canUpload,
		Uploading:     s.uploading,
		DropActive:    s.dropActive,
		InFlight:      len(s.inFlight),
		ServiceStatus: s.serviceStatus,
		Notice:        s.notice,
	}
	if s.pending != nil {
		snap.SelectedFile = s.pending.Name
	}
	return snap
}

func (s *Session) appendMessage(msg models.Message) {
	s.entries = append(s.entries, models.Entry{Message: msg})
}

func (s *Session) removePlaceholder(id string) {
	for i, e := range s.entries {
		if e.IsLoading() && e.Placeholder.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// clearMessages drops every message but keeps placeholders of questions that
// are still in flight, so each of them is removed exactly once by its answer.
func (s *Session) clearMessages() {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.IsLoading() {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}
