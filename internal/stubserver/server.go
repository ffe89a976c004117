// Package stubserver is a stand-in for the PDF question-answering service.
// It speaks the same HTTP API but only counts chunks and returns canned
// answers, which is enough to drive the client end to end.
package stubserver

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// DefaultChunkBytes approximates 350 words of extracted text per chunk.
	DefaultChunkBytes = 2048
	MaxUploadBytes    = 50 << 20
	StatusText        = "RoriPDF stub backend is running"
)

type Options struct {
	ChunkBytes int           // upload bytes per reported chunk
	Delay      time.Duration // added before every upload and answer
	Legacy     bool          // report chunk_stored instead of chunks_stored
}

type document struct {
	name   string
	chunks int
}

type Server struct {
	opts Options

	mu  sync.RWMutex
	doc *document
}

func New(opts Options) *Server {
	if opts.ChunkBytes <= 0 {
		opts.ChunkBytes = DefaultChunkBytes
	}
	return &Server{opts: opts}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.health)
	r.Post("/upload-pdf", s.uploadPDF)
	r.Post("/ask", s.ask)

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": StatusText})
}

func (s *Server) uploadPDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	n, err := io.Copy(io.Discard, file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	s.wait(r)

	chunks := int((n + int64(s.opts.ChunkBytes) - 1) / int64(s.opts.ChunkBytes))
	if chunks < 1 {
		chunks = 1
	}

	s.mu.Lock()
	s.doc = &document{name: header.Filename, chunks: chunks}
	s.mu.Unlock()

	log.Printf("[stub] stored %s: %d bytes, %d chunks", header.Filename, n, chunks)

	key := "chunks_stored"
	if s.opts.Legacy {
		key = "chunk_stored"
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "PDF uploaded and processed successfully",
		key:       chunks,
	})
}

type askRequest struct {
	Question string `json:"question"`
}

func (s *Server) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		respondError(w, http.StatusUnprocessableEntity, "question is required")
		return
	}

	s.wait(r)

	s.mu.RLock()
	doc := s.doc
	s.mu.RUnlock()

	answer := "No document has been uploaded yet."
	if doc != nil {
		answer = "This is a stub answer to \"" + question + "\" based on " + doc.name + "."
	}
	respondJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) wait(r *http.Request) {
	if s.opts.Delay <= 0 {
		return
	}
	select {
	case <-time.After(s.opts.Delay):
	case <-r.Context().Done():
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"detail": message})
}
