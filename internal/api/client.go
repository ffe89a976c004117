// Package api talks to the document question-answering service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "http://127.0.0.1:8000"

type UploadResponse struct {
	Message      string `json:"message,omitempty"`
	ChunksStored *int   `json:"chunks_stored,omitempty"`
	ChunkStored  *int   `json:"chunk_stored,omitempty"` // older backends
}

// Chunks returns the stored chunk count, preferring chunks_stored.
func (r *UploadResponse) Chunks() int {
	switch {
	case r.ChunksStored != nil:
		return *r.ChunksStored
	case r.ChunkStored != nil:
		return *r.ChunkStored
	}
	return 0
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Client calls /upload-pdf, /ask and the / health check.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client. A zero timeout leaves failures to the transport.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// UploadPDF streams content as the multipart form field "file".
func (c *Client) UploadPDF(ctx context.Context, name string, content io.Reader) (*UploadResponse, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(name)))
		header.Set("Content-Type", "application/pdf")

		part, err := mw.CreatePart(header)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-pdf", pr)
	if err != nil {
		pr.Close()
		return nil, &RequestError{Op: "upload", Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out UploadResponse
	if err := c.do(req, "upload", &out); err != nil {
		pr.CloseWithError(err)
		return nil, err
	}
	return &out, nil
}

// Ask posts a question and returns the decoded answer.
func (c *Client) Ask(ctx context.Context, question string) (*AskResponse, error) {
	body, err := json.Marshal(AskRequest{Question: question})
	if err != nil {
		return nil, &RequestError{Op: "ask", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", bytes.NewReader(body))
	if err != nil {
		return nil, &RequestError{Op: "ask", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var out AskResponse
	if err := c.do(req, "ask", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health calls the service root.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return nil, &RequestError{Op: "health", Err: err}
	}

	var out HealthResponse
	if err := c.do(req, "health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(req *http.Request, op string, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "RoriPDF/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return &RequestError{
			Op:         op,
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("%w: %v", ErrBadResponse, err)}
	}
	return nil
}

// statusText returns the reason phrase the server sent, e.g. "Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
