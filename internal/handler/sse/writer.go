package sse

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// Writer serialises SSE frames onto one response. Events and keep-alive
// comments come from different goroutines, so every write holds mu.
type Writer struct {
	mu       sync.Mutex
	w        http.ResponseWriter
	flusher  http.Flusher
	streamID string
}

// NewWriter prepares w for an event stream, writes the headers and, when
// cfg sets one, the retry hint. It fails when the response cannot be
// flushed incrementally.
func NewWriter(w http.ResponseWriter, streamID string, cfg *Config) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming unsupported")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if cfg != nil && cfg.Retry > 0 {
		fmt.Fprintf(w, "retry: %d\n\n", cfg.Retry.Milliseconds())
	}
	flusher.Flush()

	return &Writer{w: w, flusher: flusher, streamID: streamID}, nil
}

// WriteEvent writes one event frame. Multi-line data is split into
// several data lines.
func (s *Writer) WriteEvent(id, event string, data []byte) error {
	var b strings.Builder
	if id != "" {
		fmt.Fprintf(&b, "id: %s\n", id)
	}
	if event != "" {
		fmt.Fprintf(&b, "event: %s\n", event)
	}
	for _, line := range strings.Split(string(data), "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteString("\n")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write([]byte(b.String())); err != nil {
		return fmt.Errorf("write event on stream %s: %w", s.streamID, err)
	}
	s.flusher.Flush()
	return nil
}

// WriteKeepAlive writes an SSE comment line, which clients ignore
func (s *Writer) WriteKeepAlive() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprint(s.w, ": keepalive\n\n"); err != nil {
		return fmt.Errorf("write keepalive on stream %s: %w", s.streamID, err)
	}
	s.flusher.Flush()
	return nil
}
