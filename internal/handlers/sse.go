package handlers

import (
	"fmt"
	"net/http"
	"strings"
)

// sseStream wraps a ResponseWriter as a server-sent-events stream. Each chunk
// goes out as a single data frame with embedded newlines escaped so the frame
// stays one line on the wire; the client reverses the escape.
type sseStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSEStream(w http.ResponseWriter) (*sseStream, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	return &sseStream{w: w, flusher: flusher}, true
}

func (s *sseStream) SendChunk(text string) error {
	escaped := strings.ReplaceAll(text, "\n", `\n`)
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", escaped); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s *sseStream) Done() {
	fmt.Fprint(s.w, "data: [DONE]\n\n")
	s.flusher.Flush()
}
