package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"
)

type RequestSample struct {
	Path      string
	Method    string
	Status    int
	Latency   time.Duration
	Timestamp time.Time
}

// StatusRecorder captures the status code written by a handler.
type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
}

func (r *StatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades pass through the recorder.
func (r *StatusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.Status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func Sample(r *http.Request, status int, start time.Time) RequestSample {
	return RequestSample{
		Path:      r.URL.Path,
		Method:    r.Method,
		Status:    status,
		Latency:   time.Since(start),
		Timestamp: start.UTC(),
	}
}
