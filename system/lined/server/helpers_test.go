package server

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type event struct {
	marker bool
	client string
	line   string
}

// recorder is an Output that keeps everything written to it.
type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) Marker() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{marker: true})
	return nil
}

func (r *recorder) Line(client string, line []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{client: client, line: string(line)})
	return nil
}

func (r *recorder) snapshot() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event(nil), r.events...)
}

func (r *recorder) markers() int {
	n := 0
	for _, e := range r.snapshot() {
		if e.marker {
			n++
		}
	}
	return n
}

func (r *recorder) linesFor(client string) []string {
	var res []string
	for _, e := range r.snapshot() {
		if !e.marker && e.client == client {
			res = append(res, e.line)
		}
	}
	return res
}

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func startServer(t *testing.T, rec *recorder) *Server {
	t.Helper()
	srv := New(&Spec{Output: rec, Log: discardLog()})
	if err := srv.StartTCP("127.0.0.1:0"); err != nil {
		t.Fatalf("failed to start TCP: %v", err)
	}
	t.Cleanup(func() { srv.StopTCP() })
	return srv
}
