package sink

import (
	"io"
	"sync"

	"github.com/fatih/color"
)

// Sink writes session markers and client lines to an underlying writer.
// It is safe for concurrent use; each marker or line is a single Write.
type Sink struct {
	mu     sync.Mutex
	w      io.Writer
	marker []byte
	client func(a ...any) string
}

// New creates a Sink writing to w.
func New(w io.Writer, opts ...Option) *Sink {
	o := &sinkOpts{marker: DefaultMarker}
	for _, opt := range opts {
		opt(o)
	}
	c := color.New(color.FgCyan)
	if o.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return &Sink{
		w:      w,
		marker: []byte(o.marker + markerEOL),
		client: c.SprintFunc(),
	}
}

// Marker writes the session separator line.
func (s *Sink) Marker() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(s.marker)
	return err
}

// Line writes "client line" as read from the connection. The line is
// written verbatim, including any trailing "\r\n" or "\n".
func (s *Sink) Line(client string, line []byte) error {
	prefix := s.client(client)
	buf := make([]byte, 0, len(prefix)+1+len(line))
	buf = append(buf, prefix...)
	buf = append(buf, ' ')
	buf = append(buf, line...)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(buf)
	return err
}
