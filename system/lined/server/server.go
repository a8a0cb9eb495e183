package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/signadot/lined/system/lined/sink"
)

// Server represents the lined server.
type Server struct {
	Spec Spec

	tcpListener *TCPListener

	// configErr is reported by StartTCP.
	configErr error
}

// New creates a new Server instance. A nil Output writes to stdout using
// Config's marker and color, a nil Filter is compiled from Config.Filter,
// and a nil Log writes text to stderr.
func New(spec *Spec) *Server {
	if spec.Config == nil {
		spec.Config = DefaultConfig()
	}
	if spec.Output == nil {
		color := spec.Config.Color != nil && *spec.Config.Color
		spec.Output = sink.New(os.Stdout, sink.WithMarker(spec.Config.Marker), sink.WithColor(color))
	}
	if spec.Log == nil {
		spec.Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slogLevel(),
		}))
	}
	s := &Server{}
	if spec.Filter == nil {
		spec.Filter, s.configErr = NewFilter(spec.Config.Filter)
	}
	s.Spec = *spec
	return s
}

func slogLevel() slog.Level {
	if os.Getenv("DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// StartTCP starts the TCP listener on the given address.
// The listener runs in a separate goroutine. A bind failure is returned
// as a *BindError and nothing is accepted. An invalid Config.Filter is
// returned before binding.
func (s *Server) StartTCP(addr string) error {
	if s.configErr != nil {
		return s.configErr
	}
	if s.tcpListener != nil {
		return fmt.Errorf("TCP listener already running")
	}

	listener, err := NewTCPListener(addr, s)
	if err != nil {
		return err
	}

	s.tcpListener = listener

	go func() {
		if err := listener.Serve(); err != nil {
			s.Spec.Log.Error("TCP listener error", "error", err)
		}
	}()

	return nil
}

// StopTCP stops the TCP listener and waits for its sessions to end.
func (s *Server) StopTCP() error {
	if s.tcpListener == nil {
		return nil
	}

	err := s.tcpListener.Close()
	s.tcpListener = nil
	return err
}

// TCPAddr returns the TCP listener's address, or "" if not running.
func (s *Server) TCPAddr() string {
	if s.tcpListener == nil {
		return ""
	}
	return s.tcpListener.Addr().String()
}

// SessionCount returns the number of live sessions, or 0 if not running.
func (s *Server) SessionCount() int {
	if s.tcpListener == nil {
		return 0
	}
	return s.tcpListener.SessionCount()
}
