package server

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"sync"
)

// Session handles one client connection from its first line to its close.
type Session struct {
	ID string

	// Client is "host:port" of the peer, used as the line prefix.
	Client string
	host   string
	port   int

	conn   net.Conn
	out    Output
	filter *Filter
	log    *slog.Logger

	done      chan struct{} // closed by Close
	closeOnce sync.Once
	connOnce  sync.Once
}

// SessionConfig contains configuration for creating a session.
type SessionConfig struct {
	Output Output
	Filter *Filter
	Log    *slog.Logger
}

// NewSession creates a new session for the given connection.
func NewSession(id string, conn net.Conn, cfg *SessionConfig) *Session {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	host, port, client := clientID(conn.RemoteAddr())
	return &Session{
		ID:     id,
		Client: client,
		host:   host,
		port:   port,
		conn:   conn,
		out:    cfg.Output,
		filter: cfg.Filter,
		log:    log.With("session", id, "client", client),
		done:   make(chan struct{}),
	}
}

// clientID derives the peer host, port and "host:port" identifier.
func clientID(addr net.Addr) (string, int, string) {
	if addr == nil {
		return "", 0, ""
	}
	if tcp, ok := addr.(*net.TCPAddr); ok {
		host := tcp.IP.String()
		return host, tcp.Port, host + ":" + strconv.Itoa(tcp.Port)
	}
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String(), 0, addr.String()
	}
	p, _ := strconv.Atoi(port)
	return host, p, host + ":" + port
}

// Run writes the start marker and then every line read from the
// connection until end of stream, at which point it closes the connection
// and writes the end marker.
//
// A read error other than end of stream closes the connection and is
// returned; no end marker is written. A session stopped with Close
// returns nil, and one closed before Run writes nothing.
func (s *Session) Run() error {
	select {
	case <-s.done:
		s.closeConn()
		return nil
	default:
	}
	s.marker()

	r := bufio.NewReader(s.conn)
	for {
		line, err := r.ReadBytes('\n')
		if err == nil {
			s.line(line)
			continue
		}
		if err == io.EOF {
			if len(line) > 0 {
				s.line(append(line, '\n'))
			}
			s.closeConn()
			s.marker()
			return nil
		}

		s.closeConn()
		select {
		case <-s.done:
			return nil
		default:
		}
		return fmt.Errorf("read error: %w", err)
	}
}

// Close stops the session by closing its connection.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	return s.closeConn()
}

func (s *Session) closeConn() error {
	var err error
	s.connOnce.Do(func() {
		err = s.conn.Close()
	})
	return err
}

func (s *Session) marker() {
	if err := s.out.Marker(); err != nil {
		s.log.Error("output error", "error", err)
	}
}

func (s *Session) line(line []byte) {
	ok, err := s.filter.Match(s.Client, s.host, s.port, line)
	if err != nil {
		s.log.Debug("filter error", "filter", s.filter.String(), "error", err)
	}
	if !ok {
		return
	}
	if err := s.out.Line(s.Client, line); err != nil {
		s.log.Error("output error", "error", err)
	}
}
