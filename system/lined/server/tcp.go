package server

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

const (
	acceptBackoffMin = 5 * time.Millisecond
	acceptBackoffMax = time.Second
)

// TCPListener accepts TCP connections and runs a session for each one.
type TCPListener struct {
	listener net.Listener
	server   *Server

	// Session management
	sessions   map[string]*Session
	sessionsMu sync.RWMutex
	sessionSeq atomic.Int64

	// Shutdown
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewTCPListener binds addr. A failure to bind is returned as a *BindError.
func NewTCPListener(addr string, server *Server) (*TCPListener, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &BindError{Addr: addr, Err: err}
	}

	return &TCPListener{
		listener: listener,
		server:   server,
		sessions: make(map[string]*Session),
	}, nil
}

// Addr returns the listener's network address.
func (l *TCPListener) Addr() net.Addr {
	return l.listener.Addr()
}

// Serve accepts connections and creates sessions.
// Blocks until Close is called. Accept errors are logged and do not stop
// the loop.
func (l *TCPListener) Serve() error {
	log := l.server.Spec.Log
	log.Info("TCP listener started", "addr", l.listener.Addr().String())

	var backoff time.Duration
	for {
		conn, err := l.listener.Accept()
		if err != nil {
			if l.closed.Load() {
				return nil // Normal shutdown
			}
			if backoff == 0 {
				backoff = acceptBackoffMin
			} else {
				backoff = min(2*backoff, acceptBackoffMax)
			}
			log.Error("accept error", "error", err, "retryIn", backoff)
			time.Sleep(backoff)
			continue
		}
		backoff = 0

		if !l.track() {
			conn.Close()
			return nil
		}
		go l.handleConnection(conn)
	}
}

// track counts a connection's handler in the WaitGroup unless Close has
// started. The registry lock orders this Add before Close's Wait.
func (l *TCPListener) track() bool {
	l.sessionsMu.Lock()
	defer l.sessionsMu.Unlock()
	if l.closed.Load() {
		return false
	}
	l.wg.Add(1)
	return true
}

// handleConnection creates and runs a session for the connection.
func (l *TCPListener) handleConnection(conn net.Conn) {
	defer l.wg.Done()

	seq := l.sessionSeq.Add(1)
	sessionID := fmt.Sprintf("tcp-%d", seq)
	spec := &l.server.Spec

	session := NewSession(sessionID, conn, &SessionConfig{
		Output: spec.Output,
		Filter: spec.Filter,
		Log:    spec.Log,
	})
	spec.Log.Debug("new TCP connection", "session", sessionID, "remote", session.Client)

	l.sessionsMu.Lock()
	l.sessions[sessionID] = session
	l.sessionsMu.Unlock()

	// Close may have swept the registry before this session was added.
	if l.closed.Load() {
		session.Close()
	}

	if err := session.Run(); err != nil {
		spec.Log.Error("session error", "session", sessionID, "error", err)
	}

	l.sessionsMu.Lock()
	delete(l.sessions, sessionID)
	l.sessionsMu.Unlock()

	spec.Log.Debug("session ended", "session", sessionID)
}

// Close shuts down the listener and all sessions.
func (l *TCPListener) Close() error {
	l.sessionsMu.Lock()
	already := l.closed.Swap(true)
	l.sessionsMu.Unlock()
	if already {
		return nil
	}

	// Close listener to stop accepting new connections
	if err := l.listener.Close(); err != nil {
		l.server.Spec.Log.Error("error closing listener", "error", err)
	}

	l.sessionsMu.RLock()
	for _, session := range l.sessions {
		session.Close()
	}
	l.sessionsMu.RUnlock()

	l.wg.Wait()

	l.server.Spec.Log.Info("TCP listener stopped")
	return nil
}

// SessionCount returns the number of active sessions.
func (l *TCPListener) SessionCount() int {
	l.sessionsMu.RLock()
	defer l.sessionsMu.RUnlock()
	return len(l.sessions)
}
