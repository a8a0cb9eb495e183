// Package server provides the TCP listener for lined.
//
// A [TCPListener] accepts connections and runs one [Session] per
// connection in its own goroutine. Each session reads newline-terminated
// lines and writes them to a shared [Output], prefixed with the peer's
// host and port and bracketed by session markers.
//
// # Related Packages
//
//   - github.com/signadot/lined/system/lined/sink - Output implementation
package server
