package server

import (
	"log/slog"
)

// Output receives session markers and received lines.
// Implementations must be safe for concurrent use and write each call
// as a single unit.
type Output interface {
	Marker() error
	Line(client string, line []byte) error
}

// Spec holds the runtime specification for the server.
// Config contains the serializable settings loaded from a file.
type Spec struct {
	Config *Config
	Output Output
	Filter *Filter
	Log    *slog.Logger
}
