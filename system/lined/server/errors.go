package server

import "fmt"

// BindError is returned when the listen address cannot be acquired,
// for example because the port is in use or binding it is not permitted.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to listen on %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}
