package server

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter selects which lines a session writes. It is compiled once and
// shared by all sessions.
//
// The expression sees client, host, port and line (including its line
// terminator) and must evaluate to a bool, for example
//
//	line contains "ERROR" && host == "10.0.0.7"
type Filter struct {
	src string
	prg *vm.Program
}

func filterEnv(client, host string, port int, line []byte) map[string]any {
	return map[string]any{
		"client": client,
		"host":   host,
		"port":   port,
		"line":   string(line),
	}
}

// NewFilter compiles src. An empty src yields a nil Filter, which matches
// every line.
func NewFilter(src string) (*Filter, error) {
	if src == "" {
		return nil, nil
	}
	prg, err := expr.Compile(src, expr.Env(filterEnv("", "", 0, nil)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", src, err)
	}
	return &Filter{src: src, prg: prg}, nil
}

// String returns the filter source.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.src
}

// Match reports whether line should be written.
func (f *Filter) Match(client, host string, port int, line []byte) (bool, error) {
	if f == nil {
		return true, nil
	}
	res, err := expr.Run(f.prg, filterEnv(client, host, port, line))
	if err != nil {
		return true, err
	}
	ok, _ := res.(bool)
	return ok, nil
}
