package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/lined/system/lined/server"
)

type MainConfig struct {
	Addr       string `cli:"name=addr desc='TCP listen address (default :12321)'"`
	ConfigFile string `cli:"name=config desc='configuration file (yaml)'"`
	Marker     string `cli:"name=marker desc='session separator line'"`
	Color      bool   `cli:"name=color desc='color the client prefix'"`
	Filter     string `cli:"name=filter desc='expression selecting lines to log'"`
	Gops       bool   `cli:"name=gops desc='start the gops diagnostics agent'"`
	Debug      bool   `cli:"name=debug desc='debug logging'"`

	Main *cli.Command
}

// optSet reports whether the named option was given on the command line.
func (cfg *MainConfig) optSet(name string) bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

// serverConfig loads the config file, if any, and applies command line
// overrides on top of it.
func (cfg *MainConfig) serverConfig() (*server.Config, error) {
	sc := server.DefaultConfig()
	if cfg.ConfigFile != "" {
		var err error
		sc, err = server.LoadConfig(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
	}
	cfg.override(sc, cfg.optSet)
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (cfg *MainConfig) override(sc *server.Config, set func(string) bool) {
	if cfg.Addr != "" {
		sc.Addr = cfg.Addr
	}
	if cfg.Marker != "" {
		sc.Marker = cfg.Marker
	}
	if cfg.Filter != "" {
		sc.Filter = cfg.Filter
	}
	if set("color") {
		c := cfg.Color
		sc.Color = &c
	}
}

// useColor honors an explicit color setting and otherwise colors only
// terminal output.
func useColor(w io.Writer, color *bool) bool {
	if color != nil {
		return *color
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
