package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
	"github.com/signadot/lined/system/lined/server"
	"github.com/signadot/lined/system/lined/sink"
)

func lined(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %v", cli.ErrUsage, args)
	}

	sc, err := cfg.serverConfig()
	if err != nil {
		return err
	}
	filter, err := server.NewFilter(sc.Filter)
	if err != nil {
		return err
	}
	log := newLog(os.Stderr, cfg.Debug)

	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.Warn("gops agent failed", "error", err)
		} else {
			defer agent.Close()
		}
	}

	srv := server.New(&server.Spec{
		Config: sc,
		Output: sink.New(cc.Out, sink.WithMarker(sc.Marker), sink.WithColor(useColor(cc.Out, sc.Color))),
		Filter: filter,
		Log:    log,
	})

	if err := srv.StartTCP(sc.Addr); err != nil {
		return err
	}
	defer srv.StopTCP()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutting down", "signal", sig.String())

	return nil
}
