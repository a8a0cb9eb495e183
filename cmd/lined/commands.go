package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "lined").
		WithSynopsis("lined [-addr <addr>] [-config <file>] [-filter <expr>]").
		WithDescription("lined accepts TCP connections and logs each received line prefixed with the peer address.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return lined(cfg, cc, args)
		})
}
