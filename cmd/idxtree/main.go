/*
Command idxtree builds indexed lists from the command line and prints their
tree structure. It is a playground for exploring how lists split, shrink and
re-order when objects are added, removed or change their identifiers.

Usage:

    idxtree build  [-order n] [-numeric] key…
    idxtree remove [-order n] [-numeric] -drop k1,k2 key…
    idxtree rename [-order n] [-numeric] -from k -to k' key…
    idxtree prune  [-order n] [-numeric] [-invert] -prefix p key…

All commands accept -trace (Error, Info or Debug) to set the trace level of
the list packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"flag"
	"os"

	"github.com/fatih/color"
	"github.com/google/subcommands"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"golang.org/x/term"
)

func main() {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&buildCmd{}, "lists")
	subcommands.Register(&removeCmd{}, "lists")
	subcommands.Register(&renameCmd{}, "lists")
	subcommands.Register(&pruneCmd{}, "lists")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
