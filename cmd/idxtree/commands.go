package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/subcommands"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/zinc"
	"github.com/npillmayer/zinc/indexed"
	"github.com/npillmayer/zinc/refs"
)

// tracer traces with key 'zinc.idxtree'.
func tracer() tracing.Trace {
	return tracing.Select("zinc.idxtree")
}

// treeFlags are the flags common to all commands.
type treeFlags struct {
	order   int
	numeric bool
	trace   string
	out     io.Writer
}

func (tf *treeFlags) setFlags(f *flag.FlagSet) {
	f.IntVar(&tf.order, "order", indexed.DefaultOrder, "order of the tree; nodes hold up to 2*order entries")
	f.BoolVar(&tf.numeric, "numeric", false, "order keys numerically")
	f.StringVar(&tf.trace, "trace", "Error", "trace level (Error, Info, Debug)")
}

// prepare configures tracing and leak checking and creates a registry.
func (tf *treeFlags) prepare() (*indexed.Registry[string, *entry], error) {
	level := tracing.TraceLevelFromString(tf.trace)
	for _, key := range []string{"zinc.indexed", "zinc.refs", "zinc.idxtree"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	if tf.out == nil {
		tf.out = os.Stdout
	}
	refs.SetLeakMode(refs.LeaksLogError)
	return indexed.NewRegistry[string, *entry](keyOrder(tf.numeric))
}

var headline = color.New(color.FgBlue, color.Bold)

func (tf *treeFlags) show(title string, list *entryList) {
	headline.Fprintln(tf.out, title)
	fmt.Fprint(tf.out, list.Dump())
	if err := list.Check(); err != nil {
		color.New(color.FgRed).Fprintf(tf.out, "invalid tree: %v\n", err)
	}
}

// finish destroys lists, releases entries and reports leaked entries.
func (tf *treeFlags) finish(entries []*entry, lists ...*entryList) subcommands.ExitStatus {
	status := subcommands.ExitSuccess
	for _, list := range lists {
		if err := list.Destroy(); err != nil {
			fmt.Fprintf(tf.out, "destroy: %v\n", err)
			status = subcommands.ExitFailure
		}
	}
	release(entries)
	for _, leak := range refs.DoLeakCheck() {
		color.New(color.FgRed).Fprintf(tf.out, "leak: %s\n", leak)
		status = subcommands.ExitFailure
	}
	refs.ResetLeakCheck()
	return status
}

func (tf *treeFlags) fail(err error) subcommands.ExitStatus {
	color.New(color.FgRed).Fprintf(tf.out, "error: %v\n", err)
	return subcommands.ExitFailure
}

// --- build -----------------------------------------------------------------

type buildCmd struct {
	treeFlags
}

func (*buildCmd) Name() string     { return "build" }
func (*buildCmd) Synopsis() string { return "build a list from keys and print its tree" }
func (*buildCmd) Usage() string {
	return `build [-order n] [-numeric] key…
  Adds an entry per key, in the order given, and prints the resulting tree.
`
}

func (cmd *buildCmd) SetFlags(f *flag.FlagSet) {
	cmd.setFlags(f)
}

func (cmd *buildCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	reg, err := cmd.prepare()
	if err != nil {
		return cmd.fail(err)
	}
	list, entries, err := buildList(reg, cmd.order, f.Args())
	if err != nil {
		return cmd.fail(err)
	}
	cmd.show("build", list)
	return cmd.finish(entries, list)
}

// --- remove ----------------------------------------------------------------

type removeCmd struct {
	treeFlags
	drop string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "build a list, then remove some of its entries" }
func (*removeCmd) Usage() string {
	return `remove [-order n] [-numeric] -drop k1,k2,… key…
  Builds a list from keys, then removes the entries listed by -drop, one by one.
`
}

func (cmd *removeCmd) SetFlags(f *flag.FlagSet) {
	cmd.setFlags(f)
	f.StringVar(&cmd.drop, "drop", "", "comma separated keys to remove")
}

func (cmd *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 || cmd.drop == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	reg, err := cmd.prepare()
	if err != nil {
		return cmd.fail(err)
	}
	list, entries, err := buildList(reg, cmd.order, f.Args())
	if err != nil {
		return cmd.fail(err)
	}
	cmd.show("before", list)
	status := subcommands.ExitSuccess
	for _, key := range strings.Split(cmd.drop, ",") {
		e, ok := list.FindByIdentifier(key).Get()
		if !ok {
			fmt.Fprintf(cmd.out, "no entry %q\n", key)
			status = subcommands.ExitFailure
			continue
		}
		if err := list.Remove(e); err != nil {
			status = cmd.fail(err)
		}
	}
	cmd.show("after", list)
	if s := cmd.finish(entries, list); s != subcommands.ExitSuccess {
		return s
	}
	return status
}

// --- rename ----------------------------------------------------------------

type renameCmd struct {
	treeFlags
	from, to string
}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "change the key of an entry held by two lists" }
func (*renameCmd) Usage() string {
	return `rename [-order n] [-numeric] -from k -to k' key…
  Builds a list from keys together with a copy of order 1, then changes the
  key of entry k to k'. Both lists are re-ordered.
`
}

func (cmd *renameCmd) SetFlags(f *flag.FlagSet) {
	cmd.setFlags(f)
	f.StringVar(&cmd.from, "from", "", "key of the entry to rename")
	f.StringVar(&cmd.to, "to", "", "new key")
}

func (cmd *renameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 || cmd.from == "" || cmd.to == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	reg, err := cmd.prepare()
	if err != nil {
		return cmd.fail(err)
	}
	list, entries, err := buildList(reg, cmd.order, f.Args())
	if err != nil {
		return cmd.fail(err)
	}
	narrow, err := reg.NewList(indexed.Order(1))
	if err != nil {
		return cmd.fail(err)
	}
	if err = narrow.CopyFrom(list); err != nil {
		cmd.finish(entries, list, narrow)
		return cmd.fail(err)
	}
	e, ok := list.FindByIdentifier(cmd.from).Get()
	if !ok {
		fmt.Fprintf(cmd.out, "no entry %q\n", cmd.from)
		cmd.finish(entries, list, narrow)
		return subcommands.ExitFailure
	}
	status := subcommands.ExitSuccess
	change, err := reg.BeginChange(e)
	if err != nil {
		status = cmd.fail(err)
	} else {
		e.key = cmd.to
		if err = change.End(); err != nil {
			status = cmd.fail(err)
		}
		tracer().Infof("renamed %q to %q in %d lists", cmd.from, cmd.to, change.Lists())
	}
	cmd.show("list", list)
	cmd.show("copy", narrow)
	if s := cmd.finish(entries, list, narrow); s != subcommands.ExitSuccess {
		return s
	}
	return status
}

// --- prune -----------------------------------------------------------------

type pruneCmd struct {
	treeFlags
	prefix string
	invert bool
}

func (*pruneCmd) Name() string     { return "prune" }
func (*pruneCmd) Synopsis() string { return "remove all entries with a given key prefix" }
func (*pruneCmd) Usage() string {
	return `prune [-order n] [-numeric] [-invert] -prefix p key…
  Builds a list from keys, then removes every entry whose key starts with p
  (or, with -invert, does not start with p) in a single pass.
`
}

func (cmd *pruneCmd) SetFlags(f *flag.FlagSet) {
	cmd.setFlags(f)
	f.StringVar(&cmd.prefix, "prefix", "", "key prefix of entries to remove")
	f.BoolVar(&cmd.invert, "invert", false, "remove entries not matching the prefix")
}

func (cmd *pruneCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	reg, err := cmd.prepare()
	if err != nil {
		return cmd.fail(err)
	}
	list, entries, err := buildList(reg, cmd.order, f.Args())
	if err != nil {
		return cmd.fail(err)
	}
	cmd.show("before", list)
	hasPrefix := func(key string) bool { return strings.HasPrefix(key, cmd.prefix) }
	pred := zinc.On((*entry).Identifier, hasPrefix)
	if cmd.invert {
		pred = zinc.Not(pred)
	}
	n, err := list.RemoveThat(pred)
	if err != nil {
		cmd.finish(entries, list)
		return cmd.fail(err)
	}
	fmt.Fprintf(cmd.out, "pruned %d entries\n", n)
	cmd.show("after", list)
	return cmd.finish(entries, list)
}
