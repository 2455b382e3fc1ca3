// Package cmd implements the corelat command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	rtdebug "runtime/debug"
	"strconv"
	"time"

	"corelat/affinity"
	"corelat/bench"
	"corelat/config"
	"corelat/constants"
	"corelat/debug"
	"corelat/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const usageLine = "corelat <main_core> <worker_core> [timeout_seconds]"

// app carries the per-invocation wiring so tests can swap writers and binders.
type app struct {
	v      *viper.Viper
	stdout io.Writer
	opts   []bench.Option
}

func newRootCommand(a *app) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   usageLine,
		Short: "Measure core-to-core handshake latency over shared atomic counters",
		Long: `corelat pins the calling thread to <main_core> and a responder thread to
<worker_core>, then has them alternate increments of two shared counters in a
pure busy-spin. It reports elapsed time, nanoseconds per operation and
operations per second, where one round is two operations.

With [timeout_seconds] the run also stops at that wall-clock deadline and the
report reflects the rounds actually completed.`,
		Args:          positionalArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.run,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	config.Flags(cmd.Flags())
	if err := config.Bind(a.v, cmd.Flags()); err != nil {
		return nil, err
	}
	return cmd, nil
}

func positionalArgs(_ *cobra.Command, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return &UsageError{}
	}
	return nil
}

func (a *app) run(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return &UsageError{Err: err}
	}
	debug.SetVerbose(cfg.Verbose)

	bc, err := parseArgs(args)
	if err != nil {
		return err
	}
	bc.Iterations = cfg.Iterations

	if !cfg.GC {
		// Collect now, then keep a stop-the-world pause out of the timed region.
		runtime.GC()
		prev := rtdebug.SetGCPercent(-1)
		defer rtdebug.SetGCPercent(prev)
		debug.DropMessage("GC", "disabled for the run")
	}

	res, err := bench.Run(bc, a.opts...)
	if err != nil {
		return err
	}
	return report.Write(a.stdout, res, cfg.Format)
}

// parseArgs turns the positional arguments into a run configuration.
func parseArgs(args []string) (bench.Config, error) {
	mainCore, err := parseUint("main_core", args[0], 31)
	if err != nil {
		return bench.Config{}, err
	}
	workerCore, err := parseUint("worker_core", args[1], 31)
	if err != nil {
		return bench.Config{}, err
	}

	cfg := bench.DefaultConfig(int(mainCore), int(workerCore))
	if len(args) == 3 {
		secs, err := parseUint("timeout_seconds", args[2], 32)
		if err != nil {
			return bench.Config{}, err
		}
		cfg.Bounded = true
		cfg.Timeout = time.Duration(secs) * time.Second
	}
	return cfg, nil
}

func parseUint(name, s string, bits int) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			err = ne.Err
		}
		return 0, &ArgError{Name: name, Value: s, Err: err}
	}
	return n, nil
}

// Execute runs the command line against os.Args and returns the process exit code.
func Execute() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer, opts ...bench.Option) int {
	prev := debug.SetOutput(stderr)
	defer debug.SetOutput(prev)
	defer debug.SetVerbose(false)

	a := &app{v: config.New(), stdout: stdout, opts: opts}
	cmd, err := newRootCommand(a)
	if err != nil {
		debug.DropError("corelat", err)
		return constants.ExitUsage
	}
	if args == nil {
		// cobra falls back to os.Args on a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return exitCode(cmd.Execute(), stderr)
}

// exitCode reports err on stderr and maps it to a process exit code.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return constants.ExitOK
	}

	var usage *UsageError
	var arg *ArgError
	var pin *affinity.Error
	switch {
	case errors.As(err, &usage):
		if usage.Err != nil {
			debug.DropError("corelat", usage.Err)
		}
		fmt.Fprintln(stderr, "usage: "+usageLine)
		return constants.ExitUsage
	case errors.As(err, &arg):
		debug.DropError("corelat", arg)
		return constants.ExitUsage
	case errors.As(err, &pin):
		debug.DropError("corelat", err)
		return constants.ExitAffinity
	}
	debug.DropError("corelat", err)
	return 1
}
