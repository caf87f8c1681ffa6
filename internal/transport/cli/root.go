// Package cli implements the ulidgen command line: generation, inspection and the serve subcommand.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/go-ulidgen/internal/application/entropy"
	"github.com/go-ulidgen/internal/application/generator"
	"github.com/go-ulidgen/internal/application/sequencer"
	"github.com/go-ulidgen/internal/application/timestamp"
	"github.com/go-ulidgen/internal/config"
	"github.com/go-ulidgen/internal/domain"
	"github.com/go-ulidgen/internal/pkg/id"
	"github.com/go-ulidgen/internal/pkg/logging"
)

const (
	programName  = "ulidgen"
	commandServe = "serve"

	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Env carries the process surroundings. Nil Clock and Entropy select the wall clock and crypto/rand.
type Env struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Version string
	Clock   timestamp.Clock
	Entropy entropy.Source
}

// Execute runs ulidgen with args (without the program name) and returns the process exit code.
func Execute(ctx context.Context, args []string, env Env) int {
	if env.Config == nil {
		env.Config = config.Load()
	}
	if env.Version == "" {
		env.Version = "dev"
	}
	if len(args) > 0 && args[0] == commandServe {
		return executeServe(ctx, args[1:], env)
	}
	return executeRoot(ctx, args, env)
}

type rootOptions struct {
	count       int
	lowercase   bool
	timestampMs uint64
	datetime    string
	inspect     string
	verbose     bool
	version     bool
}

func executeRoot(ctx context.Context, args []string, env Env) int {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printUsage(env.Stderr) }

	var opts rootOptions
	fs.IntVar(&opts.count, "n", 1, "number of ULIDs to generate")
	fs.IntVar(&opts.count, "count", 1, "number of ULIDs to generate")
	fs.BoolVar(&opts.lowercase, "l", false, "print lower-case ULIDs")
	fs.BoolVar(&opts.lowercase, "lowercase", false, "print lower-case ULIDs")
	fs.Uint64Var(&opts.timestampMs, "timestamp", 0, "pin the timestamp to `MS` milliseconds since the Unix epoch")
	fs.StringVar(&opts.datetime, "datetime", "", "pin the timestamp to an RFC 3339 `DATETIME`")
	fs.StringVar(&opts.inspect, "inspect", "", "decode `ULID` instead of generating")
	fs.BoolVar(&opts.verbose, "verbose", false, "write debug logs to stderr")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		return usageError(env.Stderr, fmt.Sprintf("unexpected argument: %s", fs.Arg(0)))
	}
	if opts.version {
		_, _ = fmt.Fprintf(env.Stdout, "%s %s\n", programName, env.Version)
		return exitOK
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if msg := checkConflicts(set, opts); msg != "" {
		return usageError(env.Stderr, msg)
	}

	logger, flush, err := newLogger(env, opts.verbose)
	if err != nil {
		return usageError(env.Stderr, err.Error())
	}
	defer flush()

	svc := generator.NewService(generator.ServiceDeps{
		Resolver:  timestamp.NewResolver(env.Clock),
		Sequencer: sequencer.New(entropySource(env)),
		Logger:    logger,
	})

	if set["inspect"] {
		return runInspect(ctx, svc, opts.inspect, env)
	}

	req := domain.GenerationRequest{Count: opts.count, Case: domain.CaseUpper}
	if opts.lowercase {
		req.Case = domain.CaseLower
	}
	if set["timestamp"] {
		req.TimestampMs = &opts.timestampMs
	}
	if set["datetime"] {
		req.Datetime = &opts.datetime
	}
	return runGenerate(ctx, svc, req, env)
}

// checkConflicts returns a usage message for an invalid flag combination, or "".
func checkConflicts(set map[string]bool, opts rootOptions) string {
	if set["timestamp"] && set["datetime"] {
		return "--timestamp and --datetime cannot be used together"
	}
	if set["inspect"] {
		for _, name := range []string{"timestamp", "datetime", "count", "n", "lowercase", "l"} {
			if set[name] {
				return fmt.Sprintf("--inspect cannot be used with %s", flagDisplay(name))
			}
		}
		return ""
	}
	if opts.count <= 0 {
		return "--count must be a positive integer"
	}
	return ""
}

func flagDisplay(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

func runGenerate(ctx context.Context, svc generator.Service, req domain.GenerationRequest, env Env) int {
	ulids, err := svc.Generate(ctx, req)
	if err != nil {
		return reportError(env.Stderr, err)
	}
	w := bufio.NewWriter(env.Stdout)
	for _, u := range ulids {
		_, _ = w.WriteString(id.Encode(u, req.Case))
		_ = w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return reportError(env.Stderr, err)
	}
	return exitOK
}

func runInspect(ctx context.Context, svc generator.Service, s string, env Env) int {
	res, err := svc.Inspect(ctx, s)
	if err != nil {
		return reportError(env.Stderr, err)
	}
	_, err = fmt.Fprintf(env.Stdout, "ULID:      %s\nTimestamp: %s\nUnix ms:   %d\nRandom:    %s\n",
		res.Canonical, res.Time.Format(domain.TimeLayout), res.UnixMilli, res.Random.Hex())
	if err != nil {
		return reportError(env.Stderr, err)
	}
	return exitOK
}

func newLogger(env Env, verbose bool) (*slog.Logger, func(), error) {
	level := env.Config.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(env.Stderr, logging.Options{
		Level:             level,
		SentryDSN:         env.Config.Sentry.DSN,
		SentryEnvironment: env.Config.Sentry.Environment,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	flush := func() {}
	if env.Config.Sentry.DSN != "" {
		flush = func() { sentry.Flush(2 * time.Second) }
	}
	return logger, flush, nil
}

func entropySource(env Env) entropy.Source {
	if env.Entropy != nil {
		return env.Entropy
	}
	return entropy.NewSecureSource()
}

func usageError(stderr io.Writer, msg string) int {
	_, _ = fmt.Fprintf(stderr, "%s: %s\n", programName, msg)
	printUsage(stderr)
	return exitUsage
}

// reportError prints err and maps it to an exit code. Request-shape errors are usage errors.
func reportError(stderr io.Writer, err error) int {
	_, _ = fmt.Fprintf(stderr, "%s: %v\n", programName, err)
	if errors.Is(err, domain.ErrConflictingTimestampSource) || errors.Is(err, domain.ErrInvalidRequest) {
		return exitUsage
	}
	return exitError
}
