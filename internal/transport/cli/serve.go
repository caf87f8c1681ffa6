package cli

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"

	"github.com/go-ulidgen/internal/application/generator"
	"github.com/go-ulidgen/internal/application/sequencer"
	"github.com/go-ulidgen/internal/application/timestamp"
	"github.com/go-ulidgen/internal/pkg/logging"
	transporthttp "github.com/go-ulidgen/internal/transport/http"
)

func executeServe(ctx context.Context, args []string, env Env) int {
	fs := flag.NewFlagSet(commandServe, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printUsage(env.Stderr) }

	var (
		port    string
		verbose bool
	)
	fs.StringVar(&port, "port", env.Config.AppPort, "listen `PORT`")
	fs.BoolVar(&verbose, "verbose", false, "write debug logs to stderr")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 0 {
		return usageError(env.Stderr, fmt.Sprintf("unexpected argument: %s", fs.Arg(0)))
	}

	logger, flush, err := newLogger(env, verbose)
	if err != nil {
		return usageError(env.Stderr, err.Error())
	}
	defer flush()

	svc := generator.NewService(generator.ServiceDeps{
		Resolver:  timestamp.NewResolver(env.Clock),
		Sequencer: sequencer.New(entropySource(env)),
		Logger:    logger,
		MaxCount:  env.Config.MaxBatchSize,
	})

	router := transporthttp.NewRouter(ctx, env.Config, &transporthttp.Deps{Generator: svc, Logger: logger})
	srv := transporthttp.NewServer(net.JoinHostPort("", port), router)

	logging.Event(ctx, logger, slog.LevelInfo, "serve_configured",
		slog.String("env", env.Config.AppEnv), slog.Int("max_batch_size", env.Config.MaxBatchSize))

	if err := transporthttp.Run(ctx, srv, logger); err != nil {
		_, _ = fmt.Fprintf(env.Stderr, "%s: serve: %v\n", programName, err)
		return exitError
	}
	return exitOK
}
