package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/rcg/internal/cli"
	"github.com/okian/rcg/internal/config"
	"github.com/okian/rcg/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 2
	}

	var (
		cycles  = flag.String("c", "", "Cycle range START-END, START- or a single cycle")
		output  = flag.String("o", "", "Output file (default <input>.<range>.rcg)")
		codec   = flag.String("z", cfg.Compression, "Output compression: auto, none, gzip, zstd")
		metrics = flag.String("metrics", cfg.MetricsFile, "Write Prometheus textfile metrics here")
		verbose = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Usage = cli.Usage(os.Stderr, cli.SplitHelp, flag.CommandLine)
	flag.Parse()

	cfg.Compression = *codec
	cfg.MetricsFile = *metrics
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		return 2
	}
	if err := cli.SetupLogging(ctx, cfg); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		return 1
	}

	if flag.NArg() != 1 || *cycles == "" {
		flag.Usage()
		return 2
	}

	sc := cli.SplitConfig{Input: flag.Arg(0), Output: *output, Cycles: *cycles}
	if err := cli.RunSplit(ctx, cfg, sc); err != nil {
		logger.Get().Error(ctx, "split failed", logger.Error(err))
		return 1
	}
	return 0
}
