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

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env); flags override it.
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 2
	}

	var (
		version  = flag.Int("v", cfg.OutputVersion, "Output log version (1-5)")
		output   = flag.String("o", "", "Output file, or output directory for several inputs")
		codec    = flag.String("z", cfg.Compression, "Output compression: auto, none, gzip, zstd")
		level    = flag.Int("level", cfg.CompressionLevel, "Compression level (0 = codec default)")
		workers  = flag.Int("workers", cfg.Workers, "Concurrent conversions")
		strict   = flag.Bool("strict", cfg.StrictParams, "Fail on unknown or malformed parameters")
		truncate = flag.Bool("truncate", !cfg.StrictMessages, "Truncate messages too long for binary versions")
		metrics  = flag.String("metrics", cfg.MetricsFile, "Write Prometheus textfile metrics here")
		verbose  = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Usage = cli.Usage(os.Stderr, cli.ConvertHelp, flag.CommandLine)
	flag.Parse()

	cfg.OutputVersion = *version
	cfg.Compression = *codec
	cfg.CompressionLevel = *level
	cfg.Workers = *workers
	cfg.StrictParams = *strict
	cfg.StrictMessages = !*truncate
	cfg.MetricsFile = *metrics
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		flag.Usage()
		return 2
	}
	if err := cli.SetupLogging(ctx, cfg); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		return 1
	}

	if flag.NArg() == 0 {
		flag.Usage()
		return 2
	}

	if err := cli.RunConvert(ctx, cfg, cli.ConvertConfig{Inputs: flag.Args(), Output: *output}); err != nil {
		logger.Get().Error(ctx, "conversion failed", logger.Error(err))
		return 1
	}
	return 0
}
