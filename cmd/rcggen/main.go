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

// Default generator settings.
const (
	defaultShows       = 6000
	defaultPlayerTypes = 18
	defaultMessages    = 100
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
		version     = flag.Int("v", cfg.OutputVersion, "Log version to write (1-5)")
		output      = flag.String("o", "-", "Output file")
		codec       = flag.String("z", cfg.Compression, "Output compression: auto, none, gzip, zstd")
		shows       = flag.Int("shows", defaultShows, "Number of shows")
		seed        = flag.Uint64("seed", 1, "Random seed")
		start       = flag.Int("start", 1, "Time of the first show")
		left        = flag.String("left", "", "Left team name")
		right       = flag.String("right", "", "Right team name")
		playerTypes = flag.Int("types", defaultPlayerTypes, "Player types to write")
		noParams    = flag.Bool("no-params", false, "Omit server, player and player type parameters")
		messages    = flag.Int("msg-every", defaultMessages, "Write a message every n shows (0 disables)")
	)
	flag.Usage = cli.Usage(os.Stderr, cli.GenerateHelp, flag.CommandLine)
	flag.Parse()

	cfg.OutputVersion = *version
	cfg.Compression = *codec
	if err := cfg.Validate(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		return 2
	}
	if err := cli.SetupLogging(ctx, cfg); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		return 1
	}

	gc := cli.GenerateConfig{
		Output:      *output,
		Shows:       *shows,
		Seed:        *seed,
		StartTime:   *start,
		LeftTeam:    *left,
		RightTeam:   *right,
		PlayerTypes: *playerTypes,
		NoParams:    *noParams,
		Messages:    *messages,
	}
	if err := cli.RunGenerate(ctx, cfg, gc); err != nil {
		logger.Get().Error(ctx, "generation failed", logger.Error(err))
		return 1
	}
	return 0
}
