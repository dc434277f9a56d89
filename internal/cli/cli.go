// Package cli runs the command line tools: rcgconvert, rcgsplit and rcggen.
// Each main parses its flags over the loaded configuration and hands off to
// a Run function here.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/okian/rcg/internal/config"
	"github.com/okian/rcg/pkg/logger"
)

// SetupLogging reinitializes the global logger from cfg.
func SetupLogging(ctx context.Context, cfg *config.Config) error {
	if err := logger.Init(logger.WithJSON(cfg.LogFormat == "json")); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel),
			logger.Error(err),
		)
		_ = logger.SetLevelString("info")
	}
	return nil
}

// Usage returns a flag.Usage function printing help followed by the flag
// defaults of fs.
func Usage(w io.Writer, help string, fs *flag.FlagSet) func() {
	return func() {
		_, _ = io.WriteString(w, help)
		fs.SetOutput(w)
		fs.PrintDefaults()
	}
}

// ConvertHelp introduces rcgconvert.
const ConvertHelp = `rcgconvert converts RoboCup game logs between revisions 1 to 5.

Usage:
  rcgconvert [options] input...

With one input, -o names the output file (default: <input>.v<N>.rcg next to
the input). With several inputs, -o names an output directory and the files
are converted concurrently. "-" reads stdin or writes stdout. Compressed
input is detected; .gz and .zst outputs are compressed.

Configuration is read from $RCG_CONFIG (YAML) and RCG_* variables; flags
override both.

Options:
`

// SplitHelp introduces rcgsplit.
const SplitHelp = `rcgsplit cuts a cycle range out of a RoboCup game log, keeping its revision.

Usage:
  rcgsplit -c START-END [options] input

END may be omitted ("3000-") to keep everything from START on. The output
defaults to <input>.<range>.rcg next to the input.

Options:
`

// GenerateHelp introduces rcggen.
const GenerateHelp = `rcggen writes a deterministic synthetic RoboCup game log.

Usage:
  rcggen [options]

Options:
`
