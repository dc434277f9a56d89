package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/okian/rcg/internal/adapters/mq/queue"
	"github.com/okian/rcg/internal/adapters/serializer"
	"github.com/okian/rcg/internal/adapters/stream"
	"github.com/okian/rcg/internal/app"
	"github.com/okian/rcg/internal/config"
	"github.com/okian/rcg/internal/domain/model"
	"github.com/okian/rcg/internal/synth"
	"github.com/okian/rcg/pkg/logger"
	"github.com/okian/rcg/pkg/metrics"
)

// ConvertConfig holds the rcgconvert arguments.
type ConvertConfig struct {
	Inputs []string
	// Output is a file for one input and a directory for several.
	Output string
}

// SplitConfig holds the rcgsplit arguments.
type SplitConfig struct {
	Input  string
	Output string
	Cycles string
}

// GenerateConfig holds the rcggen arguments.
type GenerateConfig struct {
	Output      string
	Shows       int
	Seed        uint64
	StartTime   int
	LeftTeam    string
	RightTeam   string
	PlayerTypes int
	NoParams    bool
	Messages    int
}

// ServiceOptions maps cfg onto app options.
func ServiceOptions(cfg *config.Config) ([]app.Option, error) {
	c, err := stream.ParseCompression(cfg.Compression)
	if err != nil {
		return nil, err
	}
	return []app.Option{
		app.WithOutputVersion(model.LogVersion(cfg.OutputVersion)),
		app.WithStrictParams(cfg.StrictParams),
		app.WithStrictMessages(cfg.StrictMessages),
		app.WithCompression(c),
		app.WithCompressionLevel(cfg.CompressionLevel),
	}, nil
}

// RunConvert converts every input to cfg.OutputVersion. It returns the
// joined errors of the failed inputs.
func RunConvert(ctx context.Context, cfg *config.Config, cc ConvertConfig) error {
	if len(cc.Inputs) == 0 {
		return ErrNoInput
	}
	multi := len(cc.Inputs) > 1
	if multi {
		if cc.Output == stream.StdPath {
			return fmt.Errorf("%w: several inputs cannot share stdout", ErrInvalidArgs)
		}
		for _, in := range cc.Inputs {
			if in == stream.StdPath {
				return fmt.Errorf("%w: stdin must be the only input", ErrInvalidArgs)
			}
		}
	}

	opts, err := ServiceOptions(cfg)
	if err != nil {
		return err
	}
	svc, err := app.New(opts...)
	if err != nil {
		return err
	}

	inputs := make(map[string]bool, len(cc.Inputs))
	for _, in := range cc.Inputs {
		inputs[absPath(in)] = true
	}

	jobs := make([]queue.Job, 0, len(cc.Inputs))
	outputs := make(map[string]string, len(cc.Inputs))
	for _, in := range cc.Inputs {
		out := cc.Output
		if multi || out == "" {
			out = OutputPath(in, svc.Target(), cc.Output)
		}
		if out != stream.StdPath && inputs[absPath(out)] {
			return fmt.Errorf("%w: output %s is an input", ErrInvalidArgs, out)
		}
		if prev, ok := outputs[out]; ok && out != stream.StdPath {
			return fmt.Errorf("%w: %s and %s both write %s", ErrInvalidArgs, prev, in, out)
		}
		outputs[out] = in
		jobs = append(jobs, queue.NewJob(in, out))
	}

	start := time.Now()
	results := app.RunBatch(ctx, svc, jobs,
		app.WithWorkers(cfg.Workers),
		app.WithQueueSize(cfg.QueueSize),
	)

	var errs []error
	var shows int
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		shows += r.Stats.Written[app.KindShow]
	}
	logger.Get().Info(ctx, "rcgconvert finished",
		logger.Int("files", len(results)),
		logger.Int("failed", len(errs)),
		logger.Int("shows", shows),
		logger.Any("duration", time.Since(start)),
	)

	writeMetrics(ctx, cfg)
	return errors.Join(errs...)
}

// RunSplit writes the cycles of sc.Cycles from sc.Input in its own revision.
func RunSplit(ctx context.Context, cfg *config.Config, sc SplitConfig) error {
	if sc.Input == "" {
		return ErrNoInput
	}
	r, err := app.ParseCycleRange(sc.Cycles)
	if err != nil {
		return err
	}

	opts, err := ServiceOptions(cfg)
	if err != nil {
		return err
	}
	svc, err := app.New(append(opts, app.WithInputVersion(), app.WithCycleRange(r))...)
	if err != nil {
		return err
	}

	out := sc.Output
	if out == "" {
		out = derivePath(sc.Input, r.String(), "")
	}
	stats, err := svc.ConvertFile(ctx, sc.Input, out)
	writeMetrics(ctx, cfg)
	if err != nil {
		return err
	}

	logger.Get().Info(ctx, "rcgsplit finished",
		logger.String("output", out),
		logger.String("cycles", r.String()),
		logger.Int("shows", stats.Written[app.KindShow]),
		logger.Int("skipped", stats.Skipped),
	)
	return nil
}

// RunGenerate writes a synthetic match in cfg.OutputVersion.
func RunGenerate(ctx context.Context, cfg *config.Config, gc GenerateConfig) error {
	ver := model.LogVersion(cfg.OutputVersion)
	ser, err := serializer.New(ver, serializer.WithStrictMessages(cfg.StrictMessages))
	if err != nil {
		return err
	}
	c, err := stream.ParseCompression(cfg.Compression)
	if err != nil {
		return err
	}

	opts := []synth.Option{
		synth.WithShows(gc.Shows),
		synth.WithSeed(gc.Seed),
		synth.WithStartTime(gc.StartTime),
		synth.WithMessages(gc.Messages),
	}
	if gc.LeftTeam != "" || gc.RightTeam != "" {
		opts = append(opts, synth.WithTeams(gc.LeftTeam, gc.RightTeam))
	}
	if !gc.NoParams {
		opts = append(opts, synth.WithParams(gc.PlayerTypes))
	}
	gen := synth.New(opts...)

	out := gc.Output
	if out == "" {
		out = stream.StdPath
	}
	w, err := stream.Create(out, stream.WithCompression(c), stream.WithLevel(cfg.CompressionLevel))
	if err != nil {
		return err
	}
	cw := &stream.CountingWriter{W: w}
	err = gen.Write(ctx, ser, cw)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("generate %s: %w", out, err)
	}

	metrics.RecordEncoded(strconv.Itoa(int(ver)), app.KindShow, gen.Config().Shows)
	metrics.RecordBytes(0, cw.N)
	writeMetrics(ctx, cfg)

	logger.Get().Info(ctx, "rcggen finished",
		logger.String("output", out),
		logger.String("version", ver.String()),
		logger.Int("shows", gen.Config().Shows),
		logger.Any("bytes_written", cw.N),
	)
	return nil
}

// OutputPath names the converted file for in: the input name without its
// .rcg extension, then .v<N>.rcg and the input's compression extension. An
// empty dir places it next to the input. Stdin maps to stdout.
func OutputPath(in string, ver model.LogVersion, dir string) string {
	return derivePath(in, "v"+strconv.Itoa(int(ver)), dir)
}

func derivePath(in, tag, dir string) string {
	if in == stream.StdPath {
		return stream.StdPath
	}
	base := filepath.Base(in)
	var comp string
	switch ext := strings.ToLower(filepath.Ext(base)); ext {
	case ".gz", ".zst", ".zstd":
		comp = filepath.Ext(base)
		base = strings.TrimSuffix(base, comp)
	}
	if strings.EqualFold(filepath.Ext(base), ".rcg") {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if dir == "" {
		dir = filepath.Dir(in)
	}
	return filepath.Join(dir, base+"."+tag+".rcg"+comp)
}

func writeMetrics(ctx context.Context, cfg *config.Config) {
	if cfg.MetricsFile == "" {
		return
	}
	if err := metrics.WriteToTextfile(cfg.MetricsFile); err != nil {
		logger.Get().Warn(ctx, "failed to write metrics file",
			logger.String("metrics_file", cfg.MetricsFile),
			logger.Error(err),
		)
	}
}

func absPath(p string) string {
	if p == stream.StdPath {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
