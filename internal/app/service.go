// Package app ties the codec together: a Driver re-encodes one parsed
// stream, a Service converts readers or files with logging and metrics, and
// RunBatch spreads many files over a worker pool.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/rcg/internal/adapters/mq/queue"
	"github.com/okian/rcg/internal/adapters/parser"
	"github.com/okian/rcg/internal/adapters/serializer"
	"github.com/okian/rcg/internal/adapters/stream"
	"github.com/okian/rcg/internal/domain/model"
	"github.com/okian/rcg/pkg/logger"
	"github.com/okian/rcg/pkg/metrics"
)

const readBufferSize = 64 * 1024

// Service converts logs to one target revision. It is safe for concurrent
// use; every conversion builds its own parser session, driver and
// serializer.
type Service struct {
	target         model.LogVersion
	keepVersion    bool
	cycles         *CycleRange
	strictParams   bool
	strictMessages bool
	compression    stream.Compression
	level          int

	parser *parser.Parser
	logger logger.Logger
}

// New constructs a Service. The default target is the latest revision.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		target:      model.Latest,
		compression: stream.CompressionAuto,
		level:       stream.DefaultLevel,
		logger:      logger.Get().Named("convert"),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cycles != nil {
		if err := s.cycles.Validate(); err != nil {
			return nil, err
		}
	}

	s.parser = parser.New(
		parser.WithLogger(s.logger.Named("parser")),
		parser.WithStrictParams(s.strictParams),
	)
	return s, nil
}

// Target returns the output revision. It is meaningless when the service
// keeps each input's revision.
func (s *Service) Target() model.LogVersion {
	return s.target
}

// Convert parses in and writes it to out in the target revision.
func (s *Service) Convert(ctx context.Context, in io.Reader, out io.Writer) (Stats, error) {
	runID := uuid.NewString()
	start := time.Now()
	log := s.logger

	cr := &stream.CountingReader{R: in}
	br := bufio.NewReaderSize(cr, readBufferSize)

	target := s.target
	if s.keepVersion {
		v, err := parser.Peek(br)
		if err != nil {
			return Stats{}, err
		}
		target = v
	}

	ser, err := serializer.New(target, serializer.WithStrictMessages(s.strictMessages))
	if err != nil {
		return Stats{}, err
	}

	var opts []DriverOption
	if s.cycles != nil {
		opts = append(opts, WithCycles(*s.cycles))
	}
	d := NewDriver(ser, out, opts...)

	err = s.parser.Parse(ctx, br, d)

	stats := d.Stats()
	stats.BytesRead = cr.N
	stats.Duration = time.Since(start)
	s.record(stats, err)

	fields := []logger.Field{
		logger.String("run_id", runID),
		logger.Int("input_version", stats.InputVersion),
		logger.Int("output_version", stats.OutputVersion),
		logger.Int("records_read", Total(stats.Read)),
		logger.Int("records_written", Total(stats.Written)),
		logger.Int("skipped", stats.Skipped),
		logger.Int("warnings", stats.Warnings),
		logger.Any("bytes_written", stats.BytesWritten),
		logger.Any("duration", stats.Duration),
	}
	if err != nil {
		if errors.Is(err, ErrSameVersion) {
			log.Error(ctx, "refusing same-version conversion", append(fields, logger.Error(err))...)
		} else {
			log.Error(ctx, "conversion failed", append(fields, logger.Error(err))...)
		}
		return stats, err
	}
	log.Info(ctx, "conversion finished", fields...)
	return stats, nil
}

// ConvertFile converts the file at inPath into outPath. Compressed input is
// detected; output compression follows the configured codec or the output
// extension. The output replaces outPath only when the conversion succeeds,
// and an output naming the input itself is refused.
func (s *Service) ConvertFile(ctx context.Context, inPath, outPath string) (stats Stats, err error) {
	if stream.SameFile(inPath, outPath) {
		return Stats{}, fmt.Errorf("%w: %s: %w", ErrConvertFailed, inPath, ErrSameFile)
	}

	in, err := stream.Open(inPath)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrConvertFailed, err)
	}
	defer func() { _ = in.Close() }()

	out, err := stream.CreatePending(outPath,
		stream.WithCompression(s.compression),
		stream.WithLevel(s.level),
	)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrConvertFailed, err)
	}

	stats, err = s.Convert(ctx, in, out)
	if err != nil {
		_ = out.Discard()
		return stats, fmt.Errorf("%w: %s: %w", ErrConvertFailed, inPath, err)
	}
	if err := out.Commit(); err != nil {
		return stats, fmt.Errorf("%w: %s: %w", ErrConvertFailed, inPath, err)
	}
	return stats, nil
}

// Process converts a batch job. It implements worker.Processor.
func (s *Service) Process(ctx context.Context, job queue.Job) error {
	_, err := s.ConvertFile(ctx, job.Input, job.Output)
	return err
}

func (s *Service) record(stats Stats, err error) {
	in := strconv.Itoa(stats.InputVersion)
	out := strconv.Itoa(stats.OutputVersion)
	for kind, n := range stats.Read {
		metrics.RecordDecoded(in, kind, n)
	}
	for kind, n := range stats.Written {
		metrics.RecordEncoded(out, kind, n)
	}
	metrics.RecordParseWarnings(in, stats.Warnings)
	metrics.RecordBytes(stats.BytesRead, stats.BytesWritten)

	status := "ok"
	if err != nil {
		status = "error"
		metrics.RecordErrorByComponent("convert", errorType(err))
	}
	metrics.RecordConversion(status, float64(stats.Duration.Milliseconds()))
}

func errorType(err error) string {
	switch {
	case errors.Is(err, ErrSameVersion):
		return "same_version"
	case errors.Is(err, parser.ErrUnsupportedVersion):
		return "unsupported_version"
	case errors.Is(err, parser.ErrUnknownMode):
		return "unknown_mode"
	case errors.Is(err, parser.ErrMalformedRecord):
		return "malformed"
	case errors.Is(err, serializer.ErrMessageTooLong):
		return "message_too_long"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	}
	return "io"
}
