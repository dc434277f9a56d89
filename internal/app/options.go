package app

import (
	"github.com/okian/rcg/internal/adapters/stream"
	"github.com/okian/rcg/internal/domain/model"
	"github.com/okian/rcg/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithOutputVersion sets the target revision.
func WithOutputVersion(v model.LogVersion) Option {
	return func(s *Service) {
		if v.Valid() {
			s.target = v
		}
	}
}

// WithInputVersion writes every output in the revision of its input. It
// needs a cycle range; otherwise each conversion fails with ErrSameVersion.
func WithInputVersion() Option {
	return func(s *Service) {
		s.keepVersion = true
	}
}

// WithCycleRange keeps only shows and messages inside r.
func WithCycleRange(r CycleRange) Option {
	return func(s *Service) {
		s.cycles = &r
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStrictParams makes parameter-list problems fatal.
func WithStrictParams(strict bool) Option {
	return func(s *Service) {
		s.strictParams = strict
	}
}

// WithStrictMessages rejects messages too long for a binary target instead
// of truncating them.
func WithStrictMessages(strict bool) Option {
	return func(s *Service) {
		s.strictMessages = strict
	}
}

// WithCompression sets the output codec for file conversions.
func WithCompression(c stream.Compression) Option {
	return func(s *Service) {
		if c != "" {
			s.compression = c
		}
	}
}

// WithCompressionLevel sets the output codec level.
func WithCompressionLevel(level int) Option {
	return func(s *Service) {
		s.level = level
	}
}
