package parser

import (
	"github.com/okian/rcg/pkg/logger"
)

// Option applies a configuration option to the Parser.
type Option func(*Parser)

// WithLogger sets a custom logger for parser diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithStrictParams makes unknown parameter names and unconvertible values
// fatal instead of warnings.
func WithStrictParams(strict bool) Option {
	return func(p *Parser) {
		p.strictParams = strict
	}
}
