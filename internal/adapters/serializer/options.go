package serializer

// Option applies a configuration option to a Serializer.
type Option func(*config)

type config struct {
	strictMessages bool
}

// WithStrictMessages makes WriteMsg fail instead of altering text the target
// revision cannot hold: ErrMessageTooLong where binary revisions would
// truncate, ErrMessageMultiline where text revisions would replace line
// breaks with spaces.
func WithStrictMessages(strict bool) Option {
	return func(c *config) {
		c.strictMessages = strict
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
