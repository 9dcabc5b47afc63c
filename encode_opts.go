package brarchive

import "log/slog"

// EncodeOption configures Encode operations.
type EncodeOption func(*encodeConfig)

type encodeConfig struct {
	logger *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (c *encodeConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// EncodeWithLogger sets the logger for encode operations.
// If not set, logging is disabled.
func EncodeWithLogger(logger *slog.Logger) EncodeOption {
	return func(c *encodeConfig) {
		c.logger = logger
	}
}
