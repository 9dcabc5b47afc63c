package brarchive

import "log/slog"

// DecodeOption configures Decode and Inspect operations.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	rejectDuplicates bool
	logger           *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (c *decodeConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// DecodeWithRejectDuplicates fails decoding with ErrDuplicateName when two
// descriptors share a name.
//
// By default the later descriptor wins and the earlier content is dropped.
func DecodeWithRejectDuplicates() DecodeOption {
	return func(c *decodeConfig) {
		c.rejectDuplicates = true
	}
}

// DecodeWithLogger sets the logger for decode operations.
// If not set, logging is disabled.
func DecodeWithLogger(logger *slog.Logger) DecodeOption {
	return func(c *decodeConfig) {
		c.logger = logger
	}
}
