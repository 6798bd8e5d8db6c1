package tablestorage

import (
	"log/slog"

	"github.com/c2fo/azfs/options"
)

const optionNameLogger = "logger"

// WithLogger returns a logger implementation of NewClientOption
func WithLogger(l *slog.Logger) options.NewClientOption[Client] {
	return &loggerOpt{logger: l}
}

type loggerOpt struct {
	logger *slog.Logger
}

// Apply applies the logger to the client
func (o *loggerOpt) Apply(c *Client) {
	if o.logger != nil {
		c.logger = o.logger
	}
}

// NewClientOptionName returns the name of the option
func (o *loggerOpt) NewClientOptionName() string {
	return optionNameLogger
}
