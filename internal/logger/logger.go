package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
)

// Options is used to configure logging.
type Options struct {
	JSON     bool
	MinLevel slog.Level
	Output   io.Writer
}

// Configure builds the process logger, installs it as the slog default and
// redirects the standard log package into it.
func Configure(opts Options) *slog.Logger {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.MinLevel}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(opts.Output, handlerOpts)
	}

	logger := slog.New(handler).With("service", "vet-clinic-server")
	slog.SetDefault(logger)

	// Third party packages still write through the old log package.
	def := log.Default()
	*def = *slog.NewLogLogger(handler, slog.LevelInfo)

	return logger
}
