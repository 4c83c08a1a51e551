package telemetry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
)

// fanoutHandler hands each record to every handler that accepts its level.
type fanoutHandler []slog.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		err := h.Handle(ctx, r.Clone())
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

type SlogOptions struct {
	// Console defaults to stdout.
	Console io.Writer
	// ConsoleLevel is the lowest level printed to the console, the zero
	// value is info.
	ConsoleLevel slog.Level
	// LogFile, if set, receives every record at debug level and above.
	LogFile string
}

// NewLogger builds the console + file logger. The returned close func
// releases the log file and is safe to call when no file was opened.
func NewLogger(opts SlogOptions) (*slog.Logger, func() error, error) {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	handlers := fanoutHandler{
		NewPrettyHandler(console, PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{
				Level:       opts.ConsoleLevel,
				ReplaceAttr: ReplaceLevelNames,
			},
		}),
	}
	closeFn := func() error { return nil }

	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{
			Level:       slog.LevelDebug,
			ReplaceAttr: ReplaceLevelNames,
		}))
		closeFn = f.Close
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closeFn, nil
	}
	return slog.New(handlers), closeFn, nil
}

// InitSlog installs the logger from NewLogger as the slog default.
func InitSlog(opts SlogOptions) (*slog.Logger, func() error, error) {
	logger, closeFn, err := NewLogger(opts)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)
	return logger, closeFn, nil
}
