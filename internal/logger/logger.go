package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger interface {
	Debug(msg string, tags ...any)
	Info(msg string, tags ...any)
	Warn(msg string, tags ...any)
	Error(msg string, tags ...any)

	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)

	With(attrs ...any) Logger
}

var _ Logger = (*appLogger)(nil)

type appLogger struct {
	logger *slog.Logger
}

type Config struct {
	debug   bool
	verbose bool
	quiet   bool
	format  string
	console io.Writer
	writer  io.Writer
}

type Option func(*Config)

// WithDebug sets the level of every handler to debug.
func WithDebug() Option {
	return func(o *Config) {
		o.debug = true
	}
}

// WithVerbose shows info messages on the console as well as in the log file.
func WithVerbose() Option {
	return func(o *Config) {
		o.verbose = true
	}
}

// WithQuiet suppresses output to the console.
func WithQuiet() Option {
	return func(o *Config) {
		o.quiet = true
	}
}

// WithFormat sets the format of the logger (text or json).
func WithFormat(format string) Option {
	return func(o *Config) {
		o.format = format
	}
}

// WithConsole replaces stderr as the console destination.
func WithConsole(w io.Writer) Option {
	return func(o *Config) {
		o.console = w
	}
}

// WithWriter sets the application log destination.
func WithWriter(w io.Writer) Option {
	return func(o *Config) {
		o.writer = w
	}
}

var defaultLogger = NewLogger(WithFormat("text"))

// NewLogger builds a logger fanning out to the console and, when set, the
// application log writer. The console only shows warnings unless verbose or
// debug is requested.
func NewLogger(opts ...Option) Logger {
	cfg := &Config{console: os.Stderr, format: "text"}
	for _, opt := range opts {
		opt(cfg)
	}

	fileLevel := slog.LevelInfo
	consoleLevel := slog.LevelWarn
	if cfg.verbose {
		consoleLevel = slog.LevelInfo
	}
	if cfg.debug {
		fileLevel = slog.LevelDebug
		consoleLevel = slog.LevelDebug
	}

	var handlers []slog.Handler
	if !cfg.quiet {
		handlers = append(handlers, newHandler(cfg.console, cfg.format, &slog.HandlerOptions{
			Level:     consoleLevel,
			AddSource: cfg.debug,
		}))
	}
	if cfg.writer != nil {
		handlers = append(handlers, newHandler(cfg.writer, cfg.format, &slog.HandlerOptions{
			Level: fileLevel,
		}))
	}

	return &appLogger{logger: slog.New(slogmulti.Fanout(handlers...))}
}

// NewRotatingFile returns the application log file, rotated once it reaches 1 MiB.
func NewRotatingFile(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1,
		MaxBackups: 3,
	}
}

func newHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func (a *appLogger) Debug(msg string, tags ...any) { a.logger.Debug(msg, tags...) }
func (a *appLogger) Info(msg string, tags ...any)  { a.logger.Info(msg, tags...) }
func (a *appLogger) Warn(msg string, tags ...any)  { a.logger.Warn(msg, tags...) }
func (a *appLogger) Error(msg string, tags ...any) { a.logger.Error(msg, tags...) }

func (a *appLogger) Debugf(format string, v ...any) {
	a.logger.Debug(fmt.Sprintf(format, v...))
}

func (a *appLogger) Infof(format string, v ...any) {
	a.logger.Info(fmt.Sprintf(format, v...))
}

func (a *appLogger) Warnf(format string, v ...any) {
	a.logger.Warn(fmt.Sprintf(format, v...))
}

func (a *appLogger) Errorf(format string, v ...any) {
	a.logger.Error(fmt.Sprintf(format, v...))
}

func (a *appLogger) With(attrs ...any) Logger {
	return &appLogger{logger: a.logger.With(attrs...)}
}
