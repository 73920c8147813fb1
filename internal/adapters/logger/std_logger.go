package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/monegros/internal/ports"
)

// Options selects where and how log lines are written.
type Options struct {
	// File is the log file path; it takes precedence over Output.
	File string
	// Output receives log lines when File is empty; nil means stdout.
	Output io.Writer
	JSON   bool
}

// StdLogger adapts the l.Logger to the ports.Logger interface.
type StdLogger struct {
	logger l.Logger
	file   *os.File
}

// NewStdLogger creates a logger adapter writing according to opts.
func NewStdLogger(opts Options) (ports.Logger, error) {
	var output io.Writer = os.Stdout
	if opts.Output != nil {
		output = opts.Output
	}
	var file *os.File
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		output, file = f, f
	}

	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  opts.JSON,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return &StdLogger{logger: logger, file: file}, nil
}

// Debug logs a debug message.
func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes the logger and closes the log file, if any.
func (s *StdLogger) Close() error {
	err := s.logger.Close()
	if s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// FromExisting creates a new StdLogger from an existing l.Logger.
func FromExisting(logger l.Logger) ports.Logger {
	return &StdLogger{logger: logger}
}

// WithFields returns a logger that appends keysAndValues to every line.
func WithFields(next ports.Logger, keysAndValues ...interface{}) ports.Logger {
	return &fieldLogger{next: next, fields: keysAndValues}
}

type fieldLogger struct {
	next   ports.Logger
	fields []interface{}
}

func (f *fieldLogger) with(kv []interface{}) []interface{} {
	out := make([]interface{}, 0, len(kv)+len(f.fields))
	out = append(out, kv...)
	return append(out, f.fields...)
}

func (f *fieldLogger) Debug(msg string, kv ...interface{}) { f.next.Debug(msg, f.with(kv)...) }
func (f *fieldLogger) Info(msg string, kv ...interface{})  { f.next.Info(msg, f.with(kv)...) }
func (f *fieldLogger) Warn(msg string, kv ...interface{})  { f.next.Warn(msg, f.with(kv)...) }
func (f *fieldLogger) Error(msg string, kv ...interface{}) { f.next.Error(msg, f.with(kv)...) }
func (f *fieldLogger) Close() error                        { return f.next.Close() }
