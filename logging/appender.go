package logging

import (
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Appender is an output for log entries.
type Appender interface {
	// Write submits a structured log entry to the appender for logging.
	Write(zapcore.Entry, []zapcore.Field) error
	// Sync is for signaling that any buffered logs to `Write` should be flushed. E.g: at shutdown.
	Sync() error
}

// NewStdoutAppender returns an Appender that writes console formatted entries to stdout.
func NewStdoutAppender() Appender {
	return NewWriterAppender(os.Stdout)
}

// NewWriterAppender returns an Appender that writes console formatted entries to w.
func NewWriterAppender(w zapcore.WriteSyncer) Appender {
	return zapcore.NewCore(zapcore.NewConsoleEncoder(NewLoggerConfig()), zapcore.Lock(w), zapcore.DebugLevel)
}

// FileAppender writes console formatted entries to a file that is rotated once it grows past
// MaxSizeMB.
type FileAppender struct {
	zapcore.Core
	out *lumberjack.Logger
}

// Rotation limits of a FileAppender.
const (
	MaxSizeMB  = 100
	MaxBackups = 3
)

// NewFileAppender returns an appender writing to filename. Rotated files are kept next to it.
func NewFileAppender(filename string) *FileAppender {
	out := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    MaxSizeMB,
		MaxBackups: MaxBackups,
	}
	return &FileAppender{
		Core: NewWriterAppender(zapcore.AddSync(out)).(zapcore.Core),
		out:  out,
	}
}

// Close closes the current log file.
func (fa *FileAppender) Close() error {
	return fa.out.Close()
}
