package logging

import (
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

// testAppender forwards entries to testing.TB.Log so that parallel tests get their own lines.
type testAppender struct {
	tb  testing.TB
	enc zapcore.Encoder
}

// NewTestAppender returns an appender that logs through tb. Entries are tab separated in local
// time, with any fields appended as a single JSON object in the order they were given.
func NewTestAppender(tb testing.TB) Appender {
	return &testAppender{
		tb:  tb,
		enc: zapcore.NewJSONEncoder(zapcore.EncoderConfig{SkipLineEnding: true}),
	}
}

// Write logs the entry. The Helper call only skips this method, so testing.TB attributes the line
// to the logger; the caller recorded in the entry is printed in its own column.
func (tapp *testAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	tapp.tb.Helper()
	parts := []string{
		entry.Time.Format(DefaultTimeFormatStr),
		strings.ToUpper(entry.Level.String()),
		entry.LoggerName,
	}
	if entry.Caller.Defined {
		parts = append(parts, callerToString(&entry.Caller))
	}
	parts = append(parts, entry.Message)

	var err error
	if len(fields) > 0 {
		// An empty entry makes the encoder emit only the fields.
		buf, encErr := tapp.enc.Clone().EncodeEntry(zapcore.Entry{}, fields)
		if encErr == nil {
			parts = append(parts, buf.String())
			buf.Free()
		}
		err = encErr
	}
	tapp.tb.Log(strings.Join(parts, "\t"))
	return err
}

// Sync is a no-op.
func (tapp *testAppender) Sync() error {
	return nil
}
