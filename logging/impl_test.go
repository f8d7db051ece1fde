package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

type bufferSyncer struct {
	bytes.Buffer
}

func (b *bufferSyncer) Sync() error { return nil }

func TestLevels(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	logger.Debug("debug")
	logger.Infof("info %d", 1)
	logger.Warnw("warn", "joint", "elbow")
	test.That(t, observed.Len(), test.ShouldEqual, 3)

	logger.SetLevel(WARN)
	logger.Info("dropped")
	logger.Errorw("kept")
	test.That(t, observed.Len(), test.ShouldEqual, 4)

	entries := observed.All()
	test.That(t, entries[1].Message, test.ShouldEqual, "info 1")
	test.That(t, entries[2].ContextMap()["joint"], test.ShouldEqual, "elbow")
	test.That(t, entries[3].Level, test.ShouldEqual, zapcore.ErrorLevel)
}

func TestUnpairedKey(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	logger.Infow("msg", "lonely")
	test.That(t, observed.Len(), test.ShouldEqual, 1)
	test.That(t, observed.All()[0].ContextMap(), test.ShouldContainKey, "lonely")
}

func TestSublogger(t *testing.T) {
	buf := &bufferSyncer{}
	logger := NewBlankLogger("robot")
	logger.AddAppender(NewWriterAppender(buf))

	sub := logger.Sublogger("joint")
	sub.Info("built")
	test.That(t, sub.Sync(), test.ShouldBeNil)
	test.That(t, buf.String(), test.ShouldContainSubstring, "robot.joint")
	test.That(t, buf.String(), test.ShouldContainSubstring, "built")
}

func TestAsZap(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	logger.SetLevel(INFO)
	zl := logger.AsZap()
	zl.Debug("hidden")
	zl.Infow("shown", "dof", 6)
	test.That(t, observed.Len(), test.ShouldEqual, 1)
	test.That(t, observed.All()[0].Message, test.ShouldEqual, "shown")
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"Info", INFO},
		{"WARNING", WARN},
		{"error", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.want)
		test.That(t, strings.EqualFold(level.String(), tc.in) || tc.in == "WARNING", test.ShouldBeTrue)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFileAppender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robomodel.log")
	appender := NewFileAppender(path)
	logger := NewBlankLogger("robot")
	logger.AddAppender(appender)
	logger.SetLevel(INFO)

	logger.Debug("hidden")
	logger.Infow("built robot model", "joints", 2)
	test.That(t, logger.Sync(), test.ShouldBeNil)
	test.That(t, appender.Close(), test.ShouldBeNil)

	//nolint:gosec
	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldContainSubstring, "built robot model")
	test.That(t, string(data), test.ShouldContainSubstring, `"joints"`)
	test.That(t, string(data), test.ShouldNotContainSubstring, "hidden")
}

func TestEntryCaller(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	logger.Infow("built", "joint", "elbow")
	logger.Sublogger("joint").Debugf("axis %s", "z")

	test.That(t, observed.Len(), test.ShouldEqual, 2)
	for _, entry := range observed.All() {
		test.That(t, entry.Caller.Defined, test.ShouldBeTrue)
		test.That(t, filepath.Base(entry.Caller.File), test.ShouldEqual, "impl_test.go")
	}
}
