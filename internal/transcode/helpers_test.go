package transcode

import (
	"strings"
	"sync"
	"testing"
)

// testLogger implements Logger for tests
type testLogger struct {
	t *testing.T

	mu    sync.Mutex
	lines []string
}

func (l *testLogger) record(level, format string, args ...interface{}) {
	l.t.Logf("["+level+"] "+format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+format)
}

func (l *testLogger) Info(format string, args ...interface{}) {
	l.record("INFO", format, args...)
}

func (l *testLogger) Warn(format string, args ...interface{}) {
	l.record("WARN", format, args...)
}

func (l *testLogger) Error(format string, args ...interface{}) {
	l.record("ERROR", format, args...)
}

func (l *testLogger) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
