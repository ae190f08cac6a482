package framework

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

// SlogLogger adapts a slog.Logger so that harness components that take the
// simpler Logger interface can write to it. Messages are logged at debug
// level since that is the only kind of output these components produce.
func SlogLogger(logger *slog.Logger) Logger {
	return slogLogger{logger: logger}
}

type slogLogger struct {
	logger *slog.Logger
}

func (s slogLogger) Printf(message string, args ...interface{}) {
	s.logger.Debug(fmt.Sprintf(message, args...))
}

// LoggerWithPrefix decorates a Logger so every message starts with the prefix.
func LoggerWithPrefix(logger Logger, prefix string) Logger {
	return prefixLogger{wrapped: logger, prefix: prefix}
}

type prefixLogger struct {
	wrapped Logger
	prefix  string
}

func (p prefixLogger) Printf(message string, args ...interface{}) {
	p.wrapped.Printf(p.prefix+message, args...)
}

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger accumulates debug output during a test so the test logger
// can decide afterward whether to show it.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}
