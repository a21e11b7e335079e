// Package logging builds the logrus logger used by every stockstat
// component. Output goes to a file by default so log lines never interleave
// with the interactive menu.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/stockstat/config"
)

const TimestampFormat = "2006-01-02 15:04:05"

// PlainFormatter writes "LEVEL timestamp message" lines followed by any
// fields as key=value pairs.
type PlainFormatter struct {
	TimestampFormat string
	LevelDesc       []string
}

// NewPlainFormatter returns a formatter with padded level names.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{
		TimestampFormat: TimestampFormat,
		LevelDesc:       []string{"PANIC", "FATAL", "ERROR", "WARN ", "INFO ", "DEBUG", "TRACE"},
	}
}

func (f *PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	level := entry.Level.String()
	if int(entry.Level) < len(f.LevelDesc) {
		level = f.LevelDesc[entry.Level]
	}
	line := fmt.Sprintf("%s %s %s", level, entry.Time.Format(f.TimestampFormat), entry.Message)
	for _, k := range sortedKeys(entry.Data) {
		line += fmt.Sprintf(" %s=%v", k, entry.Data[k])
	}
	return []byte(line + "\n"), nil
}

// New builds a logger from cfg. The returned closer releases the log file;
// it is a no-op when logging to stderr.
func New(cfg config.LogConfig) (*logrus.Logger, io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}

	return NewWithWriter(out, level), closer, nil
}

// NewWithWriter returns a plain-formatted logger writing to w.
func NewWithWriter(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(NewPlainFormatter())
	l.SetLevel(level)
	return l
}

// Discard returns a logger that drops everything. Components fall back to
// it when no logger is configured.
func Discard() *logrus.Logger {
	return NewWithWriter(io.Discard, logrus.PanicLevel)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
