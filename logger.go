package wheels

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	loggerMu sync.RWMutex
	logger   = newLogger(os.Stderr, log.WarnLevel)
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "wheels",
	})
	l.SetLevel(level)
	return l
}

// SetLogger replaces the package logger. Passing nil restores the default
// stderr logger at warn level.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newLogger(os.Stderr, log.WarnLevel)
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// Logger returns the package logger.
func Logger() *log.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// NewLogger returns a logger with the package's prefix and format writing to
// w at the named level ("debug", "info", "warn", "error").
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return newLogger(w, lvl), nil
}
