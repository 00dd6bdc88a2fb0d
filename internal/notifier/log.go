package notifier

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Log is the fallback gateway used when no transport is configured. It
// records the alert text and reports success.
type Log struct {
	logger *logrus.Logger
}

func NewLog(logger *logrus.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Send(_ context.Context, text string) bool {
	l.logger.Infof("alert (no transport configured): %s", text)
	return true
}
