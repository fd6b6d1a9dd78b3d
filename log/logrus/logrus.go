// Package logrus adapts a *logrus.Entry to objcache.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/dmhendricks/objcache"
)

type Logger struct{ E *logrus.Entry }

var _ objcache.Logger = Logger{}

// New tags every entry with component=objcache.
func New(l logrus.FieldLogger) Logger {
	return Logger{E: l.WithField("component", "objcache")}
}

func (l Logger) Debug(msg string, f objcache.Fields) { l.with(f).Debug(msg) }
func (l Logger) Info(msg string, f objcache.Fields)  { l.with(f).Info(msg) }
func (l Logger) Warn(msg string, f objcache.Fields)  { l.with(f).Warn(msg) }
func (l Logger) Error(msg string, f objcache.Fields) { l.with(f).Error(msg) }

func (l Logger) with(f objcache.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	if err, ok := f["err"].(error); ok {
		rest := make(logrus.Fields, len(f)-1)
		for k, v := range f {
			if k != "err" {
				rest[k] = v
			}
		}
		return l.E.WithError(err).WithFields(rest)
	}
	return l.E.WithFields(logrus.Fields(f))
}
