package bredr

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface used across the stack. The default
// implementation wraps logrus; hosts embedding this module can supply
// their own via SetLogger.
type Logger interface {
	Info(...interface{})
	Debug(...interface{})
	Error(...interface{})
	Warn(...interface{})

	Infof(string, ...interface{})
	Debugf(string, ...interface{})
	Errorf(string, ...interface{})
	Warnf(string, ...interface{})

	ChildLogger(tags map[string]interface{}) Logger
}

var logger Logger
var loggerMu sync.Mutex

func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func GetLogger() Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if logger == nil {
		logger = newDefaultLogger()
	}

	return logger
}

func SetLogLevelMax() {
	if lg, ok := GetLogger().(*defaultLogger); ok {
		lg.Entry.Logger.SetLevel(logrus.TraceLevel)
	}
}

type defaultLogger struct {
	*logrus.Entry
}

func newDefaultLogger() Logger {
	l := &logrus.Logger{
		Formatter: &logrus.TextFormatter{DisableTimestamp: true},
		Level:     logrus.InfoLevel,
		Out:       os.Stderr,
		Hooks:     make(logrus.LevelHooks),
	}

	return &defaultLogger{Entry: l.WithFields(map[string]interface{}{})}
}

func (d *defaultLogger) ChildLogger(ff map[string]interface{}) Logger {
	return &defaultLogger{d.Entry.WithFields(ff)}
}
