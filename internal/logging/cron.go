package logging

import (
	"fmt"

	"github.com/apex/log"
	"github.com/robfig/cron/v3"
)

type cronLogger struct {
	logger log.Interface
}

// NewCronLogger routes the scheduler's own messages into apex/log. Cron's
// Info messages are noisy (one per tick) so they are logged at debug.
func NewCronLogger(logger log.Interface) cron.Logger {
	return cronLogger{logger: logger}
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(pairs(keysAndValues)).Debug("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(pairs(keysAndValues)).WithError(err).Error("cron: " + msg)
}

func pairs(keysAndValues []interface{}) log.Fields {
	fields := log.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
