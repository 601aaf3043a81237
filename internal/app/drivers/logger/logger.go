package logger

import (
	"fmt"
	"koos-service/internal/pkg/scoring"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// NewZapScoringLogger routes scoring diagnostics into a zap logger.
func NewZapScoringLogger(log *zap.Logger) scoring.Logger {
	if log == nil {
		return scoring.NopLogger{}
	}
	return &zapScoringLogger{log: log.Sugar()}
}

type zapScoringLogger struct {
	log *zap.SugaredLogger
}

func (l *zapScoringLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Infow(msg, keysAndValues...)
}

func (l *zapScoringLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warnw(msg, keysAndValues...)
}

func (l *zapScoringLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, keysAndValues...)
}

// NewLogrusScoringLogger routes scoring diagnostics into a logrus logger.
func NewLogrusScoringLogger(log logrus.FieldLogger) scoring.Logger {
	if log == nil {
		return scoring.NopLogger{}
	}
	return &logrusScoringLogger{log: log}
}

type logrusScoringLogger struct {
	log logrus.FieldLogger
}

func (l *logrusScoringLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(toFields(keysAndValues)).Info(msg)
}

func (l *logrusScoringLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(toFields(keysAndValues)).Warn(msg)
}

func (l *logrusScoringLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(toFields(keysAndValues)).Error(msg)
}

// toFields pairs up keys and values. A dangling key is kept under "!BADKEY".
func toFields(keysAndValues []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 >= len(keysAndValues) {
			fields["!BADKEY"] = keysAndValues[i]
			break
		}
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
