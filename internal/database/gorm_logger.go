package database

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"profitflow/internal/logger"
)

// zapGormLogger routes GORM's output through the process logger. Only slow
// statements and real failures are logged above debug level.
type zapGormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	log           func() *zap.SugaredLogger
}

func newGormLogger(slowThreshold time.Duration) gormlogger.Interface {
	return &zapGormLogger{
		level:         gormlogger.Warn,
		slowThreshold: slowThreshold,
		log:           logger.Get,
	}
}

func (l *zapGormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *zapGormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log().Infof(msg, args...)
	}
}

func (l *zapGormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log().Warnf(msg, args...)
	}
}

func (l *zapGormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log().Errorf(msg, args...)
	}
}

func (l *zapGormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	// not-found and duplicate-key are expected outcomes the services translate
	case err != nil && l.level >= gormlogger.Error &&
		!errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, gorm.ErrDuplicatedKey):
		sql, rows := fc()
		l.log().Errorw("sql error", "error", err, "elapsed", elapsed.String(), "rows", rows, "sql", sql)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log().Warnw("slow sql", "elapsed", elapsed.String(), "threshold", l.slowThreshold.String(), "rows", rows, "sql", sql)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.log().Debugw("sql", "elapsed", elapsed.String(), "rows", rows, "sql", sql)
	}
}
