package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/okian/catalog/pkg/logger"
)

// gormLogAdapter forwards gorm's logging to the service logger.
type gormLogAdapter struct {
	log           logger.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func (s *GormStore) gormLogger() gormlogger.Interface {
	if s.logger == nil {
		return gormlogger.Discard
	}
	level := gormlogger.Warn
	if s.traceSQL {
		level = gormlogger.Info
	}
	return &gormLogAdapter{
		log:           s.logger.Named("sql"),
		level:         level,
		slowThreshold: s.slowThreshold,
	}
}

func (a *gormLogAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *a
	cp.level = level
	return &cp
}

func (a *gormLogAdapter) Info(ctx context.Context, msg string, args ...any) {
	if a.level >= gormlogger.Info {
		a.log.Info(ctx, fmt.Sprintf(msg, args...))
	}
}

func (a *gormLogAdapter) Warn(ctx context.Context, msg string, args ...any) {
	if a.level >= gormlogger.Warn {
		a.log.Warn(ctx, fmt.Sprintf(msg, args...))
	}
}

func (a *gormLogAdapter) Error(ctx context.Context, msg string, args ...any) {
	if a.level >= gormlogger.Error {
		a.log.Error(ctx, fmt.Sprintf(msg, args...))
	}
}

// Trace logs failed statements as errors, slow ones as warnings and, at
// Info level, everything else as debug.
func (a *gormLogAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if a.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && a.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		a.log.Error(ctx, "sql failed",
			logger.String("sql", sql),
			logger.Int64("rows", rows),
			logger.Duration("elapsed", elapsed),
			logger.Error(err),
		)
	case a.slowThreshold > 0 && elapsed > a.slowThreshold && a.level >= gormlogger.Warn:
		sql, rows := fc()
		a.log.Warn(ctx, "slow sql",
			logger.String("sql", sql),
			logger.Int64("rows", rows),
			logger.Duration("elapsed", elapsed),
			logger.Duration("threshold", a.slowThreshold),
		)
	case a.level >= gormlogger.Info:
		sql, rows := fc()
		a.log.Debug(ctx, "sql",
			logger.String("sql", sql),
			logger.Int64("rows", rows),
			logger.Duration("elapsed", elapsed),
		)
	}
}
