package db

import (
	"context"
	"fmt"
	"time"

	"github.com/dailyyoga/memkit/logger"
	"go.uber.org/zap"
	glogger "gorm.io/gorm/logger"
)

var componentField = zap.String("component", "gorm")

// queryLogger adapts the module's zap logger to gorm's logger.Interface.
// Queries slower than slowThreshold are promoted to warn level.
type queryLogger struct {
	logger        logger.Logger
	level         glogger.LogLevel
	slowThreshold time.Duration
}

func newQueryLogger(log logger.Logger, level glogger.LogLevel, slowThreshold time.Duration) *queryLogger {
	return &queryLogger{
		logger:        log,
		level:         level,
		slowThreshold: slowThreshold,
	}
}

func (q *queryLogger) LogMode(level glogger.LogLevel) glogger.Interface {
	return newQueryLogger(q.logger, level, q.slowThreshold)
}

func (q *queryLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if q.level < glogger.Info {
		return
	}
	q.logger.Info(fmt.Sprintf(msg, data...), componentField)
}

func (q *queryLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if q.level < glogger.Warn {
		return
	}
	q.logger.Warn(fmt.Sprintf(msg, data...), componentField)
}

func (q *queryLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if q.level < glogger.Error {
		return
	}
	q.logger.Error(fmt.Sprintf(msg, data...), componentField)
}

// Trace reports one executed statement. Failed statements log at error,
// slow ones at warn, the rest at info.
func (q *queryLogger) Trace(
	ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error,
) {
	if q.level <= glogger.Silent {
		return
	}

	sql, rows := fc()
	elapsed := time.Since(begin)
	fields := []zap.Field{
		componentField,
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && q.level >= glogger.Error:
		q.logger.Error("sql error", append(fields, zap.Error(err))...)
	case q.slowThreshold > 0 && elapsed > q.slowThreshold && q.level >= glogger.Warn:
		q.logger.Warn("slow sql", append(fields, zap.Duration("threshold", q.slowThreshold))...)
	case q.level >= glogger.Info:
		q.logger.Info("sql trace", fields...)
	}
}
