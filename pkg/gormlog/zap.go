package gormlog

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"github.com/waoafrica/backoffice/pkg/logctx"
)

const slowThreshold = 500 * time.Millisecond

// ZapLogger adapts the application's zap logger to gorm's logger.Interface.
// Query logs carry trace_id and user_id when the context has them.
type ZapLogger struct {
	base  *zap.SugaredLogger
	level gormlogger.LogLevel
}

func New(base *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{base: base, level: gormlogger.Warn}
}

func (z *ZapLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &ZapLogger{base: z.base, level: level}
}

func (z *ZapLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if z.level >= gormlogger.Info {
		logctx.FromCtx(ctx, z.base).Infow(msg, "args", data)
	}
}

func (z *ZapLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if z.level >= gormlogger.Warn {
		logctx.FromCtx(ctx, z.base).Warnw(msg, "args", data)
	}
}

func (z *ZapLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if z.level >= gormlogger.Error {
		logctx.FromCtx(ctx, z.base).Errorw(msg, "args", data)
	}
}

func (z *ZapLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if z.level == gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	lg := logctx.FromCtx(ctx, z.base)
	fields := []interface{}{
		"rows", rows,
		"elapsed_ms", elapsed.Milliseconds(),
		"caller", repoRelative(utils.FileWithLineNum()),
	}

	switch {
	case err != nil && z.level >= gormlogger.Error && !strings.Contains(err.Error(), "record not found"):
		lg.Errorw("gorm_trace", append(fields, "err", err, "sql", sql)...)
	case elapsed > slowThreshold && z.level >= gormlogger.Warn:
		lg.Warnw("gorm_slow", append(fields, "sql", sql)...)
	case z.level >= gormlogger.Info:
		lg.Infow("gorm", append(fields, "sql", sql)...)
	}
}

// repoRelative trims the absolute build path from a caller reference so logs
// show internal/... or pkg/... instead of the builder's filesystem layout.
func repoRelative(s string) string {
	p := filepath.ToSlash(s)
	for _, marker := range []string{"/internal/", "/pkg/", "/cmd/"} {
		if i := strings.Index(p, marker); i >= 0 {
			return p[i+1:]
		}
	}
	return p
}
