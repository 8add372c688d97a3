package logger

import (
	"time"

	"go.uber.org/zap"
)

func InfoRequest(l *zap.Logger, msg string, traceID, method, path string, status int, elapsed time.Duration) {
	MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", elapsed))
}

func ErrorRequest(l *zap.Logger, err error, msg string, traceID, method, path string, elapsed time.Duration) bool {
	return CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Duration("duration", elapsed),
		zap.Error(err))
}
