package recorder

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Open picks the backend: postgres when dbURL is set, sqlite when sqlitePath
// is set, noop otherwise. A backend that fails to open falls back to noop.
func Open(ctx context.Context, dbURL, sqlitePath string, logger *zap.Logger) Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dbURL != "" {
		r, err := NewPostgresRecorder(ctx, dbURL, logger)
		if err == nil {
			return r
		}
		logger.Warn("init postgres recorder failed, using noop", zap.Error(err))
		return NewNoopRecorder()
	}
	if sqlitePath != "" {
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
			logger.Warn("create sqlite directory failed, using noop", zap.Error(err))
			return NewNoopRecorder()
		}
		r, err := NewSQLiteRecorder(sqlitePath, logger)
		if err == nil {
			return r
		}
		logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
	}
	return NewNoopRecorder()
}
