package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	mu    sync.RWMutex
	sugar = zap.NewNop().Sugar()
)

// Init builds the process logger, writing to outputPaths when given and to
// the zap defaults otherwise. Until Init succeeds every call is a no-op; a
// failed build leaves the previous logger in place.
func Init(env string, outputPaths ...string) error {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	case "test":
		return nil
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	if len(outputPaths) > 0 {
		cfg.OutputPaths = outputPaths
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	mu.Lock()
	sugar = l.Sugar()
	mu.Unlock()
	return nil
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Sync() {
	_ = current().Sync()
}

func Debug(msg string, keysAndValues ...interface{}) {
	current().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...interface{}) {
	current().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	current().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...interface{}) {
	current().Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...interface{}) {
	current().Fatalw(msg, keysAndValues...)
}
