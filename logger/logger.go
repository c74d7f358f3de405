package logger

import (
	"log"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the process wide logger. Use GetLogger to read it.
	Logger *zap.Logger
	mu     sync.Mutex
)

// InitializeLogger builds the global logger. Production gets JSON output,
// anything else the colored development console encoder.
func InitializeLogger(env, level string) {
	var cfg zap.Config

	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Level = lvl

	built, err := cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	mu.Lock()
	Logger = built
	mu.Unlock()
}

// SetLogger replaces the global logger, mostly for tests.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	Logger = l
}

// GetLogger retrieves the global logger, falling back to a no-op logger
// when nothing was initialized.
func GetLogger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if Logger == nil {
		Logger = zap.NewNop()
	}
	return Logger
}

// Named returns the global logger tagged with a component field.
func Named(component string) *zap.Logger {
	return GetLogger().With(zap.String("component", component))
}
