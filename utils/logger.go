package utils

import (
	"log"

	"voyago/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global logger instance
var Logger *zap.Logger

// InitializeLogger sets up the logging configuration. LOG_LEVEL overrides the
// environment default (info in production, debug otherwise).
func InitializeLogger() {
	var cfg zap.Config
	level := zapcore.DebugLevel

	if IsProduction() {
		cfg = zap.NewProductionConfig()
		level = zapcore.InfoLevel
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if raw := config.AppConfig.LogLevel; raw != "" {
		if parsed, err := zapcore.ParseLevel(raw); err == nil {
			level = parsed
		} else {
			log.Printf("Invalid LOG_LEVEL %q, using default", raw)
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	// Create logger
	var err error
	Logger, err = cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
}

// GetLogger retrieves the global logger
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}
