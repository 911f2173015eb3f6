package observability

import (
	"math/rand"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger constructs a production zap.Logger named after serviceName.
// The level comes from ENV and LOG_LEVEL.
func InitLogger(serviceName string) (*zap.Logger, error) {
	return InitLoggerWithLevel(LogLevel(), serviceName)
}

// InitLoggerWithLevel constructs a zap.Logger at the provided level and
// installs it as the global logger.
func InitLoggerWithLevel(level zapcore.Level, serviceName string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	applyEncoderKeys(&cfg)

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	logger = logger.Named(serviceName).With(zap.String("service", serviceName))
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// InitStderrLogger is InitLogger for processes whose stdout carries a
// protocol, such as the MCP server.
func InitStderrLogger(serviceName string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(LogLevel())
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	applyEncoderKeys(&cfg)

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named(serviceName).With(zap.String("service", serviceName)), nil
}

// field names match what Promtail expects
func applyEncoderKeys(cfg *zap.Config) {
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.NameKey = "logger"
	cfg.EncoderConfig.CallerKey = "caller"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.StacktraceKey = "stacktrace"
}

// LogLevel determines the log level from ENV, overridden by LOG_LEVEL.
func LogLevel() zapcore.Level {
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		return zap.DebugLevel
	case "INFO":
		return zap.InfoLevel
	case "WARN":
		return zap.WarnLevel
	case "ERROR":
		return zap.ErrorLevel
	case "":
	default:
		return zap.InfoLevel
	}

	switch strings.ToLower(os.Getenv("ENV")) {
	case "development", "dev":
		return zap.DebugLevel
	default:
		return zap.InfoLevel
	}
}

// ShouldSample returns true with probability rate (0.0 to 1.0).
func ShouldSample(rate float64) bool {
	if rate >= 1.0 {
		return true
	}
	if rate <= 0.0 {
		return false
	}
	return rand.Float64() < rate
}

// GetSamplingRate returns the info-log sampling rate for the environment.
func GetSamplingRate() float64 {
	switch strings.ToLower(os.Getenv("ENV")) {
	case "development", "dev":
		return 1.0
	case "staging", "test":
		return 0.5
	default:
		return 0.1
	}
}
