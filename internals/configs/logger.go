package configs

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logMu  sync.RWMutex
	logger = zap.NewNop()
)

// NewLogger builds a zap logger. format is "json" or "console".
func NewLogger(level, format, serviceName string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if format == "console" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.Encoding = "json"
	}

	hostname, _ := os.Hostname()
	config.InitialFields = map[string]interface{}{
		"service":  serviceName,
		"hostname": hostname,
	}

	return config.Build()
}

// InitLogger replaces the process logger. Falls back to zap's development
// logger if the configured one can't be built.
func InitLogger(level, format, serviceName string) {
	l, err := NewLogger(level, format, serviceName)
	if err != nil {
		l, _ = zap.NewDevelopment()
	}
	SetLogger(l)
}

func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

func Log() *zap.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger
}
