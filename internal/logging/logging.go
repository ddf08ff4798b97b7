package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitializeLogger builds the application-wide sugared logger. The
// returned shutdown function flushes any buffered entries and should be
// deferred by the caller.
func InitializeLogger(name string) (*zap.SugaredLogger, func()) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if os.Getenv("WAYFARE_DEBUG") == "true" {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build(zap.Fields(zap.String("component", name)))
	if err != nil {
		panic(err)
	}

	shutdown := func() {
		_ = logger.Sync()
	}

	return logger.Sugar(), shutdown
}
