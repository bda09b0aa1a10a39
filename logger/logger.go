// Package logger builds the zap logger shared by the server and the CLI tools.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/padraicbc/signupapp/config"
)

// New builds a JSON zap logger tagged with the service and environment.
// DEBUG lowers the level to debug and adds caller/stack details in development.
func New(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = "json"
	zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if cfg.Debug {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		zc.Development = !cfg.Production()
	}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.InitialFields = map[string]interface{}{
		"service": "signupapp",
		"env":     cfg.Env,
	}
	return zc.Build()
}
