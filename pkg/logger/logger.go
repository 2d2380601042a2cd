package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the service logger. LOG_LEVEL-style tuning happens through the
// environment zap already honors; production JSON output by default.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
