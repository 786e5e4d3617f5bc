package logger

import (
	"go.uber.org/zap"
)

// NewNamed creates a named zap logger tuned for the given environment.
// Development gets a human-readable console logger, everything else gets
// production JSON output.
func NewNamed(env, name string) (*zap.Logger, error) {
	var log *zap.Logger
	var err error

	if env == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	return log.Named(name), nil
}
