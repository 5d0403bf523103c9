// Package logging builds the zap loggers used by the movie rentals binaries.
package logging

import (
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// New returns a JSON production logger, or a console logger with stack
// traces on warnings when development is set. level is a zap level name
// such as "debug" or "info".
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Annotatef(err, "log level %q", level)
	}
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Annotate(err, "building logger")
	}
	return logger, nil
}
