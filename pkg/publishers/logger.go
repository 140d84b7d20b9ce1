package publishers

import "github.com/samvad-hq/samvad-tech-digest/internal/logger"

// Logger is the application logger; publishers log delivery outcomes through it.
type Logger = logger.Logger

func ensureLogger(log Logger) Logger {
	return logger.Ensure(log)
}
