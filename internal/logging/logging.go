package logging

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pantrybase/recipebox/config"
)

// New creates a configured logrus logger: human-readable in
// development, JSON elsewhere.
func New() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	env := config.GetEnvironment()
	if env == config.Development {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
