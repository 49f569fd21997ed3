package logger

import (
	"clinic-service/internal/app/config"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger backs the command line tools; the HTTP service logs through zap.
func NewLogrusLogger(internalConfig *config.InternalConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if internalConfig.App.Env == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
		return logger
	}
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger
}
