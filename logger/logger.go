// Package logger builds the logrus logger shared by the runtime.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/plus3/ooui/config"
	"github.com/sirupsen/logrus"
)

// New returns a logger configured from cfg. An unknown level falls back to
// info; format "json" selects the JSON formatter, anything else text.
func New(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(cfg.Format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	log.SetOutput(os.Stderr)
	return log
}

// Discard returns a logger that writes nowhere.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
