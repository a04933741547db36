package config

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// SetupLogging configures the standard logrus logger from cfg
func SetupLogging(cfg *Config) error {
	return setupLogging(cfg, os.Stderr)
}

func setupLogging(cfg *Config, out io.Writer) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "log level %q", cfg.LogLevel)
	}

	log.SetOutput(out)
	log.SetLevel(level)
	switch cfg.LogFormat {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{
			DisableColors: !cfg.Color,
			FullTimestamp: true,
		})
	}
	return nil
}
