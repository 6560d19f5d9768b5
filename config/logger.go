package config

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

func (l Log) parseLevel() (logrus.Level, error) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// NewLogger builds the root logger writing to out.
func (l Log) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := l.parseLevel()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	if l.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
